package repo

import (
	"context"
	"encoding/json"
	"testing"

	"splitbook/internal/models"
	"splitbook/internal/storage"
	"splitbook/internal/storage/memory"
)

func openTestRepo(t *testing.T) (*Repository, *memory.Store) {
	t.Helper()
	store := memory.New()
	return Open(context.Background(), store), store
}

// persistedGroups flushes the repository and decodes what reached the store.
func persistedGroups(t *testing.T, r *Repository, store storage.Store) []models.Group {
	t.Helper()
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	raw, err := store.Get(context.Background(), storage.GroupsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var groups []models.Group
	if err := json.Unmarshal(raw, &groups); err != nil {
		t.Fatalf("persisted record is not valid JSON: %v", err)
	}
	return groups
}

func TestCreateGroup(t *testing.T) {
	r, store := openTestRepo(t)

	group := r.CreateGroup("Trip", []string{"You", "Alex"})
	if group == nil {
		t.Fatal("CreateGroup returned nil")
	}
	if group.ID == "" {
		t.Error("expected group ID to be assigned")
	}
	if len(group.Expenses) != 0 {
		t.Errorf("expected empty expense list, got %d", len(group.Expenses))
	}

	persisted := persistedGroups(t, r, store)
	if len(persisted) != 1 || persisted[0].Name != "Trip" {
		t.Errorf("persisted groups = %+v, want one group named Trip", persisted)
	}
}

func TestCreateGroup_DefaultsToSelfMember(t *testing.T) {
	r, _ := openTestRepo(t)

	group := r.CreateGroup("Solo", nil)
	if group == nil {
		t.Fatal("CreateGroup returned nil")
	}
	if len(group.Members) != 1 || group.Members[0] != DefaultSelf {
		t.Errorf("members = %v, want [%s]", group.Members, DefaultSelf)
	}
}

func TestCreateGroup_BlankNameIsNoop(t *testing.T) {
	r, store := openTestRepo(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if got := r.CreateGroup(name, []string{"You"}); got != nil {
			t.Errorf("CreateGroup(%q) = %+v, want nil", name, got)
		}
	}
	if got := len(r.Groups()); got != 0 {
		t.Errorf("group count = %d, want 0", got)
	}
	// Nothing was mutated, so nothing should have been written either.
	raw, err := store.Get(context.Background(), storage.GroupsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if raw != nil {
		t.Errorf("expected no persisted record, got %s", raw)
	}
}

func TestDeleteGroup(t *testing.T) {
	r, store := openTestRepo(t)
	keep := r.CreateGroup("Keep", []string{"You"})
	drop := r.CreateGroup("Drop", []string{"You"})

	r.DeleteGroup(drop.ID)

	groups := r.Groups()
	if len(groups) != 1 || groups[0].ID != keep.ID {
		t.Errorf("groups after delete = %+v, want only %s", groups, keep.ID)
	}

	persisted := persistedGroups(t, r, store)
	if len(persisted) != 1 || persisted[0].ID != keep.ID {
		t.Errorf("persisted groups = %+v, want only %s", persisted, keep.ID)
	}
}

func TestDeleteGroup_UnknownIDIsNoop(t *testing.T) {
	r, _ := openTestRepo(t)
	r.CreateGroup("Trip", []string{"You", "Alex"})

	before := r.Groups()
	r.DeleteGroup("nonexistent-id")
	after := r.Groups()

	if len(after) != len(before) {
		t.Fatalf("group count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Name != before[i].Name {
			t.Errorf("group %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestAddExpense(t *testing.T) {
	r, store := openTestRepo(t)
	group := r.CreateGroup("Trip", []string{"You", "Alex"})

	exp := r.AddExpense(group.ID, models.Expense{
		Title:     "Dinner",
		Amount:    100,
		Payer:     "You",
		SplitType: models.SplitEqual,
	})
	if exp == nil {
		t.Fatal("AddExpense returned nil")
	}
	if exp.ID == "" {
		t.Error("expected expense ID to be assigned")
	}
	if exp.Timestamp.IsZero() {
		t.Error("expected timestamp to be assigned")
	}

	persisted := persistedGroups(t, r, store)
	if len(persisted[0].Expenses) != 1 {
		t.Fatalf("persisted expenses = %d, want 1", len(persisted[0].Expenses))
	}
	if persisted[0].Expenses[0].Title != "Dinner" {
		t.Errorf("persisted title = %q, want Dinner", persisted[0].Expenses[0].Title)
	}
}

func TestAddExpense_UnknownGroupIsNoop(t *testing.T) {
	r, _ := openTestRepo(t)
	group := r.CreateGroup("Trip", []string{"You"})

	exp := r.AddExpense("nonexistent-id", models.Expense{
		Title:     "Dinner",
		Amount:    50,
		Payer:     "You",
		SplitType: models.SplitEqual,
	})
	if exp != nil {
		t.Fatalf("AddExpense on unknown group = %+v, want nil", exp)
	}

	groups := r.Groups()
	if len(groups) != 1 {
		t.Fatalf("group count = %d, want 1", len(groups))
	}
	if len(groups[0].Expenses) != 0 {
		t.Errorf("expenses appeared in %s: %+v", group.Name, groups[0].Expenses)
	}
}

func TestAddExpense_StoresDraftUnvalidated(t *testing.T) {
	r, _ := openTestRepo(t)
	group := r.CreateGroup("Trip", []string{"You", "Alex"})

	// A custom split that does not sum to the amount is stored as given.
	exp := r.AddExpense(group.ID, models.Expense{
		Title:       "Broken",
		Amount:      100,
		Payer:       "You",
		SplitType:   models.SplitCustom,
		CustomSplit: map[string]float64{"You": 10, "Alex": 10},
	})
	if exp == nil {
		t.Fatal("AddExpense returned nil")
	}

	stored := r.Group(group.ID)
	if got := stored.Expenses[0].CustomSplit["Alex"]; got != 10 {
		t.Errorf("stored split for Alex = %v, want 10", got)
	}
}

func TestOpen_LoadsPersistedSnapshot(t *testing.T) {
	store := memory.New()
	first := Open(context.Background(), store)
	group := first.CreateGroup("Trip", []string{"You", "Alex"})
	first.AddExpense(group.ID, models.Expense{
		Title:     "Taxi",
		Amount:    40,
		Payer:     "Alex",
		SplitType: models.SplitEqual,
	})
	if err := first.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	second := Open(context.Background(), store)
	groups := second.Groups()
	if len(groups) != 1 {
		t.Fatalf("reloaded group count = %d, want 1", len(groups))
	}
	if len(groups[0].Expenses) != 1 || groups[0].Expenses[0].Title != "Taxi" {
		t.Errorf("reloaded expenses = %+v, want the Taxi expense", groups[0].Expenses)
	}
}

func TestOpen_ToleratesCorruptRecord(t *testing.T) {
	store := memory.New()
	if err := store.Put(context.Background(), storage.GroupsKey, []byte("{not json")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	r := Open(context.Background(), store)
	if got := len(r.Groups()); got != 0 {
		t.Errorf("group count over corrupt record = %d, want 0", got)
	}
	// And the repository stays usable.
	if g := r.CreateGroup("Fresh", []string{"You"}); g == nil {
		t.Error("CreateGroup failed after corrupt load")
	}
}

func TestGroup_ReturnsCopy(t *testing.T) {
	r, _ := openTestRepo(t)
	created := r.CreateGroup("Trip", []string{"You", "Alex"})

	got := r.Group(created.ID)
	got.Members[0] = "Mallory"
	got.Name = "Hijacked"

	again := r.Group(created.ID)
	if again.Members[0] != "You" || again.Name != "Trip" {
		t.Errorf("repository state was mutated through a snapshot: %+v", again)
	}
}

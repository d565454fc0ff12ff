// Package repo holds the authoritative in-memory group collection and is the
// only mutation surface for it. Every mutation writes the whole collection
// through to the storage collaborator; reads never touch storage.
package repo

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitbook/internal/models"
	"splitbook/internal/storage"
)

// DefaultSelf is the member every group starts with when no member list is
// supplied, and the conventional name of the current user.
const DefaultSelf = "You"

// Repository owns the in-memory group collection.
//
// Mutations update memory synchronously and kick off a background save of the
// full collection; a failed save is logged, never surfaced, since memory stays
// authoritative for the session. Call Flush before shutdown to wait for
// in-flight saves and write a final snapshot.
type Repository struct {
	mu     sync.Mutex
	store  storage.Store
	groups []models.Group

	saves sync.WaitGroup
}

// Open constructs a Repository from the persisted snapshot. An absent or
// unreadable record is treated as "no groups yet" and logged, not returned:
// the repository must come up even over corrupt data.
func Open(ctx context.Context, store storage.Store) *Repository {
	r := &Repository{store: store}

	raw, err := store.Get(ctx, storage.GroupsKey)
	if err != nil {
		slog.Warn("Loading groups failed, starting empty", "error", err)
		return r
	}
	if len(raw) == 0 {
		return r
	}
	if err := json.Unmarshal(raw, &r.groups); err != nil {
		slog.Warn("Stored groups record is corrupt, starting empty", "error", err)
		r.groups = nil
	}
	return r
}

// Groups returns a snapshot of all groups.
func (r *Repository) Groups() []models.Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneGroups(r.groups)
}

// Group returns a copy of the group with the given id, or nil if absent.
func (r *Repository) Group(id string) *models.Group {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.groups {
		if r.groups[i].ID == id {
			g := cloneGroup(&r.groups[i])
			return &g
		}
	}
	return nil
}

// CreateGroup appends a new group and persists. A name that trims to empty is
// a no-op returning nil; validation beyond that is the caller's job. An empty
// member list defaults to the single self member.
func (r *Repository) CreateGroup(name string, members []string) *models.Group {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	if len(members) == 0 {
		members = []string{DefaultSelf}
	}

	group := models.Group{
		ID:      uuid.New().String(),
		Name:    name,
		Members: append([]string(nil), members...),
	}

	r.mu.Lock()
	r.groups = append(r.groups, group)
	raw := r.snapshotLocked()
	r.mu.Unlock()

	r.persist(raw)
	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))

	out := cloneGroup(&group)
	return &out
}

// DeleteGroup removes the group with the given id and persists. Unknown ids
// are a no-op.
func (r *Repository) DeleteGroup(id string) {
	r.mu.Lock()
	found := false
	for i := range r.groups {
		if r.groups[i].ID == id {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			found = true
			break
		}
	}
	var raw []byte
	if found {
		raw = r.snapshotLocked()
	}
	r.mu.Unlock()

	if !found {
		return
	}
	r.persist(raw)
	slog.Info("Group deleted", "group_id", id)
}

// AddExpense assigns the draft an id and timestamp, appends it to the group's
// expense list, and persists. An unknown group id is a no-op returning nil.
// The draft is stored as given: amount positivity and custom-split sums are
// the caller's responsibility, and the ledger tolerates violations.
func (r *Repository) AddExpense(groupID string, draft models.Expense) *models.Expense {
	draft.ID = uuid.New().String()
	draft.Timestamp = time.Now().UTC()

	r.mu.Lock()
	var stored *models.Expense
	for i := range r.groups {
		if r.groups[i].ID == groupID {
			r.groups[i].Expenses = append(r.groups[i].Expenses, draft)
			stored = &r.groups[i].Expenses[len(r.groups[i].Expenses)-1]
			break
		}
	}
	var raw []byte
	if stored != nil {
		raw = r.snapshotLocked()
	}
	r.mu.Unlock()

	if stored == nil {
		return nil
	}
	r.persist(raw)
	slog.Info("Expense added", "group_id", groupID, "expense_id", draft.ID, "amount", draft.Amount)

	out := cloneExpense(&draft)
	return &out
}

// Flush waits for in-flight saves and writes a final synchronous snapshot.
// Call it on shutdown.
func (r *Repository) Flush(ctx context.Context) error {
	r.saves.Wait()

	r.mu.Lock()
	raw := r.snapshotLocked()
	r.mu.Unlock()

	return r.store.Put(ctx, storage.GroupsKey, raw)
}

// snapshotLocked marshals the current collection. Callers must hold mu.
func (r *Repository) snapshotLocked() []byte {
	// Persist [] rather than null for an empty collection.
	groups := r.groups
	if groups == nil {
		groups = []models.Group{}
	}
	raw, err := json.Marshal(groups)
	if err != nil {
		// Only unmarshalable types reach here; the models are plain data.
		slog.Error("Marshaling groups failed", "error", err)
		return nil
	}
	return raw
}

// persist writes the snapshot in the background. Mutations do not wait on the
// storage collaborator; a failed save is only logged.
func (r *Repository) persist(raw []byte) {
	if raw == nil {
		return
	}
	r.saves.Add(1)
	go func() {
		defer r.saves.Done()
		if err := r.store.Put(context.Background(), storage.GroupsKey, raw); err != nil {
			slog.Error("Saving groups failed", "error", err)
		}
	}()
}

func cloneGroups(groups []models.Group) []models.Group {
	out := make([]models.Group, len(groups))
	for i := range groups {
		out[i] = cloneGroup(&groups[i])
	}
	return out
}

func cloneGroup(g *models.Group) models.Group {
	cp := *g
	cp.Members = append([]string(nil), g.Members...)
	cp.Expenses = make([]models.Expense, len(g.Expenses))
	for i := range g.Expenses {
		cp.Expenses[i] = cloneExpense(&g.Expenses[i])
	}
	return cp
}

func cloneExpense(e *models.Expense) models.Expense {
	cp := *e
	if e.CustomSplit != nil {
		cp.CustomSplit = make(map[string]float64, len(e.CustomSplit))
		for k, v := range e.CustomSplit {
			cp.CustomSplit[k] = v
		}
	}
	return cp
}

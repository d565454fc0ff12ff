package models

// Group represents a named collection of members and their shared expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Trip", "Roommates").
	Name string `json:"name"`

	// Members is the ordered list of participant names. The first member is
	// the distinguished self, conventionally "You". Names are unique within
	// a group.
	Members []string `json:"members"`

	// Expenses is the append-only list of recorded expenses, in recorded
	// order. Expenses are never edited or removed.
	Expenses []Expense `json:"expenses"`
}

// HasMember reports whether name is in the group's member list.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}

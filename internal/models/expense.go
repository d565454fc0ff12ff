package models

import "time"

// SplitType is the policy for dividing an expense among group members.
type SplitType string

const (
	// SplitEqual divides the amount evenly among all group members.
	SplitEqual SplitType = "equal"

	// SplitCustom divides the amount per an explicit per-member mapping.
	SplitCustom SplitType = "custom"
)

// Expense represents a single recorded payment within a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name for the expense.
	Title string `json:"title"`

	// Description is an optional longer note.
	Description string `json:"description,omitempty"`

	// Category is an optional free-form label (e.g., "Food", "Travel").
	Category string `json:"category,omitempty"`

	// Amount is the total amount fronted by the payer.
	Amount float64 `json:"amount"`

	// Payer is the member name of whoever paid the full amount.
	Payer string `json:"payer"`

	// SplitType selects the split policy.
	SplitType SplitType `json:"splitType"`

	// CustomSplit maps member names to their assigned share. Present only
	// when SplitType is SplitCustom. The ledger trusts stored splits but
	// tolerates ones that do not sum to Amount.
	CustomSplit map[string]float64 `json:"customSplit,omitempty"`

	// Timestamp is when the expense was recorded (RFC 3339 in JSON).
	Timestamp time.Time `json:"timestamp"`
}

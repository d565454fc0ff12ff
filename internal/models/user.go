package models

// User is the locally stored session record. Its presence in the store is the
// "logged in" flag; there are no accounts, passwords, or tokens.
type User struct {
	// UID is a fixed local identifier, not a real account id.
	UID string `json:"uid"`

	// DisplayName is the name shown in the UI.
	DisplayName string `json:"displayName"`

	// Email is a placeholder address for display purposes.
	Email string `json:"email"`
}

// Package session implements the local mock login. The stored user record is
// the entire authentication state: present means logged in, absent means
// logged out. There are no credentials or tokens.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"splitbook/internal/models"
	"splitbook/internal/storage"
)

// The fixed record written on login, standing in for a real identity
// provider.
var mockUser = models.User{
	UID:         "mockUserId",
	DisplayName: "Mock User",
	Email:       "mock@example.com",
}

// Manager reads and writes the session record.
type Manager struct {
	store storage.Store
}

// NewManager creates a session manager backed by the given store.
func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

// Login stores the mock user record and returns it.
func (m *Manager) Login(ctx context.Context) (*models.User, error) {
	raw, err := json.Marshal(mockUser)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.store.Put(ctx, storage.UserKey, raw); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	slog.Info("User logged in", "uid", mockUser.UID)
	user := mockUser
	return &user, nil
}

// Current returns the stored user, or nil when logged out. A corrupt record
// counts as logged out.
func (m *Manager) Current(ctx context.Context) (*models.User, error) {
	raw, err := m.store.Get(ctx, storage.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		slog.Warn("Stored user record is corrupt, treating as logged out", "error", err)
		return nil, nil
	}
	return &user, nil
}

// Logout removes the stored user record. Logging out while logged out is a
// no-op.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.UserKey); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	slog.Info("User logged out")
	return nil
}

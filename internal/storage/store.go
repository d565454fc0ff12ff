// Package storage provides abstractions for persistent data storage.
package storage

import "context"

// Fixed keys under which splitbook persists its records.
const (
	// GroupsKey holds the serialized group collection.
	GroupsKey = "groups"

	// UserKey holds the serialized session user record.
	UserKey = "user"
)

// Store defines the key-value blob contract the rest of the system persists
// through. The whole group collection is one serialized record under a fixed
// key; the session user is another. This abstraction allows swapping storage
// backends (SQLite, in-memory, etc.) without changing the callers.
type Store interface {
	// Get retrieves the value stored under key.
	// An absent key returns (nil, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

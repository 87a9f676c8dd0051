// Package metadata is the client's durable key-value store: a single SQLite
// table of string keys and values that survives restarts.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set inserts or overwrites key.
	Set(ctx context.Context, key string, value string) error
	// Delete removes key; removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

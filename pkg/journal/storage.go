package journal

import (
	"context"
)

// Storage persists journal entries by key.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Write stores data with the given key, replacing existing data.
	Write(ctx context.Context, key string, data []byte) error

	// Read returns os.ErrNotExist if the key does not exist.
	Read(ctx context.Context, key string) ([]byte, error)

	// List returns keys matching the prefix, sorted descending (newest first).
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	Close() error
}

package storage

import "context"

// Store is the key-value port behind every persisted collection. Values are
// opaque strings (JSON in practice); writes replace the whole value, last
// writer wins.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

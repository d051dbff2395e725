// Package kvstore provides the string-keyed persistent store backing all
// budget data. Values are opaque strings; higher layers JSON-encode on top.
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no value. Callers
// decide whether to treat a miss as an error or fall back to a default.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value adapter contract. Implementations must be safe for
// concurrent use within one process; nothing here coordinates across
// processes.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set writes value under key, replacing any existing value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys enumerates every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Close releases the backing resources.
	Close() error
}

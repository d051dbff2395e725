// Package storage provides the data persistence layer for the pennyjar
// application: entity repositories, the profile service, and schema
// migrations, all over a key-value store of JSON-encoded blobs.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennyjar/pennyjar/internal/cache"
	"github.com/pennyjar/pennyjar/internal/kvstore"
)

// Key namespace. Values under these keys are JSON-encoded strings except
// activeProfileKey and schemaVersionKey, which are stored raw.
const (
	budgetsKey       = "budgets"
	savingsGoalsKey  = "savings_goals"
	profilesKey      = "user_profiles"
	activeProfileKey = "active_profile"
	notificationsKey = "budget_notifications"
	schemaVersionKey = "schema_version"

	budgetKeyPrefix  = "budget_"
	debtKeyPrefix    = "debt_"
	incomeKeyPrefix  = "income_"
	profileKeyPrefix = "profile_"
)

// Scopes shared by the debt and income repositories. A scope is either a
// budget id or one of these literals.
const (
	GlobalScope       = "global"
	GlobalIncomeScope = "global_income"
)

// Store owns the key-value backend and the read cache. Repositories are
// methods on Store; there is no module-level state.
type Store struct {
	kv    kvstore.Store
	cache *cache.Cache
}

// NewStore wraps an existing key-value backend. The caller is responsible
// for running Migrate before first use.
func NewStore(kv kvstore.Store) *Store {
	return &Store{
		kv:    kv,
		cache: cache.New(cache.DefaultTTL),
	}
}

// Open creates a sqlite-backed store at path and runs pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	kv, err := kvstore.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open budget store: %w", err)
	}

	s := NewStore(kv)
	if err := s.Migrate(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the cache and the backing store.
func (s *Store) Close() error {
	s.cache.Close()
	return s.kv.Close()
}

// loadJSON reads and decodes the blob at key through the cache. A missing
// key, unreadable store, or malformed value degrades to fallback; reads
// never fail.
func loadJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	value, err := cache.Fetch(s.cache, key, 0, func() (T, error) {
		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, kvstore.ErrKeyNotFound) {
				slog.Warn("store read failed, using default", "key", key, "error", err)
			}
			return fallback, nil
		}

		var out T
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			slog.Warn("corrupt stored value, using default", "key", key, "error", err)
			return fallback, nil
		}
		return out, nil
	})
	if err != nil {
		return fallback
	}
	return value
}

// saveJSON encodes value and writes it through to the store and the cache.
// Unlike reads, write failures propagate.
func saveJSON[T any](ctx context.Context, s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		// Update paths patch loaded values in place, and loads alias the
		// cached copy. Drop it so reads fall back to the store.
		s.cache.Remove(key)
		return err
	}
	s.cache.Set(key, value, 0)
	return nil
}

// deleteKey removes key from both the store and the cache.
func (s *Store) deleteKey(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return err
	}
	s.cache.Remove(key)
	return nil
}

// keysWithPrefix enumerates store keys beginning with prefix.
func (s *Store) keysWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.kv.Keys(ctx)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, key := range keys {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			matched = append(matched, key)
		}
	}
	return matched, nil
}

// inRange reports whether t falls within the inclusive [from, to] bounds.
// Nil bounds are open.
func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

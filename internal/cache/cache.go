// Package cache provides a thread-safe in-memory TTL cache used in front of
// the key-value store. It is a read-through optimization scoped to one
// process, not a correctness mechanism: writers that bypass it can produce
// stale reads for up to the TTL window.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is used when callers pass a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// entry holds a cached value and its expiry.
type entry struct {
	expiry time.Time
	value  any
}

// Cache is a key-to-value map with per-entry expiry.
type Cache struct {
	entries map[string]entry
	stopCh  chan struct{}
	ttl     time.Duration
	mu      sync.RWMutex
}

// New creates a cache with the given default TTL and starts the cleanup
// goroutine. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiry) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key. A non-positive ttl uses the cache default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:  value,
		expiry: time.Now().Add(ttl),
	}
}

// Remove drops key from the cache.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Preload warms the cache for keys not already present. Loader failures are
// logged and skipped; preloading is best effort.
func (c *Cache) Preload(keys []string, loader func(key string) (any, error)) {
	for _, key := range keys {
		if _, ok := c.Get(key); ok {
			continue
		}
		value, err := loader(key)
		if err != nil {
			slog.Debug("preload skipped key", "key", key, "error", err)
			continue
		}
		c.Set(key, value, 0)
	}
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	close(c.stopCh)
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, e := range c.entries {
				if now.After(e.expiry) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Fetch returns the cached value for key, invoking loader on a miss (or on a
// cached value of the wrong type) and caching the result with ttl. Loader
// errors are returned without caching.
func Fetch[T any](c *Cache, key string, ttl time.Duration, loader func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := loader()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, value, ttl)
	return value, nil
}

// Update applies fn to the cached value for key, if present, unexpired, and
// of the expected type. It reports whether an update happened. The entry's
// expiry is refreshed.
func Update[T any](c *Cache, key string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiry) {
		return false
	}
	typed, ok := e.value.(T)
	if !ok {
		return false
	}

	c.entries[key] = entry{
		value:  fn(typed),
		expiry: time.Now().Add(c.ttl),
	}
	return true
}

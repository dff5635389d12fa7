// Package cache provides the in-memory TTL cache for successful API
// response payloads. Entries expire lazily on read; there is no background
// sweeper. A disabled cache behaves as a permanent miss so callers never
// need to branch on whether caching is on.
package cache

import (
	"sync"
	"time"
)

const (
	// DefaultTTL is how long a cached payload stays fresh.
	DefaultTTL = 60 * time.Minute
	// DefaultMaxSize caps the number of cached entries.
	DefaultMaxSize = 1000
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Cache is a bounded TTL cache keyed by request identity. Safe for
// concurrent use.
type Cache struct {
	enabled bool
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	hits    uint64
	misses  uint64
}

// Options configures a Cache. Zero values fall back to the defaults.
type Options struct {
	Enabled bool
	TTL     time.Duration
	MaxSize int
}

// New creates a cache. When opts.Enabled is false, Get always misses and
// Set is a no-op.
func New(opts Options) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	return &Cache{
		enabled: opts.Enabled,
		ttl:     opts.TTL,
		maxSize: opts.MaxSize,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Enabled reports whether the cache stores anything at all.
func (c *Cache) Enabled() bool {
	return c.enabled
}

// Get returns the cached payload for key. An entry past its TTL is reported
// as a miss but left in place; a later Set overwrites it and the capacity
// eviction reclaims it first. The returned slice must not be modified.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		c.misses++
		return nil, false
	}
	c.hits++
	return e.payload, true
}

// Set stores payload under key with the configured TTL. When the cache is
// full the entry closest to expiry is evicted first.
func (c *Cache) Set(key string, payload []byte) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.entries[key] = entry{
		payload:   payload,
		expiresAt: c.now().Add(c.ttl),
	}
}

// evictOldestLocked removes the entry with the earliest expiry. Expired
// entries are naturally the first to go.
func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestExpiry time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldestExpiry) {
			oldestKey = k
			oldestExpiry = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry but keeps hit and miss counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, including expired ones that
// have not yet been overwritten or evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Enabled bool
	Entries int
	Hits    uint64
	Misses  uint64
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Enabled: c.enabled,
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

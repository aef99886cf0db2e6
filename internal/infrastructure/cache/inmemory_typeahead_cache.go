package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	catalogapp "github.com/vintner/backend/internal/application/catalog"
)

// InMemoryTypeaheadCache caches typeahead lookups in process memory.
// Suitable for single-instance deployments and tests; distributed
// deployments should use RedisTypeaheadCache instead.
type InMemoryTypeaheadCache struct {
	mu      sync.RWMutex
	entries map[string]typeaheadEntry
	ttl     time.Duration
}

type typeaheadEntry struct {
	values    []catalogapp.TypeaheadEntry
	expiresAt time.Time
}

// NewInMemoryTypeaheadCache creates an in-memory typeahead cache.
// A non-positive ttl falls back to the default.
func NewInMemoryTypeaheadCache(ttl time.Duration) *InMemoryTypeaheadCache {
	if ttl <= 0 {
		ttl = defaultTypeaheadTTL
	}
	return &InMemoryTypeaheadCache{
		entries: make(map[string]typeaheadEntry),
		ttl:     ttl,
	}
}

func (c *InMemoryTypeaheadCache) key(query string, limit int) string {
	return fmt.Sprintf("%s|%d", query, limit)
}

// Get returns the cached entries for a query, or false on a miss
func (c *InMemoryTypeaheadCache) Get(ctx context.Context, query string, limit int) ([]catalogapp.TypeaheadEntry, bool) {
	c.mu.RLock()
	entry, ok := c.entries[c.key(query, limit)]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, c.key(query, limit))
		c.mu.Unlock()
		return nil, false
	}
	return entry.values, true
}

// Set stores the entries for a query
func (c *InMemoryTypeaheadCache) Set(ctx context.Context, query string, limit int, entries []catalogapp.TypeaheadEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(query, limit)] = typeaheadEntry{
		values:    entries,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Purge drops every cached entry
func (c *InMemoryTypeaheadCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]typeaheadEntry)
}

// Len returns the number of cached entries, counting expired ones
func (c *InMemoryTypeaheadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryTypeaheadCache implements TypeaheadCache
var _ catalogapp.TypeaheadCache = (*InMemoryTypeaheadCache)(nil)

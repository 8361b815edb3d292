// Package cache provides result-cache backends for the governor.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/veldt-io/fingov"
)

// DefaultTTL is how long a cached sample stays fresh. Scraped market
// content goes stale quickly.
const DefaultTTL = 2 * time.Hour

// MemoryCache is an in-process result cache with TTL expiry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	sample    fingov.ContentSample
	expiresAt time.Time
}

var _ fingov.Cache = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory cache. A non-positive ttl falls
// back to DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached sample if present and fresh. Expired entries
// are dropped on access.
func (c *MemoryCache) Get(_ context.Context, sessionID, key string) (fingov.ContentSample, bool, error) {
	full := sessionID + "\x00" + key

	c.mu.RLock()
	entry, ok := c.entries[full]
	c.mu.RUnlock()

	if !ok {
		return fingov.ContentSample{}, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, full)
		c.mu.Unlock()
		return fingov.ContentSample{}, false, nil
	}
	return entry.sample, true, nil
}

// Put stores a sample under the session-scoped key.
func (c *MemoryCache) Put(_ context.Context, sessionID, key string, sample fingov.ContentSample) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sessionID+"\x00"+key] = memoryEntry{
		sample:    sample,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// ClearSession drops every entry belonging to a session.
func (c *MemoryCache) ClearSession(_ context.Context, sessionID string) (int, error) {
	prefix := sessionID + "\x00"

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of live entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

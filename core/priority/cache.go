package priority

import (
	"sync"
	"time"
)

// CacheEntry is one cached resolution.
type CacheEntry struct {
	Slug     string
	Rank     int
	CachedAt time.Time
}

// rankCache is a TTL cache keyed by normalized slug. Expired entries are kept
// so they can be served when the backing store is unavailable.
type rankCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newRankCache(ttl time.Duration, now func() time.Time) *rankCache {
	return &rankCache{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

// get returns the entry for key and whether it is still fresh.
func (c *rankCache) get(key string) (entry CacheEntry, fresh bool, ok bool) {
	c.mu.RLock()
	entry, ok = c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return CacheEntry{}, false, false
	}
	return entry, !c.isExpired(entry), true
}

func (c *rankCache) put(key string, rank int) {
	c.mu.Lock()
	c.entries[key] = CacheEntry{Slug: key, Rank: rank, CachedAt: c.now()}
	c.mu.Unlock()
}

func (c *rankCache) delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *rankCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *rankCache) isExpired(e CacheEntry) bool {
	if c.ttl <= 0 {
		return true // No caching
	}
	return c.now().Sub(e.CachedAt) > c.ttl
}

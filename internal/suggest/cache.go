package suggest

import (
	"sync"
	"time"

	"dayplan/internal/timeutil"
)

// DefaultTTL matches the one-hour staleness window suggestions tolerate.
const DefaultTTL = time.Hour

type cacheEntry struct {
	value   string
	savedAt time.Time
}

// Cache memoizes suggestion strings under a TTL. The clock is injected so
// expiry is testable without real wall time.
type Cache struct {
	mu      sync.Mutex
	clock   timeutil.Clock
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewCache(clock timeutil.Clock, ttl time.Duration) *Cache {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.clock.Now().Sub(entry.savedAt) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}
	return entry.value, true
}

func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.entries[key] = cacheEntry{value: value, savedAt: now}
	for k, entry := range c.entries {
		if now.Sub(entry.savedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

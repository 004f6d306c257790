// Package dedup implements the time-windowed cache of already-announced
// slots. The portal keeps reporting a slot every poll cycle until it is
// booked; without this cache every subscriber would be re-notified every 30
// seconds.
package dedup

import (
	"sync"
	"time"
)

// TTL is the window within which a key counts as already announced.
const TTL = 300 * time.Second

// Cache is a TTL set of slot keys. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// New creates an empty cache using wall-clock time.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty cache with an injected clock (useful for
// testing the TTL boundary).
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

// Seen reports whether key was marked within the last TTL.
func (c *Cache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp, ok := c.entries[key]
	if !ok {
		return false
	}
	return c.now().Sub(stamp) < TTL
}

// MarkSeen records key at the current time, overwriting any earlier stamp.
func (c *Cache) MarkSeen(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = c.now()
}

// EvictExpired drops every entry older than TTL. Called once after each
// batch of dispatch attempts, so eviction latency is bounded by the poll
// cycle, not by a timer.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, stamp := range c.entries {
		if now.Sub(stamp) >= TTL {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package geolib

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultCacheTTL = time.Hour

	DefaultAddressCacheEntries = 100
	DefaultGeocodeCacheEntries = 200
)

type cacheEntry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a fixed-capacity key/value store with lazy TTL expiry. A Get
// that finds an entry older than the TTL removes it and reports a miss.
// A Put that would exceed the capacity first evicts the entry with the
// oldest insertion time. There is no background sweeper: stale entries
// survive until the next Get touches them or eviction claims them.
//
// All methods are safe for concurrent use.
type Cache[V any] struct {
	mutex      sync.Mutex
	entries    map[string]cacheEntry[V]
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V

		return zero, false
	}

	if c.clock.Since(entry.insertedAt) >= c.ttl {
		delete(c.entries, key)

		var zero V

		return zero, false
	}

	return entry.value, true
}

func (c *Cache[V]) Put(key string, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	c.entries[key] = cacheEntry[V]{
		value:      value,
		insertedAt: c.clock.Now(),
	}
}

func (c *Cache[V]) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func (c *Cache[V]) evictOldest() {
	oldestKey := ""
	first := true

	var oldestTime time.Time

	for key, entry := range c.entries {
		if first || entry.insertedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.insertedAt
			first = false
		}
	}

	if !first {
		delete(c.entries, oldestKey)
	}
}

func NewCache[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	return NewCacheWithClock[V](maxEntries, ttl, clockwork.NewRealClock())
}

// NewCacheWithClock is NewCache with an explicit time source so tests can
// freeze and advance time deterministically.
func NewCacheWithClock[V any](maxEntries int, ttl time.Duration, clock clockwork.Clock) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultAddressCacheEntries
	}

	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Cache[V]{
		entries:    make(map[string]cacheEntry[V]),
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
	}
}

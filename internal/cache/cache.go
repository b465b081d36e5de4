// package cache provides a temporal de-duplication cache: values live for a
// fixed TTL and expired entries are reaped by a periodic sweep. There is no
// capacity-based eviction; the workload bounds the size.
package cache

import (
	"sync"
	"time"
)

// Entry holds one cached value and its expiry instant.
type Entry[V any] struct {
	Value     V
	ExpiresAt time.Time
}

// Expired reports whether the entry's TTL has elapsed.
func (e Entry[V]) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Cache is a string-keyed TTL cache safe for concurrent use. The sweep
// interval is configured independently of the TTL, since reaping can run less
// often than entries expire: an expired entry is treated as absent on read
// whether or not the sweep has removed it yet.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]Entry[V]
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// New creates a cache whose entries expire after ttl and starts the sweep
// goroutine. Call Stop to halt the sweep when the cache is discarded.
func New[V any](ttl, sweepInterval time.Duration) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]Entry[V]),
		ttl:   ttl,
		done:  make(chan struct{}),
	}

	go c.sweep(sweepInterval)

	return c
}

// Put stores value under key with expiry now+TTL, overwriting any existing
// entry. Last write wins on concurrent puts to the same key.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = Entry[V]{Value: value, ExpiresAt: time.Now().Add(c.ttl)}
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[key]
	if !ok || entry.Expired() {
		var zero V
		return zero, false
	}

	return entry.Value, true
}

// Delete removes key from the cache.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len returns the number of entries, including any expired entries the sweep
// has not reached yet.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop halts the sweep goroutine. Safe to call more than once.
func (c *Cache[V]) Stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache[V]) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.items {
				if entry.Expired() {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

package cache

import (
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// LRU is a fixed-capacity least-recently-used cache with hit/miss accounting.
//
// A capacity <= 0 disables the cache: Add is a no-op and every Get misses.
// LRU is not safe for concurrent use; the engine owning it is single-threaded.
type LRU[K comparable, V any] struct {
	lru      *simplelru.LRU[K, V]
	capacity int

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewLRU creates an LRU holding at most capacity entries.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	c := &LRU[K, V]{capacity: max(capacity, 0)}
	if capacity > 0 {
		// NewLRU only fails for a non-positive size.
		c.lru, _ = simplelru.NewLRU[K, V](capacity, func(K, V) {
			c.evictions.Add(1)
		})
	}
	return c
}

// Get returns the cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if c.lru != nil {
		if v, ok := c.lru.Get(key); ok {
			c.hits.Add(1)
			return v, true
		}
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Add caches value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Add(key K, value V) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

// Capacity returns the configured capacity. Zero means disabled.
func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.Len(),
		Capacity:  c.capacity,
	}
}

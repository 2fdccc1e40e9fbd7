package cache

// Stats is a point-in-time view of a cache.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
	// Capacity is the entry limit; 0 means unbounded for Map and disabled for LRU.
	Capacity int
}

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Map is an unbounded cache with the same accounting as LRU.
type Map[K comparable, V any] struct {
	m      map[K]V
	hits   int64
	misses int64
}

// NewMap creates an empty unbounded cache.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V)}
}

// Get returns the cached value.
func (c *Map[K, V]) Get(key K) (V, bool) {
	v, ok := c.m[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Add caches value under key.
func (c *Map[K, V]) Add(key K, value V) {
	c.m[key] = value
}

// Len returns the number of cached entries.
func (c *Map[K, V]) Len() int {
	return len(c.m)
}

// Stats returns a snapshot of the cache statistics.
func (c *Map[K, V]) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Len: len(c.m)}
}

package fastic

import (
	"github.com/hupe1980/fastic/internal/cache"
	"github.com/hupe1980/fastic/internal/engine"
)

// CacheStats is a snapshot of one engine cache.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Len       int   `json:"len"`
	// Capacity is 0 for unbounded caches and for disabled bounded caches.
	Capacity int `json:"capacity"`
}

// FetchStats describes base reasoner traffic admitted by the resource limits.
type FetchStats struct {
	Workers   int   `json:"workers"`
	Limited   bool  `json:"rate_limited"`
	Calls     int64 `json:"calls"`
	Throttled int64 `json:"throttled"`
}

// Stats is a snapshot of a Checker. Cache counters start over with every
// generation.
type Stats struct {
	Generation   string                `json:"generation"`
	Resets       int                   `json:"resets"`
	Individuals  int                   `json:"individuals"`
	ClosedWorld  bool                  `json:"closed_world"`
	ObjectTables int                   `json:"object_tables"`
	DataTables   int                   `json:"data_tables"`
	Caches       map[string]CacheStats `json:"caches"`
	// Fetch is nil unless resource limits are configured. Its counters span
	// all generations.
	Fetch *FetchStats `json:"fetch,omitempty"`
}

// Stats returns the current statistics.
func (c *Checker) Stats() Stats {
	s := c.engine.Stats()
	stats := Stats{
		Generation:   c.generation.String(),
		Resets:       c.resets,
		Individuals:  s.Individuals,
		ClosedWorld:  c.opts.closedWorld,
		ObjectTables: s.ObjectTables,
		DataTables:   s.DataTables,
		Caches: map[string]CacheStats{
			engine.CacheClass:           cacheStats(s.Classes),
			engine.CacheObjectSubjects:  cacheStats(s.ObjectSubjects),
			engine.CacheInverseSubjects: cacheStats(s.InverseSubjects),
			engine.CacheDataSubjects:    cacheStats(s.DataSubjects),
			engine.CacheObjectSome:      cacheStats(s.ObjectSome),
			engine.CacheDataSome:        cacheStats(s.DataSome),
			engine.CacheCardinality:     cacheStats(s.Cardinality),
		},
	}
	if c.rc != nil {
		stats.Fetch = &FetchStats{
			Workers:   c.rc.Workers(),
			Limited:   c.rc.Limited(),
			Calls:     c.rc.Calls(),
			Throttled: c.rc.Throttled(),
		}
	}
	return stats
}

func cacheStats(s cache.Stats) CacheStats {
	return CacheStats{
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		Len:       s.Len,
		Capacity:  s.Capacity,
	}
}

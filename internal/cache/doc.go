// Package cache provides the result caches of the retrieval engine.
//
//   - LRU: fixed-capacity least-recently-used cache backed by
//     hashicorp/golang-lru. Used for property subject sets and expression results.
//   - Map: unbounded cache. Used for class membership.
//
// Both count hits and misses. Eviction only costs recomputation: callers must
// never depend on an entry being resident.
package cache

// Package relation materializes property assertions into subject-indexed tables.
//
// A table is built once per property expression (object property, inverse
// object property, data property) and then answers "which subjects have a
// value" and "what are the values of subject s" without touching the base
// reasoner again.
//
// # Build paths
//
// When the base reasoner implements reasoner.EdgeLister, every assertion of
// the named property is streamed in one pass (edges are swapped for an inverse
// property). Otherwise every individual of the index is queried on its own.
// That fallback fans out over resource.Controller worker slots and is
// throttled by its rate limiter; results are assembled in index order, so the
// table is the same for every degree of concurrency.
//
// Object targets are stored as roaring bitmaps over index positions; literals
// are stored de-duplicated in first-seen order. Values naming individuals
// unknown to the index are dropped.
package relation

// Package engine evaluates class expressions to sets of individuals.
//
// The engine orchestrates:
//   - the individual index (individuals to bit positions)
//   - lazily materialized property tables
//   - bounded LRU caches of property subjects, one per property kind
//   - bounded LRU caches of existential, data and cardinality results
//   - an unbounded cache of atomic class instances
//
// Evaluation is a structural recursion over the closed set of expression
// kinds. Universal restrictions are rewritten to negated existentials, and
// has-value restrictions to existentials over singletons. Complements are
// evaluated against the universe of indexed individuals only when closed-world
// negation is enabled; otherwise they denote the empty set and are reported
// through the MetricsObserver and the logger.
//
// Cache keys are the functional-style renderings of expressions, so two
// structurally equal expressions share one entry.
package engine

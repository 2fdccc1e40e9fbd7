// Package fastic provides fast instance retrieval for description-logic class
// expressions.
//
// A Checker sits in front of a base reasoner (package reasoner) that only
// answers ground questions: the instances of an atomic class, the property
// values of one individual. It evaluates arbitrary class expressions (package
// expr) by set algebra over bitmasks of indexed individuals, and memoizes
// intermediate results so that the thousands of candidate expressions a
// concept learner evaluates stay cheap.
//
// # Quick Start
//
//	r := memory.New()
//	prefixes, _, _ := ontology.Load(ctx, file, r)
//
//	c, _ := fastic.New(ctx, r, fastic.WithClosedWorldNegation(true))
//
//	ce, _ := expr.Parse("ObjectSomeValuesFrom(:hasChild :Person)", prefixes)
//	instances, _ := c.Instances(ctx, ce, false)
//	for ind := range instances {
//	    fmt.Println(prefixes.Abbreviate(string(ind)))
//	}
//
// # Negation
//
// Class complement is only evaluated under closed-world negation
// (WithClosedWorldNegation): ¬C is every indexed individual not in C. With the
// default open-world setting a complement evaluates to the empty set, which is
// sound but incomplete; a warning is logged and MetricsCollector.RecordUnsupported
// is called. Universal restrictions are evaluated as negated existentials and
// are affected in the same way.
//
// # Caching
//
// Atomic class instances are cached without bound. Property subjects and
// existential, data and cardinality results are cached in LRUs of
// WithCacheSize entries each. Property assertions are materialized once per
// property, through reasoner.EdgeLister when the base reasoner implements it.
// Caches never change results.
//
// # Staleness
//
// The Checker snapshots the base reasoner's individuals and property tables.
// After the ontology changes, call Reset. Changes are not detected.
package fastic

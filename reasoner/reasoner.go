// Package reasoner defines the boundary to the base reasoner: the oracle of
// ground facts the instance checker accelerates.
//
// A base reasoner answers questions about asserted (or entailed) facts one
// individual or class at a time. The instance checker calls it to build its
// index, to fetch atomic class instances and to materialize property tables.
// Implementations used with a concurrent materialization fallback must be
// safe for concurrent reads.
package reasoner

import (
	"context"

	"github.com/hupe1980/fastic/model"
)

// Reasoner is the base reasoner contract.
type Reasoner interface {
	// Individuals returns every named individual of the ontology.
	Individuals(ctx context.Context) ([]model.Individual, error)

	// Types returns the classes ind is an instance of. With direct set, only
	// the most specific (asserted) classes are returned.
	Types(ctx context.Context, ind model.Individual, direct bool) ([]model.Class, error)

	// Instances returns the instances of an atomic class.
	Instances(ctx context.Context, c model.Class, direct bool) ([]model.Individual, error)

	// ObjectPropertyValues returns the objects related to ind by p.
	ObjectPropertyValues(ctx context.Context, ind model.Individual, p model.ObjectPropertyExpression) ([]model.Individual, error)

	// DataPropertyValues returns the literals related to ind by p.
	DataPropertyValues(ctx context.Context, ind model.Individual, p model.DataProperty) ([]model.Literal, error)
}

// EdgeLister is implemented by base reasoners that can stream every assertion
// of a property in one pass. The instance checker prefers it over per-subject
// queries when materializing property tables.
//
// Returning an error from fn stops the iteration and is returned unchanged.
type EdgeLister interface {
	ObjectPropertyEdges(ctx context.Context, p model.ObjectProperty, fn func(subject, object model.Individual) error) error
	DataPropertyEdges(ctx context.Context, p model.DataProperty, fn func(subject model.Individual, value model.Literal) error) error
}

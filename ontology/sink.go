package ontology

import (
	"context"

	"github.com/hupe1980/fastic/model"
)

// Sink receives the facts of a loaded ontology. Both reference base
// reasoners implement it.
type Sink interface {
	AddIndividual(ctx context.Context, ind model.Individual) error
	AddClassAssertion(ctx context.Context, c model.Class, ind model.Individual) error
	AddSubClassOf(ctx context.Context, sub, super model.Class) error
	AddObjectPropertyAssertion(ctx context.Context, p model.ObjectProperty, subject, object model.Individual) error
	AddDataPropertyAssertion(ctx context.Context, p model.DataProperty, subject model.Individual, value model.Literal) error
}

// Package memory provides an in-memory base reasoner over asserted facts.
//
// It supports atomic subclass axioms: non-direct class instances and types are
// closed under the (transitive, cycle-safe) subclass hierarchy. Everything
// else is answered from assertions. The zero value is not usable; call New.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner"
)

var (
	_ reasoner.Reasoner   = (*Reasoner)(nil)
	_ reasoner.EdgeLister = (*Reasoner)(nil)
)

type (
	individualSet = map[model.Individual]struct{}
	classSet      = map[model.Class]struct{}
)

// Reasoner is an in-memory assertion store. It is safe for concurrent use.
type Reasoner struct {
	mu sync.RWMutex

	individuals individualSet
	instances   map[model.Class]individualSet
	types       map[model.Individual]classSet
	supers      map[model.Class]classSet
	subs        map[model.Class]classSet
	objects     map[model.ObjectProperty]*adjacency
	data        map[model.DataProperty]map[model.Individual][]model.Literal
}

// adjacency stores one object property in both directions, in insertion order.
type adjacency struct {
	forward  map[model.Individual][]model.Individual
	reverse  map[model.Individual][]model.Individual
	subjects []model.Individual
}

// New creates an empty reasoner.
func New() *Reasoner {
	return &Reasoner{
		individuals: make(individualSet),
		instances:   make(map[model.Class]individualSet),
		types:       make(map[model.Individual]classSet),
		supers:      make(map[model.Class]classSet),
		subs:        make(map[model.Class]classSet),
		objects:     make(map[model.ObjectProperty]*adjacency),
		data:        make(map[model.DataProperty]map[model.Individual][]model.Literal),
	}
}

// AddIndividual declares a named individual.
func (r *Reasoner) AddIndividual(_ context.Context, ind model.Individual) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.individuals[ind] = struct{}{}
	return nil
}

// AddClassAssertion asserts that ind is an instance of c.
func (r *Reasoner) AddClassAssertion(_ context.Context, c model.Class, ind model.Individual) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.individuals[ind] = struct{}{}
	addTo(r.instances, c, ind)
	addTo(r.types, ind, c)
	return nil
}

// AddSubClassOf asserts that sub is a subclass of super.
func (r *Reasoner) AddSubClassOf(_ context.Context, sub, super model.Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addTo(r.supers, sub, super)
	addTo(r.subs, super, sub)
	return nil
}

// AddObjectPropertyAssertion asserts p(subject, object). Duplicates are ignored.
func (r *Reasoner) AddObjectPropertyAssertion(_ context.Context, p model.ObjectProperty, subject, object model.Individual) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.individuals[subject] = struct{}{}
	r.individuals[object] = struct{}{}

	adj, ok := r.objects[p]
	if !ok {
		adj = &adjacency{
			forward: make(map[model.Individual][]model.Individual),
			reverse: make(map[model.Individual][]model.Individual),
		}
		r.objects[p] = adj
	}
	if slices.Contains(adj.forward[subject], object) {
		return nil
	}
	if len(adj.forward[subject]) == 0 {
		adj.subjects = append(adj.subjects, subject)
	}
	adj.forward[subject] = append(adj.forward[subject], object)
	adj.reverse[object] = append(adj.reverse[object], subject)
	return nil
}

// AddDataPropertyAssertion asserts p(subject, value). Duplicates are ignored.
func (r *Reasoner) AddDataPropertyAssertion(_ context.Context, p model.DataProperty, subject model.Individual, value model.Literal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.individuals[subject] = struct{}{}

	values, ok := r.data[p]
	if !ok {
		values = make(map[model.Individual][]model.Literal)
		r.data[p] = values
	}
	if !slices.Contains(values[subject], value) {
		values[subject] = append(values[subject], value)
	}
	return nil
}

// Individuals returns every individual in IRI order.
func (r *Reasoner) Individuals(_ context.Context) ([]model.Individual, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.individuals), nil
}

// Instances returns the instances of c in IRI order.
func (r *Reasoner) Instances(_ context.Context, c model.Class, direct bool) ([]model.Individual, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c == model.Thing && !direct {
		return sortedKeys(r.individuals), nil
	}
	if c == model.Nothing {
		return nil, nil
	}

	classes := []model.Class{c}
	if !direct {
		classes = closure(r.subs, c)
	}

	out := make(individualSet)
	for _, cls := range classes {
		for ind := range r.instances[cls] {
			out[ind] = struct{}{}
		}
	}
	return sortedKeys(out), nil
}

// Types returns the classes of ind in IRI order. Non-direct types include all
// superclasses and owl:Thing.
func (r *Reasoner) Types(_ context.Context, ind model.Individual, direct bool) ([]model.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.individuals[ind]; !ok {
		return nil, nil
	}

	asserted := r.types[ind]
	if direct {
		return sortedKeys(asserted), nil
	}

	out := classSet{model.Thing: {}}
	for c := range asserted {
		for _, sup := range closure(r.supers, c) {
			out[sup] = struct{}{}
		}
	}
	return sortedKeys(out), nil
}

// ObjectPropertyValues returns the objects of ind under p in assertion order.
func (r *Reasoner) ObjectPropertyValues(_ context.Context, ind model.Individual, p model.ObjectPropertyExpression) ([]model.Individual, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adj, ok := r.objects[p.Property]
	if !ok {
		return nil, nil
	}
	if p.Inverse {
		return slices.Clone(adj.reverse[ind]), nil
	}
	return slices.Clone(adj.forward[ind]), nil
}

// DataPropertyValues returns the literals of ind under p in assertion order.
func (r *Reasoner) DataPropertyValues(_ context.Context, ind model.Individual, p model.DataProperty) ([]model.Literal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.data[p][ind]), nil
}

// ObjectPropertyEdges streams every assertion of p, grouped by subject.
func (r *Reasoner) ObjectPropertyEdges(ctx context.Context, p model.ObjectProperty, fn func(subject, object model.Individual) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adj, ok := r.objects[p]
	if !ok {
		return nil
	}
	for _, s := range adj.subjects {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, o := range adj.forward[s] {
			if err := fn(s, o); err != nil {
				return err
			}
		}
	}
	return nil
}

// DataPropertyEdges streams every assertion of p, grouped by subject in IRI order.
func (r *Reasoner) DataPropertyEdges(ctx context.Context, p model.DataProperty, fn func(subject model.Individual, value model.Literal) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	values := r.data[p]
	subjects := make([]model.Individual, 0, len(values))
	for s := range values {
		subjects = append(subjects, s)
	}
	slices.Sort(subjects)

	for _, s := range subjects {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, v := range values[s] {
			if err := fn(s, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// closure returns c and everything reachable from it in edges.
func closure(edges map[model.Class]classSet, c model.Class) []model.Class {
	seen := classSet{c: {}}
	queue := []model.Class{c}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for n := range edges[next] {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return sortedKeys(seen)
}

func addTo[K, V comparable](m map[K]map[V]struct{}, k K, v V) {
	set, ok := m[k]
	if !ok {
		set = make(map[V]struct{})
		m[k] = set
	}
	set[v] = struct{}{}
}

func sortedKeys[K ~string](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

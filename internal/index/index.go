// Package index maps named individuals to dense bit positions.
//
// Positions are assigned in lexicographic IRI order after de-duplication, so
// two indexes built from the same individuals are identical regardless of the
// order the base reasoner reported them in.
package index

import (
	"iter"
	"slices"

	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/model"
)

// Index is an immutable bijection between individuals and positions 0..N-1.
type Index struct {
	individuals []model.Individual
	positions   map[model.Individual]int
	all         bitmask.Mask
}

// New builds an index over individuals. Duplicates are collapsed.
func New(individuals []model.Individual) *Index {
	sorted := slices.Clone(individuals)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	positions := make(map[model.Individual]int, len(sorted))
	for i, ind := range sorted {
		positions[ind] = i
	}

	return &Index{
		individuals: sorted,
		positions:   positions,
		all:         bitmask.Full(len(sorted)),
	}
}

// Len returns the number of individuals.
func (x *Index) Len() int {
	return len(x.individuals)
}

// All returns the mask of every individual.
func (x *Index) All() bitmask.Mask {
	return x.all
}

// None returns the empty mask over the index's universe.
func (x *Index) None() bitmask.Mask {
	return bitmask.Empty(len(x.individuals))
}

// Encode returns the position of ind.
func (x *Index) Encode(ind model.Individual) (int, bool) {
	i, ok := x.positions[ind]
	return i, ok
}

// EncodeAll returns the mask of the given individuals. Unknown individuals are skipped.
func (x *Index) EncodeAll(individuals []model.Individual) bitmask.Mask {
	positions := make([]int, 0, len(individuals))
	for _, ind := range individuals {
		if i, ok := x.positions[ind]; ok {
			positions = append(positions, i)
		}
	}
	return bitmask.Of(len(x.individuals), positions...)
}

// Individual returns the individual at position i.
func (x *Index) Individual(i int) model.Individual {
	return x.individuals[i]
}

// Decode yields the individuals of m in ascending position order.
func (x *Index) Decode(m bitmask.Mask) iter.Seq[model.Individual] {
	return func(yield func(model.Individual) bool) {
		for i := range m.Bits() {
			if i >= len(x.individuals) {
				return
			}
			if !yield(x.individuals[i]) {
				return
			}
		}
	}
}

// Individuals yields every individual in position order.
func (x *Index) Individuals() iter.Seq[model.Individual] {
	return slices.Values(x.individuals)
}

package relation

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/model"
)

// ObjectTable maps subject positions to the positions of their objects.
// Tables are immutable once built.
type ObjectTable struct {
	targets  []*roaring.Bitmap // indexed by subject position; nil when empty
	subjects bitmask.Mask
	edges    int
}

func newObjectTable(targets []*roaring.Bitmap) *ObjectTable {
	b := bitmask.NewBuilder(len(targets))
	edges := 0
	for s, t := range targets {
		if t == nil || t.IsEmpty() {
			targets[s] = nil
			continue
		}
		t.RunOptimize()
		b.Set(s)
		edges += int(t.GetCardinality())
	}
	return &ObjectTable{targets: targets, subjects: b.Mask(), edges: edges}
}

// Targets returns the objects of subject, or nil.
func (t *ObjectTable) Targets(subject int) *roaring.Bitmap {
	if subject < 0 || subject >= len(t.targets) {
		return nil
	}
	return t.targets[subject]
}

// Subjects returns the mask of subjects with at least one object.
func (t *ObjectTable) Subjects() bitmask.Mask {
	return t.subjects
}

// Len returns the number of subjects.
func (t *ObjectTable) Len() int {
	return t.subjects.Count()
}

// Edges returns the number of distinct (subject, object) pairs.
func (t *ObjectTable) Edges() int {
	return t.edges
}

// DataTable maps subject positions to their de-duplicated literals.
type DataTable struct {
	values   [][]model.Literal // indexed by subject position
	subjects bitmask.Mask
	edges    int
}

func newDataTable(values [][]model.Literal) *DataTable {
	b := bitmask.NewBuilder(len(values))
	edges := 0
	for s, vs := range values {
		if len(vs) == 0 {
			values[s] = nil
			continue
		}
		values[s] = dedupe(vs)
		b.Set(s)
		edges += len(values[s])
	}
	return &DataTable{values: values, subjects: b.Mask(), edges: edges}
}

// Values returns the literals of subject. The slice must not be modified.
func (t *DataTable) Values(subject int) []model.Literal {
	if subject < 0 || subject >= len(t.values) {
		return nil
	}
	return t.values[subject]
}

// Subjects returns the mask of subjects with at least one literal.
func (t *DataTable) Subjects() bitmask.Mask {
	return t.subjects
}

// All yields every subject with its literals in ascending subject order.
func (t *DataTable) All() iter.Seq2[int, []model.Literal] {
	return func(yield func(int, []model.Literal) bool) {
		for s := range t.subjects.Bits() {
			if !yield(s, t.values[s]) {
				return
			}
		}
	}
}

// Len returns the number of subjects.
func (t *DataTable) Len() int {
	return t.subjects.Count()
}

// Edges returns the number of distinct (subject, literal) pairs.
func (t *DataTable) Edges() int {
	return t.edges
}

// dedupe removes repeated literals, keeping first occurrences in order.
func dedupe(vs []model.Literal) []model.Literal {
	if len(vs) < 2 {
		return vs
	}
	seen := make(map[model.Literal]struct{}, len(vs))
	out := vs[:0]
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

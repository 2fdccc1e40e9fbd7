package engine

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/model"
)

var subjectCacheNames = [...]string{
	model.DataPropertyKind:          CacheDataSubjects,
	model.ObjectPropertyKind:        CacheObjectSubjects,
	model.InverseObjectPropertyKind: CacheInverseSubjects,
}

// objectSubjects returns the individuals with at least one p-value.
func (e *Engine) objectSubjects(ctx context.Context, p model.ObjectPropertyExpression) (bitmask.Mask, error) {
	kind := p.Kind()
	return e.cached(e.subjects[kind], subjectCacheNames[kind], string(p.Property), func() (bitmask.Mask, error) {
		t, err := e.rel.Objects(ctx, p)
		if err != nil {
			return bitmask.Mask{}, err
		}
		return t.Subjects(), nil
	})
}

// dataSubjects returns the individuals with at least one p-literal.
func (e *Engine) dataSubjects(ctx context.Context, p model.DataProperty) (bitmask.Mask, error) {
	kind := model.DataPropertyKind
	return e.cached(e.subjects[kind], subjectCacheNames[kind], string(p), func() (bitmask.Mask, error) {
		t, err := e.rel.Data(ctx, p)
		if err != nil {
			return bitmask.Mask{}, err
		}
		return t.Subjects(), nil
	})
}

func (e *Engine) someValues(ctx context.Context, c expr.ObjectSomeValuesFrom) (bitmask.Mask, error) {
	if c.Filler == nil {
		return bitmask.Mask{}, malformed(c, "missing filler", nil)
	}
	if expr.IsThing(c.Filler) {
		return e.objectSubjects(ctx, c.Property)
	}

	return e.cached(e.objectSome, CacheObjectSome, c.String(), func() (bitmask.Mask, error) {
		filler, err := e.eval(ctx, c.Filler)
		if err != nil {
			return bitmask.Mask{}, err
		}
		subjects, err := e.objectSubjects(ctx, c.Property)
		if err != nil {
			return bitmask.Mask{}, err
		}
		if filler.IsEmpty() {
			return e.idx.None(), nil
		}
		t, err := e.rel.Objects(ctx, c.Property)
		if err != nil {
			return bitmask.Mask{}, err
		}

		b := bitmask.NewBuilder(e.idx.Len())
		for s := range subjects.Bits() {
			if countIn(t.Targets(s), filler, 1) > 0 {
				b.Set(s)
			}
		}
		return b.Mask(), nil
	})
}

// countBetween returns the individuals with lo <= |p-values in filler| <= hi.
// hi < 0 means unbounded. Individuals without p-values count 0.
func (e *Engine) countBetween(ctx context.Context, c expr.ClassExpression, p model.ObjectPropertyExpression, filler expr.ClassExpression, lo, hi int) (bitmask.Mask, error) {
	if filler == nil {
		return bitmask.Mask{}, malformed(c, "missing filler", nil)
	}

	return e.cached(e.cardinality, CacheCardinality, c.String(), func() (bitmask.Mask, error) {
		fm, err := e.eval(ctx, filler)
		if err != nil {
			return bitmask.Mask{}, err
		}
		if lo == 0 && hi < 0 {
			return e.idx.All(), nil
		}
		subjects, err := e.objectSubjects(ctx, p)
		if err != nil {
			return bitmask.Mask{}, err
		}
		t, err := e.rel.Objects(ctx, p)
		if err != nil {
			return bitmask.Mask{}, err
		}

		b := bitmask.NewBuilder(e.idx.Len())
		if lo == 0 {
			b.Or(e.idx.All().AndNot(subjects))
		}

		// Counting past max(lo, hi+1) cannot change the outcome.
		limit := lo
		if hi >= 0 {
			limit = hi + 1
		}
		for s := range subjects.Bits() {
			n := countIn(t.Targets(s), fm, limit)
			if n >= lo && (hi < 0 || n <= hi) {
				b.Set(s)
			}
		}
		return b.Mask(), nil
	})
}

// maxCardinality evaluates ≤n P.C as the complement of ≥(n+1) P.C.
func (e *Engine) maxCardinality(ctx context.Context, c expr.ObjectMaxCardinality) (bitmask.Mask, error) {
	if c.Filler == nil {
		return bitmask.Mask{}, malformed(c, "missing filler", nil)
	}
	if c.Cardinality < 0 {
		return e.idx.None(), nil
	}

	return e.cached(e.cardinality, CacheCardinality, c.String(), func() (bitmask.Mask, error) {
		atLeast, err := e.eval(ctx, expr.Min(c.Cardinality+1, c.Property, c.Filler))
		if err != nil {
			return bitmask.Mask{}, err
		}
		return atLeast.Complement(), nil
	})
}

// countIn counts the targets contained in filler, stopping at limit.
func countIn(targets *roaring.Bitmap, filler bitmask.Mask, limit int) int {
	if targets == nil {
		return 0
	}
	n := 0
	it := targets.Iterator()
	for it.HasNext() {
		if filler.Test(int(it.Next())) {
			n++
			if n >= limit {
				return n
			}
		}
	}
	return n
}

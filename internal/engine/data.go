package engine

import (
	"context"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/model"
)

func (e *Engine) dataSomeValues(ctx context.Context, c expr.DataSomeValuesFrom) (bitmask.Mask, error) {
	if c.Range == nil {
		return bitmask.Mask{}, malformed(c, "missing data range", nil)
	}

	return e.cached(e.dataSome, CacheDataSome, c.String(), func() (bitmask.Mask, error) {
		switch r := c.Range.(type) {
		case expr.DataComplementOf:
			if r.Range == nil {
				return bitmask.Mask{}, malformed(c, "missing data range", nil)
			}
			inner, err := e.eval(ctx, expr.DataSome(c.Property, r.Range))
			if err != nil {
				return bitmask.Mask{}, err
			}
			subjects, err := e.dataSubjects(ctx, c.Property)
			if err != nil {
				return bitmask.Mask{}, err
			}
			return subjects.AndNot(inner), nil

		case expr.DataUnionOf:
			if len(r.Ranges) == 0 {
				return bitmask.Mask{}, malformed(c, "data union without operands", nil)
			}
			acc := e.idx.None()
			for _, op := range r.Ranges {
				m, err := e.eval(ctx, expr.DataSome(c.Property, op))
				if err != nil {
					return bitmask.Mask{}, err
				}
				acc = acc.Or(m)
			}
			return acc, nil

		case expr.DataIntersectionOf:
			if len(r.Ranges) == 0 {
				return bitmask.Mask{}, malformed(c, "data intersection without operands", nil)
			}
			acc := e.idx.All()
			for _, op := range r.Ranges {
				m, err := e.eval(ctx, expr.DataSome(c.Property, op))
				if err != nil {
					return bitmask.Mask{}, err
				}
				acc = acc.And(m)
			}
			return acc, nil
		}

		match, err := matcher(c, c.Range)
		if err != nil {
			return bitmask.Mask{}, err
		}
		t, err := e.rel.Data(ctx, c.Property)
		if err != nil {
			return bitmask.Mask{}, err
		}

		b := bitmask.NewBuilder(e.idx.Len())
		for s, values := range t.All() {
			for _, v := range values {
				ok, err := match(v)
				if err != nil {
					return bitmask.Mask{}, malformed(c, "incomparable facet value", err)
				}
				if ok {
					b.Set(s)
					break
				}
			}
		}
		return b.Mask(), nil
	})
}

// matcher returns the membership test of a leaf data range.
func matcher(c expr.ClassExpression, r expr.DataRange) (func(model.Literal) (bool, error), error) {
	switch r := r.(type) {
	case expr.NamedDatatype:
		if r.Datatype == model.RDFSLiteral {
			return func(model.Literal) (bool, error) { return true, nil }, nil
		}
		return func(v model.Literal) (bool, error) {
			return v.Datatype == r.Datatype, nil
		}, nil

	case expr.DataOneOf:
		if len(r.Values) == 0 {
			return nil, malformed(c, "literal enumeration without values", nil)
		}
		set := make(map[model.Literal]struct{}, len(r.Values))
		for _, v := range r.Values {
			set[v] = struct{}{}
		}
		return func(v model.Literal) (bool, error) {
			_, ok := set[v]
			return ok, nil
		}, nil

	case expr.DatatypeRestriction:
		if len(r.Facets) == 0 {
			return nil, malformed(c, "datatype restriction without facets", nil)
		}
		for _, f := range r.Facets {
			if !f.Facet.Supported() {
				return nil, malformed(c, "unsupported facet "+string(f.Facet), nil)
			}
		}
		return func(v model.Literal) (bool, error) {
			if v.Datatype != r.Datatype {
				return false, nil
			}
			for _, f := range r.Facets {
				ok, err := f.Matches(v)
				if err != nil || !ok {
					return false, err
				}
			}
			return true, nil
		}, nil

	default:
		return nil, malformed(c, "unsupported data range kind", nil)
	}
}

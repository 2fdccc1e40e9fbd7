package expr

import (
	"github.com/hupe1980/fastic/internal/fss"
	"github.com/hupe1980/fastic/model"
)

// Parse reads a class expression written in functional-style syntax.
// Abbreviated IRIs are expanded with p, which may be nil when only full IRIs
// are used. Errors are *fss.SyntaxError values carrying line and column.
//
//	ce, err := expr.Parse("ObjectSomeValuesFrom(ex:hasChild ex:Person)", prefixes)
func Parse(text string, p *model.Prefixes) (ClassExpression, error) {
	t, err := fss.Parse(text)
	if err != nil {
		return nil, err
	}
	return fromTerm(t, p)
}

// ParseDataRange reads a data range written in functional-style syntax.
func ParseDataRange(text string, p *model.Prefixes) (DataRange, error) {
	t, err := fss.Parse(text)
	if err != nil {
		return nil, err
	}
	return rangeFromTerm(t, p)
}

// fromTerm converts a parsed term into a class expression.
func fromTerm(t fss.Term, p *model.Prefixes) (ClassExpression, error) {
	if t.IsIRI() {
		iri, err := t.ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		return Class(model.Class(iri)), nil
	}
	if t.Kind != fss.Call {
		return nil, t.Errorf("expected class expression, got %s", t.Kind)
	}

	switch t.Text {
	case "ObjectUnionOf", "ObjectIntersectionOf":
		ops := make([]ClassExpression, 0, len(t.Args))
		for _, a := range t.Args {
			op, err := fromTerm(a, p)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
		}
		if t.Text == "ObjectUnionOf" {
			return Or(ops...), nil
		}
		return And(ops...), nil

	case "ObjectComplementOf":
		if err := arity(t, 1, 1); err != nil {
			return nil, err
		}
		op, err := fromTerm(t.Args[0], p)
		if err != nil {
			return nil, err
		}
		return Not(op), nil

	case "ObjectOneOf":
		inds := make([]model.Individual, 0, len(t.Args))
		for _, a := range t.Args {
			iri, err := a.ResolveIRI(p)
			if err != nil {
				return nil, err
			}
			inds = append(inds, model.Individual(iri))
		}
		return OneOf(inds...), nil

	case "ObjectSomeValuesFrom", "ObjectAllValuesFrom":
		if err := arity(t, 2, 2); err != nil {
			return nil, err
		}
		prop, err := propertyFromTerm(t.Args[0], p)
		if err != nil {
			return nil, err
		}
		filler, err := fromTerm(t.Args[1], p)
		if err != nil {
			return nil, err
		}
		if t.Text == "ObjectSomeValuesFrom" {
			return Some(prop, filler), nil
		}
		return Only(prop, filler), nil

	case "ObjectHasValue":
		if err := arity(t, 2, 2); err != nil {
			return nil, err
		}
		prop, err := propertyFromTerm(t.Args[0], p)
		if err != nil {
			return nil, err
		}
		iri, err := t.Args[1].ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		return HasValue(prop, model.Individual(iri)), nil

	case "ObjectMinCardinality", "ObjectMaxCardinality", "ObjectExactCardinality":
		if err := arity(t, 2, 3); err != nil {
			return nil, err
		}
		n, err := t.Args[0].ResolveInt()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, t.Args[0].Errorf("cardinality must be non-negative")
		}
		prop, err := propertyFromTerm(t.Args[1], p)
		if err != nil {
			return nil, err
		}
		var filler ClassExpression = Thing
		if len(t.Args) == 3 {
			if filler, err = fromTerm(t.Args[2], p); err != nil {
				return nil, err
			}
		}
		switch t.Text {
		case "ObjectMinCardinality":
			return Min(n, prop, filler), nil
		case "ObjectMaxCardinality":
			return Max(n, prop, filler), nil
		default:
			return Exactly(n, prop, filler), nil
		}

	case "DataSomeValuesFrom", "DataAllValuesFrom":
		if err := arity(t, 2, 2); err != nil {
			return nil, err
		}
		iri, err := t.Args[0].ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		r, err := rangeFromTerm(t.Args[1], p)
		if err != nil {
			return nil, err
		}
		if t.Text == "DataSomeValuesFrom" {
			return DataSome(model.DataProperty(iri), r), nil
		}
		return DataOnly(model.DataProperty(iri), r), nil

	case "DataHasValue":
		if err := arity(t, 2, 2); err != nil {
			return nil, err
		}
		iri, err := t.Args[0].ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		v, err := t.Args[1].ResolveLiteral(p)
		if err != nil {
			return nil, err
		}
		return HasLiteral(model.DataProperty(iri), v), nil

	case "ObjectHasSelf", "DataMinCardinality", "DataMaxCardinality", "DataExactCardinality":
		return nil, t.Errorf("unsupported class expression %s", t.Text)
	}
	return nil, t.Errorf("unknown class expression %s", t.Text)
}

func propertyFromTerm(t fss.Term, p *model.Prefixes) (model.ObjectPropertyExpression, error) {
	if t.Kind == fss.Call && t.Text == "ObjectInverseOf" {
		if err := arity(t, 1, 1); err != nil {
			return model.ObjectPropertyExpression{}, err
		}
		inner, err := propertyFromTerm(t.Args[0], p)
		if err != nil {
			return model.ObjectPropertyExpression{}, err
		}
		return inner.Invert(), nil
	}
	iri, err := t.ResolveIRI(p)
	if err != nil {
		return model.ObjectPropertyExpression{}, err
	}
	return model.ObjectProperty(iri).Expression(), nil
}

func rangeFromTerm(t fss.Term, p *model.Prefixes) (DataRange, error) {
	if t.IsIRI() {
		iri, err := t.ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		return Datatype(model.Datatype(iri)), nil
	}
	if t.Kind != fss.Call {
		return nil, t.Errorf("expected data range, got %s", t.Kind)
	}

	switch t.Text {
	case "DataOneOf":
		values := make([]model.Literal, 0, len(t.Args))
		for _, a := range t.Args {
			v, err := a.ResolveLiteral(p)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return Literals(values...), nil

	case "DataComplementOf":
		if err := arity(t, 1, 1); err != nil {
			return nil, err
		}
		r, err := rangeFromTerm(t.Args[0], p)
		if err != nil {
			return nil, err
		}
		return DataNot(r), nil

	case "DataUnionOf", "DataIntersectionOf":
		ops := make([]DataRange, 0, len(t.Args))
		for _, a := range t.Args {
			r, err := rangeFromTerm(a, p)
			if err != nil {
				return nil, err
			}
			ops = append(ops, r)
		}
		if t.Text == "DataUnionOf" {
			return DataOr(ops...), nil
		}
		return DataAnd(ops...), nil

	case "DatatypeRestriction":
		if len(t.Args) < 3 || len(t.Args)%2 == 0 {
			return nil, t.Errorf("DatatypeRestriction needs a datatype and facet/value pairs")
		}
		dt, err := t.Args[0].ResolveIRI(p)
		if err != nil {
			return nil, err
		}
		facets := make([]FacetRestriction, 0, len(t.Args)/2)
		for i := 1; i < len(t.Args); i += 2 {
			firi, err := t.Args[i].ResolveIRI(p)
			if err != nil {
				return nil, err
			}
			f := Facet(firi)
			if !f.Supported() {
				return nil, t.Args[i].Errorf("unsupported facet %s", firi)
			}
			v, err := t.Args[i+1].ResolveLiteral(p)
			if err != nil {
				return nil, err
			}
			facets = append(facets, FacetRestriction{Facet: f, Value: v})
		}
		return Restrict(model.Datatype(dt), facets...), nil
	}
	return nil, t.Errorf("unknown data range %s", t.Text)
}

func arity(t fss.Term, lo, hi int) error {
	if n := len(t.Args); n < lo || n > hi {
		if lo == hi {
			return t.Errorf("%s takes %d arguments, got %d", t.Text, lo, n)
		}
		return t.Errorf("%s takes %d to %d arguments, got %d", t.Text, lo, hi, n)
	}
	return nil
}

package expr

import (
	"fmt"

	"github.com/hupe1980/fastic/model"
)

// RangeKind tags the concrete type of a DataRange.
type RangeKind uint8

const (
	// RangeInvalid is the zero RangeKind.
	RangeInvalid RangeKind = iota
	RangeDatatype
	RangeOneOf
	RangeComplement
	RangeUnion
	RangeIntersection
	RangeRestriction
)

func (k RangeKind) String() string {
	switch k {
	case RangeDatatype:
		return "Datatype"
	case RangeOneOf:
		return "DataOneOf"
	case RangeComplement:
		return "DataComplementOf"
	case RangeUnion:
		return "DataUnionOf"
	case RangeIntersection:
		return "DataIntersectionOf"
	case RangeRestriction:
		return "DatatypeRestriction"
	default:
		return "Invalid"
	}
}

// DataRange is a set of literals. Like ClassExpression the set of
// implementations is closed.
type DataRange interface {
	Kind() RangeKind
	String() string
	dataRange()
}

// NamedDatatype is every literal of a datatype. rdfs:Literal matches all literals.
type NamedDatatype struct {
	Datatype model.Datatype
}

// DataOneOf is an enumeration of literals.
type DataOneOf struct {
	Values []model.Literal
}

// DataComplementOf is the complement of a data range.
type DataComplementOf struct {
	Range DataRange
}

// DataUnionOf is the union of data ranges.
type DataUnionOf struct {
	Ranges []DataRange
}

// DataIntersectionOf is the intersection of data ranges.
type DataIntersectionOf struct {
	Ranges []DataRange
}

// DatatypeRestriction is the literals of Datatype satisfying every facet.
type DatatypeRestriction struct {
	Datatype model.Datatype
	Facets   []FacetRestriction
}

func (NamedDatatype) Kind() RangeKind       { return RangeDatatype }
func (DataOneOf) Kind() RangeKind           { return RangeOneOf }
func (DataComplementOf) Kind() RangeKind    { return RangeComplement }
func (DataUnionOf) Kind() RangeKind         { return RangeUnion }
func (DataIntersectionOf) Kind() RangeKind  { return RangeIntersection }
func (DatatypeRestriction) Kind() RangeKind { return RangeRestriction }

func (NamedDatatype) dataRange()       {}
func (DataOneOf) dataRange()           {}
func (DataComplementOf) dataRange()    {}
func (DataUnionOf) dataRange()         {}
func (DataIntersectionOf) dataRange()  {}
func (DatatypeRestriction) dataRange() {}

func (r NamedDatatype) String() string       { return renderRange(r, nil) }
func (r DataOneOf) String() string           { return renderRange(r, nil) }
func (r DataComplementOf) String() string    { return renderRange(r, nil) }
func (r DataUnionOf) String() string         { return renderRange(r, nil) }
func (r DataIntersectionOf) String() string  { return renderRange(r, nil) }
func (r DatatypeRestriction) String() string { return renderRange(r, nil) }

// Facet is the IRI of a constraining facet.
type Facet string

const (
	FacetMinInclusive Facet = model.XSD + "minInclusive"
	FacetMinExclusive Facet = model.XSD + "minExclusive"
	FacetMaxInclusive Facet = model.XSD + "maxInclusive"
	FacetMaxExclusive Facet = model.XSD + "maxExclusive"
)

// Supported reports whether the facet is one of the four range facets.
func (f Facet) Supported() bool {
	switch f {
	case FacetMinInclusive, FacetMinExclusive, FacetMaxInclusive, FacetMaxExclusive:
		return true
	}
	return false
}

// FacetRestriction constrains literals with a facet and a bound.
type FacetRestriction struct {
	Facet Facet
	Value model.Literal
}

// Matches reports whether l satisfies the restriction. Comparing literals of
// incompatible kinds returns an error wrapping model.ErrTypeMismatch.
func (r FacetRestriction) Matches(l model.Literal) (bool, error) {
	c, err := model.Compare(l, r.Value)
	if err != nil {
		return false, err
	}
	switch r.Facet {
	case FacetMinInclusive:
		return c >= 0, nil
	case FacetMinExclusive:
		return c > 0, nil
	case FacetMaxInclusive:
		return c <= 0, nil
	case FacetMaxExclusive:
		return c < 0, nil
	default:
		return false, fmt.Errorf("unsupported facet %s", r.Facet)
	}
}

// Datatype returns the data range of all literals of dt.
func Datatype(dt model.Datatype) NamedDatatype {
	return NamedDatatype{Datatype: dt}
}

// Literals returns the enumeration of values.
func Literals(values ...model.Literal) DataOneOf {
	return DataOneOf{Values: values}
}

// DataNot returns the complement of r.
func DataNot(r DataRange) DataComplementOf {
	return DataComplementOf{Range: r}
}

// DataOr returns the union of ranges.
func DataOr(ranges ...DataRange) DataUnionOf {
	return DataUnionOf{Ranges: ranges}
}

// DataAnd returns the intersection of ranges.
func DataAnd(ranges ...DataRange) DataIntersectionOf {
	return DataIntersectionOf{Ranges: ranges}
}

// Restrict returns dt restricted by facets.
func Restrict(dt model.Datatype, facets ...FacetRestriction) DatatypeRestriction {
	return DatatypeRestriction{Datatype: dt, Facets: facets}
}

// MinInclusive returns the literals of v's datatype that are >= v.
func MinInclusive(v model.Literal) DatatypeRestriction {
	return Restrict(v.Datatype, FacetRestriction{Facet: FacetMinInclusive, Value: v})
}

// MinExclusive returns the literals of v's datatype that are > v.
func MinExclusive(v model.Literal) DatatypeRestriction {
	return Restrict(v.Datatype, FacetRestriction{Facet: FacetMinExclusive, Value: v})
}

// MaxInclusive returns the literals of v's datatype that are <= v.
func MaxInclusive(v model.Literal) DatatypeRestriction {
	return Restrict(v.Datatype, FacetRestriction{Facet: FacetMaxInclusive, Value: v})
}

// MaxExclusive returns the literals of v's datatype that are < v.
func MaxExclusive(v model.Literal) DatatypeRestriction {
	return Restrict(v.Datatype, FacetRestriction{Facet: FacetMaxExclusive, Value: v})
}

// MinMaxInclusive returns the literals in [lo, hi]. If one bound is an integer
// and the other a float, the integer is promoted to the float's datatype.
// The restriction takes the datatype of lo after promotion.
func MinMaxInclusive(lo, hi model.Literal) DatatypeRestriction {
	lo, hi = promote(lo, hi)
	return Restrict(lo.Datatype,
		FacetRestriction{Facet: FacetMinInclusive, Value: lo},
		FacetRestriction{Facet: FacetMaxInclusive, Value: hi},
	)
}

// MinMaxExclusive returns the literals in (lo, hi) with the same promotion
// rule as MinMaxInclusive.
func MinMaxExclusive(lo, hi model.Literal) DatatypeRestriction {
	lo, hi = promote(lo, hi)
	return Restrict(lo.Datatype,
		FacetRestriction{Facet: FacetMinExclusive, Value: lo},
		FacetRestriction{Facet: FacetMaxExclusive, Value: hi},
	)
}

func promote(a, b model.Literal) (model.Literal, model.Literal) {
	switch {
	case a.Kind == model.KindFloat && b.Kind == model.KindInt:
		b = model.Literal{Datatype: a.Datatype, Kind: model.KindFloat, F64: float64(b.I64)}
	case a.Kind == model.KindInt && b.Kind == model.KindFloat:
		a = model.Literal{Datatype: b.Datatype, Kind: model.KindFloat, F64: float64(a.I64)}
	}
	return a, b
}

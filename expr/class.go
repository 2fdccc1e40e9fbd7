package expr

import (
	"github.com/hupe1980/fastic/model"
)

// Kind tags the concrete type of a ClassExpression.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	KindClass
	KindUnion
	KindIntersection
	KindComplement
	KindOneOf
	KindSomeValuesFrom
	KindAllValuesFrom
	KindHasValue
	KindMinCardinality
	KindMaxCardinality
	KindExactCardinality
	KindDataSomeValuesFrom
	KindDataAllValuesFrom
	KindDataHasValue
)

var kindNames = [...]string{
	KindInvalid:            "Invalid",
	KindClass:              "Class",
	KindUnion:              "ObjectUnionOf",
	KindIntersection:       "ObjectIntersectionOf",
	KindComplement:         "ObjectComplementOf",
	KindOneOf:              "ObjectOneOf",
	KindSomeValuesFrom:     "ObjectSomeValuesFrom",
	KindAllValuesFrom:      "ObjectAllValuesFrom",
	KindHasValue:           "ObjectHasValue",
	KindMinCardinality:     "ObjectMinCardinality",
	KindMaxCardinality:     "ObjectMaxCardinality",
	KindExactCardinality:   "ObjectExactCardinality",
	KindDataSomeValuesFrom: "DataSomeValuesFrom",
	KindDataAllValuesFrom:  "DataAllValuesFrom",
	KindDataHasValue:       "DataHasValue",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// ClassExpression is a description-logic class expression.
//
// The set of implementations is closed: every concrete type is declared in
// this package. String renders the expression in functional-style syntax with
// full IRIs and is the structural identity used as cache key.
type ClassExpression interface {
	Kind() Kind
	String() string
	classExpression()
}

// NamedClass is an atomic class.
type NamedClass struct {
	Class model.Class
}

// ObjectUnionOf is the union of its operands.
type ObjectUnionOf struct {
	Operands []ClassExpression
}

// ObjectIntersectionOf is the intersection of its operands.
type ObjectIntersectionOf struct {
	Operands []ClassExpression
}

// ObjectComplementOf is the complement of its operand.
type ObjectComplementOf struct {
	Operand ClassExpression
}

// ObjectOneOf is the enumeration of its individuals.
type ObjectOneOf struct {
	Individuals []model.Individual
}

// ObjectSomeValuesFrom is ∃P.C.
type ObjectSomeValuesFrom struct {
	Property model.ObjectPropertyExpression
	Filler   ClassExpression
}

// ObjectAllValuesFrom is ∀P.C.
type ObjectAllValuesFrom struct {
	Property model.ObjectPropertyExpression
	Filler   ClassExpression
}

// ObjectHasValue is ∃P.{i}.
type ObjectHasValue struct {
	Property   model.ObjectPropertyExpression
	Individual model.Individual
}

// ObjectMinCardinality is ≥n P.C.
type ObjectMinCardinality struct {
	Cardinality int
	Property    model.ObjectPropertyExpression
	Filler      ClassExpression
}

// ObjectMaxCardinality is ≤n P.C.
type ObjectMaxCardinality struct {
	Cardinality int
	Property    model.ObjectPropertyExpression
	Filler      ClassExpression
}

// ObjectExactCardinality is =n P.C.
type ObjectExactCardinality struct {
	Cardinality int
	Property    model.ObjectPropertyExpression
	Filler      ClassExpression
}

// DataSomeValuesFrom is ∃P.R for a data property and data range.
type DataSomeValuesFrom struct {
	Property model.DataProperty
	Range    DataRange
}

// DataAllValuesFrom is ∀P.R for a data property and data range.
type DataAllValuesFrom struct {
	Property model.DataProperty
	Range    DataRange
}

// DataHasValue is ∃P.{v} for a data property.
type DataHasValue struct {
	Property model.DataProperty
	Value    model.Literal
}

func (NamedClass) Kind() Kind             { return KindClass }
func (ObjectUnionOf) Kind() Kind          { return KindUnion }
func (ObjectIntersectionOf) Kind() Kind   { return KindIntersection }
func (ObjectComplementOf) Kind() Kind     { return KindComplement }
func (ObjectOneOf) Kind() Kind            { return KindOneOf }
func (ObjectSomeValuesFrom) Kind() Kind   { return KindSomeValuesFrom }
func (ObjectAllValuesFrom) Kind() Kind    { return KindAllValuesFrom }
func (ObjectHasValue) Kind() Kind         { return KindHasValue }
func (ObjectMinCardinality) Kind() Kind   { return KindMinCardinality }
func (ObjectMaxCardinality) Kind() Kind   { return KindMaxCardinality }
func (ObjectExactCardinality) Kind() Kind { return KindExactCardinality }
func (DataSomeValuesFrom) Kind() Kind     { return KindDataSomeValuesFrom }
func (DataAllValuesFrom) Kind() Kind      { return KindDataAllValuesFrom }
func (DataHasValue) Kind() Kind           { return KindDataHasValue }

func (NamedClass) classExpression()             {}
func (ObjectUnionOf) classExpression()          {}
func (ObjectIntersectionOf) classExpression()   {}
func (ObjectComplementOf) classExpression()     {}
func (ObjectOneOf) classExpression()            {}
func (ObjectSomeValuesFrom) classExpression()   {}
func (ObjectAllValuesFrom) classExpression()    {}
func (ObjectHasValue) classExpression()         {}
func (ObjectMinCardinality) classExpression()   {}
func (ObjectMaxCardinality) classExpression()   {}
func (ObjectExactCardinality) classExpression() {}
func (DataSomeValuesFrom) classExpression()     {}
func (DataAllValuesFrom) classExpression()      {}
func (DataHasValue) classExpression()           {}

func (c NamedClass) String() string             { return render(c, nil) }
func (c ObjectUnionOf) String() string          { return render(c, nil) }
func (c ObjectIntersectionOf) String() string   { return render(c, nil) }
func (c ObjectComplementOf) String() string     { return render(c, nil) }
func (c ObjectOneOf) String() string            { return render(c, nil) }
func (c ObjectSomeValuesFrom) String() string   { return render(c, nil) }
func (c ObjectAllValuesFrom) String() string    { return render(c, nil) }
func (c ObjectHasValue) String() string         { return render(c, nil) }
func (c ObjectMinCardinality) String() string   { return render(c, nil) }
func (c ObjectMaxCardinality) String() string   { return render(c, nil) }
func (c ObjectExactCardinality) String() string { return render(c, nil) }
func (c DataSomeValuesFrom) String() string     { return render(c, nil) }
func (c DataAllValuesFrom) String() string      { return render(c, nil) }
func (c DataHasValue) String() string           { return render(c, nil) }

var (
	// Thing is owl:Thing.
	Thing = NamedClass{Class: model.Thing}
	// Nothing is owl:Nothing.
	Nothing = NamedClass{Class: model.Nothing}
)

// IsThing reports whether ce is owl:Thing.
func IsThing(ce ClassExpression) bool {
	c, ok := ce.(NamedClass)
	return ok && c.Class == model.Thing
}

// IsNothing reports whether ce is owl:Nothing.
func IsNothing(ce ClassExpression) bool {
	c, ok := ce.(NamedClass)
	return ok && c.Class == model.Nothing
}

// Class returns the atomic class c.
func Class(c model.Class) NamedClass {
	return NamedClass{Class: c}
}

// Or returns the union of operands.
func Or(operands ...ClassExpression) ObjectUnionOf {
	return ObjectUnionOf{Operands: operands}
}

// And returns the intersection of operands.
func And(operands ...ClassExpression) ObjectIntersectionOf {
	return ObjectIntersectionOf{Operands: operands}
}

// Not returns the complement of ce.
func Not(ce ClassExpression) ObjectComplementOf {
	return ObjectComplementOf{Operand: ce}
}

// OneOf returns the enumeration of individuals.
func OneOf(individuals ...model.Individual) ObjectOneOf {
	return ObjectOneOf{Individuals: individuals}
}

// Some returns ∃p.filler.
func Some(p model.ObjectPropertyExpression, filler ClassExpression) ObjectSomeValuesFrom {
	return ObjectSomeValuesFrom{Property: p, Filler: filler}
}

// Only returns ∀p.filler.
func Only(p model.ObjectPropertyExpression, filler ClassExpression) ObjectAllValuesFrom {
	return ObjectAllValuesFrom{Property: p, Filler: filler}
}

// HasValue returns ∃p.{i}.
func HasValue(p model.ObjectPropertyExpression, i model.Individual) ObjectHasValue {
	return ObjectHasValue{Property: p, Individual: i}
}

// Min returns ≥n p.filler.
func Min(n int, p model.ObjectPropertyExpression, filler ClassExpression) ObjectMinCardinality {
	return ObjectMinCardinality{Cardinality: n, Property: p, Filler: filler}
}

// Max returns ≤n p.filler.
func Max(n int, p model.ObjectPropertyExpression, filler ClassExpression) ObjectMaxCardinality {
	return ObjectMaxCardinality{Cardinality: n, Property: p, Filler: filler}
}

// Exactly returns =n p.filler.
func Exactly(n int, p model.ObjectPropertyExpression, filler ClassExpression) ObjectExactCardinality {
	return ObjectExactCardinality{Cardinality: n, Property: p, Filler: filler}
}

// DataSome returns ∃p.r.
func DataSome(p model.DataProperty, r DataRange) DataSomeValuesFrom {
	return DataSomeValuesFrom{Property: p, Range: r}
}

// DataOnly returns ∀p.r.
func DataOnly(p model.DataProperty, r DataRange) DataAllValuesFrom {
	return DataAllValuesFrom{Property: p, Range: r}
}

// HasLiteral returns ∃p.{v}.
func HasLiteral(p model.DataProperty, v model.Literal) DataHasValue {
	return DataHasValue{Property: p, Value: v}
}

// AsSomeValuesFrom rewrites ∃P.{i} as ∃P.ObjectOneOf(i).
func (c ObjectHasValue) AsSomeValuesFrom() ObjectSomeValuesFrom {
	return Some(c.Property, OneOf(c.Individual))
}

// AsSomeValuesFrom rewrites ∃P.{v} as ∃P.DataOneOf(v).
func (c DataHasValue) AsSomeValuesFrom() DataSomeValuesFrom {
	return DataSome(c.Property, Literals(c.Value))
}

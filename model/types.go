package model

// Individual is the IRI of a named individual.
type Individual string

// Class is the IRI of an atomic class.
type Class string

// ObjectProperty is the IRI of a named object property.
type ObjectProperty string

// DataProperty is the IRI of a data property.
type DataProperty string

// Datatype is the IRI of a datatype.
type Datatype string

// Namespaces of the built-in vocabularies.
const (
	OWL  = "http://www.w3.org/2002/07/owl#"
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
)

const (
	// Thing is the top class. Every individual is an instance.
	Thing Class = OWL + "Thing"
	// Nothing is the bottom class. It has no instances.
	Nothing Class = OWL + "Nothing"
)

// Built-in datatypes.
const (
	RDFSLiteral   Datatype = RDFS + "Literal"
	RDFLangString Datatype = RDF + "langString"
	RDFPlain      Datatype = RDF + "PlainLiteral"

	XSDString     Datatype = XSD + "string"
	XSDBoolean    Datatype = XSD + "boolean"
	XSDDecimal    Datatype = XSD + "decimal"
	XSDDouble     Datatype = XSD + "double"
	XSDFloat      Datatype = XSD + "float"
	XSDInteger    Datatype = XSD + "integer"
	XSDLong       Datatype = XSD + "long"
	XSDInt        Datatype = XSD + "int"
	XSDShort      Datatype = XSD + "short"
	XSDByte       Datatype = XSD + "byte"
	XSDNonNegInt  Datatype = XSD + "nonNegativeInteger"
	XSDPosInt     Datatype = XSD + "positiveInteger"
	XSDNonPosInt  Datatype = XSD + "nonPositiveInteger"
	XSDNegInt     Datatype = XSD + "negativeInteger"
	XSDUnsignedL  Datatype = XSD + "unsignedLong"
	XSDUnsignedI  Datatype = XSD + "unsignedInt"
	XSDUnsignedS  Datatype = XSD + "unsignedShort"
	XSDUnsignedB  Datatype = XSD + "unsignedByte"
	XSDDateTime   Datatype = XSD + "dateTime"
	XSDDate       Datatype = XSD + "date"
	XSDNormalized Datatype = XSD + "normalizedString"
	XSDToken      Datatype = XSD + "token"
)

// Kind returns the native value kind literals of the datatype decode to.
// Unknown datatypes decode as strings.
func (d Datatype) Kind() Kind {
	switch d {
	case XSDBoolean:
		return KindBool
	case XSDDecimal, XSDDouble, XSDFloat:
		return KindFloat
	case XSDInteger, XSDLong, XSDInt, XSDShort, XSDByte,
		XSDNonNegInt, XSDPosInt, XSDNonPosInt, XSDNegInt,
		XSDUnsignedL, XSDUnsignedI, XSDUnsignedS, XSDUnsignedB:
		return KindInt
	default:
		return KindString
	}
}

// IsNumeric reports whether literals of the datatype compare numerically.
func (d Datatype) IsNumeric() bool {
	k := d.Kind()
	return k == KindInt || k == KindFloat
}

// PropertyKind separates the three families of property expressions that
// are cached independently.
type PropertyKind uint8

const (
	// DataPropertyKind is a data property.
	DataPropertyKind PropertyKind = iota
	// ObjectPropertyKind is a named object property.
	ObjectPropertyKind
	// InverseObjectPropertyKind is the inverse of a named object property.
	InverseObjectPropertyKind
)

func (k PropertyKind) String() string {
	switch k {
	case DataPropertyKind:
		return "data"
	case ObjectPropertyKind:
		return "object"
	case InverseObjectPropertyKind:
		return "inverse"
	default:
		return "unknown"
	}
}

// ObjectPropertyExpression is a named object property or the inverse of one.
// The zero Inverse value denotes the property itself.
type ObjectPropertyExpression struct {
	Property ObjectProperty
	Inverse  bool
}

// Expression returns the property as a (non-inverse) property expression.
func (p ObjectProperty) Expression() ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: p}
}

// Inverse returns the inverse of the property.
func (p ObjectProperty) Inverse() ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: p, Inverse: true}
}

// Kind returns ObjectPropertyKind or InverseObjectPropertyKind.
func (e ObjectPropertyExpression) Kind() PropertyKind {
	if e.Inverse {
		return InverseObjectPropertyKind
	}
	return ObjectPropertyKind
}

// Invert returns the inverse expression. Inverting twice yields e.
func (e ObjectPropertyExpression) Invert() ObjectPropertyExpression {
	return ObjectPropertyExpression{Property: e.Property, Inverse: !e.Inverse}
}

// String renders the expression in functional-style syntax with a full IRI.
func (e ObjectPropertyExpression) String() string {
	if e.Inverse {
		return "ObjectInverseOf(<" + string(e.Property) + ">)"
	}
	return "<" + string(e.Property) + ">"
}

package expr

import (
	"strconv"
	"strings"

	"github.com/hupe1980/fastic/model"
)

// Format renders ce in functional-style syntax, abbreviating IRIs with p.
// A nil p renders full IRIs, which is the same as ce.String().
func Format(ce ClassExpression, p *model.Prefixes) string {
	return render(ce, p)
}

// FormatRange renders a data range like Format.
func FormatRange(r DataRange, p *model.Prefixes) string {
	return renderRange(r, p)
}

type renderer struct {
	b        strings.Builder
	prefixes *model.Prefixes
}

func render(ce ClassExpression, p *model.Prefixes) string {
	r := renderer{prefixes: p}
	r.class(ce)
	return r.b.String()
}

func renderRange(dr DataRange, p *model.Prefixes) string {
	r := renderer{prefixes: p}
	r.dataRange(dr)
	return r.b.String()
}

func (r *renderer) iri(s string) {
	if r.prefixes == nil {
		r.b.WriteByte('<')
		r.b.WriteString(s)
		r.b.WriteByte('>')
		return
	}
	r.b.WriteString(r.prefixes.Abbreviate(s))
}

func (r *renderer) open(name string) {
	r.b.WriteString(name)
	r.b.WriteByte('(')
}

func (r *renderer) sep() {
	r.b.WriteByte(' ')
}

func (r *renderer) close() {
	r.b.WriteByte(')')
}

func (r *renderer) property(p model.ObjectPropertyExpression) {
	if p.Inverse {
		r.open("ObjectInverseOf")
		r.iri(string(p.Property))
		r.close()
		return
	}
	r.iri(string(p.Property))
}

func (r *renderer) literal(l model.Literal) {
	r.b.WriteString(model.Quote(l.Lexical()))
	if l.Lang != "" {
		r.b.WriteByte('@')
		r.b.WriteString(l.Lang)
		return
	}
	r.b.WriteString("^^")
	r.iri(string(l.Datatype))
}

func (r *renderer) classes(name string, ops []ClassExpression) {
	r.open(name)
	for i, op := range ops {
		if i > 0 {
			r.sep()
		}
		r.class(op)
	}
	r.close()
}

func (r *renderer) cardinality(name string, n int, p model.ObjectPropertyExpression, filler ClassExpression) {
	r.open(name)
	r.b.WriteString(strconv.Itoa(n))
	r.sep()
	r.property(p)
	r.sep()
	r.class(filler)
	r.close()
}

func (r *renderer) class(ce ClassExpression) {
	switch c := ce.(type) {
	case nil:
		r.b.WriteString("nil")
	case NamedClass:
		r.iri(string(c.Class))
	case ObjectUnionOf:
		r.classes("ObjectUnionOf", c.Operands)
	case ObjectIntersectionOf:
		r.classes("ObjectIntersectionOf", c.Operands)
	case ObjectComplementOf:
		r.open("ObjectComplementOf")
		r.class(c.Operand)
		r.close()
	case ObjectOneOf:
		r.open("ObjectOneOf")
		for i, ind := range c.Individuals {
			if i > 0 {
				r.sep()
			}
			r.iri(string(ind))
		}
		r.close()
	case ObjectSomeValuesFrom:
		r.open("ObjectSomeValuesFrom")
		r.property(c.Property)
		r.sep()
		r.class(c.Filler)
		r.close()
	case ObjectAllValuesFrom:
		r.open("ObjectAllValuesFrom")
		r.property(c.Property)
		r.sep()
		r.class(c.Filler)
		r.close()
	case ObjectHasValue:
		r.open("ObjectHasValue")
		r.property(c.Property)
		r.sep()
		r.iri(string(c.Individual))
		r.close()
	case ObjectMinCardinality:
		r.cardinality("ObjectMinCardinality", c.Cardinality, c.Property, c.Filler)
	case ObjectMaxCardinality:
		r.cardinality("ObjectMaxCardinality", c.Cardinality, c.Property, c.Filler)
	case ObjectExactCardinality:
		r.cardinality("ObjectExactCardinality", c.Cardinality, c.Property, c.Filler)
	case DataSomeValuesFrom:
		r.open("DataSomeValuesFrom")
		r.iri(string(c.Property))
		r.sep()
		r.dataRange(c.Range)
		r.close()
	case DataAllValuesFrom:
		r.open("DataAllValuesFrom")
		r.iri(string(c.Property))
		r.sep()
		r.dataRange(c.Range)
		r.close()
	case DataHasValue:
		r.open("DataHasValue")
		r.iri(string(c.Property))
		r.sep()
		r.literal(c.Value)
		r.close()
	}
}

func (r *renderer) ranges(name string, ops []DataRange) {
	r.open(name)
	for i, op := range ops {
		if i > 0 {
			r.sep()
		}
		r.dataRange(op)
	}
	r.close()
}

func (r *renderer) dataRange(dr DataRange) {
	switch d := dr.(type) {
	case nil:
		r.b.WriteString("nil")
	case NamedDatatype:
		r.iri(string(d.Datatype))
	case DataOneOf:
		r.open("DataOneOf")
		for i, v := range d.Values {
			if i > 0 {
				r.sep()
			}
			r.literal(v)
		}
		r.close()
	case DataComplementOf:
		r.open("DataComplementOf")
		r.dataRange(d.Range)
		r.close()
	case DataUnionOf:
		r.ranges("DataUnionOf", d.Ranges)
	case DataIntersectionOf:
		r.ranges("DataIntersectionOf", d.Ranges)
	case DatatypeRestriction:
		r.open("DatatypeRestriction")
		r.iri(string(d.Datatype))
		for _, f := range d.Facets {
			r.sep()
			r.iri(string(f.Facet))
			r.sep()
			r.literal(f.Value)
		}
		r.close()
	}
}

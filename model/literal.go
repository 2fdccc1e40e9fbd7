package model

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unique"
)

var (
	// ErrTypeMismatch is returned when two literals of incompatible kinds are compared.
	ErrTypeMismatch = errors.New("literal type mismatch")
	// ErrInvalidLexical is returned when a lexical form is not valid for its datatype.
	ErrInvalidLexical = errors.New("invalid lexical form")
)

// Kind identifies the native value stored in a Literal.
type Kind uint8

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindInt is an integer value.
	KindInt
	// KindFloat is a floating point value.
	KindFloat
	// KindString is a string value.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Literal is a data value: a datatype IRI plus its decoded native value.
//
// Literals are comparable with ==. Two literals are equal iff datatype,
// language tag and value are equal, so "30"^^xsd:int and "30"^^xsd:integer
// are distinct set members while Compare reports them equal.
type Literal struct {
	Datatype Datatype
	Kind     Kind
	B        bool
	I64      int64
	F64      float64
	Lang     string
	s        unique.Handle[string]
}

// Bool returns an xsd:boolean literal.
func Bool(v bool) Literal { return Literal{Datatype: XSDBoolean, Kind: KindBool, B: v} }

// Int returns an xsd:integer literal.
func Int(v int64) Literal { return Literal{Datatype: XSDInteger, Kind: KindInt, I64: v} }

// Float returns an xsd:double literal.
func Float(v float64) Literal { return Literal{Datatype: XSDDouble, Kind: KindFloat, F64: v} }

// Decimal returns an xsd:decimal literal.
func Decimal(v float64) Literal { return Literal{Datatype: XSDDecimal, Kind: KindFloat, F64: v} }

// String returns an xsd:string literal.
func String(v string) Literal {
	return Literal{Datatype: XSDString, Kind: KindString, s: unique.Make(v)}
}

// LangString returns a language-tagged rdf:langString literal.
func LangString(v, lang string) Literal {
	return Literal{Datatype: RDFLangString, Kind: KindString, Lang: strings.ToLower(lang), s: unique.Make(v)}
}

// Typed returns the literal with its datatype replaced. The value is kept as is.
func (l Literal) Typed(dt Datatype) Literal {
	l.Datatype = dt
	return l
}

// ParseLiteral decodes an XSD lexical form. Integer-derived datatypes decode
// to KindInt, decimal/double/float to KindFloat, xsd:boolean to KindBool and
// every other datatype to KindString.
func ParseLiteral(lexical string, dt Datatype) (Literal, error) {
	switch dt.Kind() {
	case KindBool:
		switch strings.TrimSpace(lexical) {
		case "true", "1":
			return Literal{Datatype: dt, Kind: KindBool, B: true}, nil
		case "false", "0":
			return Literal{Datatype: dt, Kind: KindBool}, nil
		}
	case KindInt:
		v, err := strconv.ParseInt(strings.TrimSpace(lexical), 10, 64)
		if err == nil {
			return Literal{Datatype: dt, Kind: KindInt, I64: v}, nil
		}
	case KindFloat:
		s := strings.TrimSpace(lexical)
		switch s {
		case "INF", "+INF":
			return Literal{Datatype: dt, Kind: KindFloat, F64: math.Inf(1)}, nil
		case "-INF":
			return Literal{Datatype: dt, Kind: KindFloat, F64: math.Inf(-1)}, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return Literal{Datatype: dt, Kind: KindFloat, F64: v}, nil
		}
	default:
		return Literal{Datatype: dt, Kind: KindString, s: unique.Make(lexical)}, nil
	}
	return Literal{}, fmt.Errorf("%w: %q for %s", ErrInvalidLexical, lexical, dt)
}

// AsString returns the string value if Kind is KindString.
func (l Literal) AsString() (string, bool) {
	if l.Kind != KindString {
		return "", false
	}
	return l.s.Value(), true
}

// AsFloat64 returns the value as float64 for numeric literals.
func (l Literal) AsFloat64() (float64, bool) {
	switch l.Kind {
	case KindInt:
		return float64(l.I64), true
	case KindFloat:
		return l.F64, true
	default:
		return 0, false
	}
}

// IsNumber reports whether the literal holds an integer or a float.
func (l Literal) IsNumber() bool {
	return l.Kind == KindInt || l.Kind == KindFloat
}

// Lexical returns the canonical lexical form of the value.
func (l Literal) Lexical() string {
	switch l.Kind {
	case KindBool:
		return strconv.FormatBool(l.B)
	case KindInt:
		return strconv.FormatInt(l.I64, 10)
	case KindFloat:
		switch {
		case math.IsInf(l.F64, 1):
			return "INF"
		case math.IsInf(l.F64, -1):
			return "-INF"
		case math.IsNaN(l.F64):
			return "NaN"
		}
		if l.Datatype == XSDDecimal {
			return strconv.FormatFloat(l.F64, 'f', -1, 64)
		}
		return strconv.FormatFloat(l.F64, 'g', -1, 64)
	case KindString:
		return l.s.Value()
	default:
		return ""
	}
}

// String renders the literal in functional-style syntax with a full datatype IRI.
func (l Literal) String() string {
	q := Quote(l.Lexical())
	if l.Lang != "" {
		return q + "@" + l.Lang
	}
	return q + "^^<" + string(l.Datatype) + ">"
}

// Quote wraps s in double quotes, escaping backslashes and quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// Compare orders two literals: numerically when both are numbers (exactly when
// both are integers), lexically for strings and false < true for booleans.
// Any other combination returns ErrTypeMismatch.
func Compare(a, b Literal) (int, error) {
	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		return cmp.Compare(a.I64, b.I64), nil
	case a.IsNumber() && b.IsNumber():
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return cmp.Compare(af, bf), nil
	case a.Kind == KindString && b.Kind == KindString:
		return strings.Compare(a.s.Value(), b.s.Value()), nil
	case a.Kind == KindBool && b.Kind == KindBool:
		switch {
		case a.B == b.B:
			return 0, nil
		case b.B:
			return -1, nil
		default:
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: cannot compare %s with %s", ErrTypeMismatch, a.Kind, b.Kind)
}

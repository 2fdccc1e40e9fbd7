// Package fss reads OWL 2 functional-style syntax into a generic term tree.
//
// The reader knows nothing about OWL constructs. It recognises calls
// Name(arg ...), full IRIs <...>, abbreviated IRIs prefix:local, bare names,
// integers, quoted literals with an optional ^^datatype or @lang suffix and
// the '=' separator used by Prefix declarations. Comments run from '#' to the
// end of the line.
package fss

import (
	"fmt"
	"strings"
)

// Kind identifies a term.
type Kind uint8

const (
	// Call is Name(args...).
	Call Kind = iota + 1
	// IRI is a full IRI written <...>. Text holds the IRI without brackets.
	IRI
	// Abbreviated is prefix:local. Text holds it verbatim.
	Abbreviated
	// Name is a bare name without colon.
	Name
	// Integer is an optionally signed decimal integer. Text holds the digits.
	Integer
	// Literal is a quoted literal.
	Literal
	// Equals is the '=' separator.
	Equals
	// Open marks entry into an unwrapped container call.
	Open
	// Close marks the end of an unwrapped container call.
	Close
)

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case IRI:
		return "iri"
	case Abbreviated:
		return "abbreviated iri"
	case Name:
		return "name"
	case Integer:
		return "integer"
	case Literal:
		return "literal"
	case Equals:
		return "'='"
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "invalid"
	}
}

// Pos is a 1-based source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Term is one node of the syntax tree.
type Term struct {
	Kind Kind
	// Text is the call name, IRI, abbreviated IRI, name, integer digits or
	// literal lexical form.
	Text string
	Args []Term
	// Datatype is set for typed literals and is an IRI or Abbreviated term.
	Datatype *Term
	// Lang is set for language-tagged literals.
	Lang string
	Pos  Pos
}

// IsIRI reports whether the term names an entity (full or abbreviated IRI).
func (t Term) IsIRI() bool {
	return t.Kind == IRI || t.Kind == Abbreviated
}

// String renders the term back to functional-style syntax.
func (t Term) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t Term) write(b *strings.Builder) {
	switch t.Kind {
	case Call:
		b.WriteString(t.Text)
		b.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(' ')
			}
			a.write(b)
		}
		b.WriteByte(')')
	case IRI:
		b.WriteByte('<')
		b.WriteString(t.Text)
		b.WriteByte('>')
	case Literal:
		b.WriteByte('"')
		b.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(t.Text))
		b.WriteByte('"')
		switch {
		case t.Lang != "":
			b.WriteByte('@')
			b.WriteString(t.Lang)
		case t.Datatype != nil:
			b.WriteString("^^")
			t.Datatype.write(b)
		}
	case Equals:
		b.WriteByte('=')
	default:
		b.WriteString(t.Text)
	}
}

// SyntaxError reports malformed input with its position.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("fss: syntax error at %s: %s", e.Pos, e.Msg)
}

// Errorf returns a *SyntaxError at the term's position. Callers that interpret
// the tree use it to report semantic problems at the offending term.
func (t Term) Errorf(format string, args ...any) error {
	return &SyntaxError{Pos: t.Pos, Msg: fmt.Sprintf(format, args...)}
}

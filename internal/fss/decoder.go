package fss

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decoder reads a sequence of terms from a stream.
//
// Calls whose name is registered as a container (typically "Ontology") are not
// materialised as one term. The decoder returns an Open term instead, then the
// container's children one by one and finally a Close term, so arbitrarily
// large documents are decoded with memory bounded by the largest axiom.
type Decoder struct {
	lx         *lexer
	containers map[string]bool
	open       []Term
	peeked     *token
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, containers ...string) *Decoder {
	d := &Decoder{
		lx:         newLexer(r),
		containers: make(map[string]bool, len(containers)),
	}
	for _, c := range containers {
		d.containers[c] = true
	}
	return d
}

// Parse parses exactly one term from src.
func Parse(src string) (Term, error) {
	d := NewDecoder(strings.NewReader(src))
	t, err := d.Next()
	if errors.Is(err, io.EOF) {
		return Term{}, &SyntaxError{Pos: Pos{Line: 1, Col: 1}, Msg: "empty input"}
	}
	if err != nil {
		return Term{}, err
	}
	tok, err := d.token()
	if err != nil {
		return Term{}, err
	}
	if tok.kind != tokEOF {
		return Term{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected trailing input"}
	}
	return t, nil
}

// Next returns the next term. It returns io.EOF once the input is exhausted.
func (d *Decoder) Next() (Term, error) {
	tok, err := d.token()
	if err != nil {
		return Term{}, err
	}

	switch tok.kind {
	case tokEOF:
		if n := len(d.open); n > 0 {
			return Term{}, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unclosed %s(", d.open[n-1].Text)}
		}
		return Term{}, io.EOF
	case tokRParen:
		n := len(d.open)
		if n == 0 {
			return Term{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected ')'"}
		}
		opened := d.open[n-1]
		d.open = d.open[:n-1]
		return Term{Kind: Close, Text: opened.Text, Pos: tok.pos}, nil
	case tokWord:
		if d.containers[tok.text] {
			nt, err := d.token()
			if err != nil {
				return Term{}, err
			}
			if nt.kind == tokLParen {
				t := Term{Kind: Open, Text: tok.text, Pos: tok.pos}
				d.open = append(d.open, t)
				return t, nil
			}
			d.unread(nt)
		}
	}
	return d.term(tok)
}

// Depth returns the number of currently open containers.
func (d *Decoder) Depth() int {
	return len(d.open)
}

func (d *Decoder) token() (token, error) {
	if d.peeked != nil {
		t := *d.peeked
		d.peeked = nil
		return t, nil
	}
	return d.lx.next()
}

func (d *Decoder) unread(t token) {
	d.peeked = &t
}

func (d *Decoder) term(tok token) (Term, error) {
	switch tok.kind {
	case tokIRI:
		return Term{Kind: IRI, Text: tok.text, Pos: tok.pos}, nil
	case tokLiteral:
		return Term{Kind: Literal, Text: tok.text, Datatype: tok.dt, Lang: tok.lang, Pos: tok.pos}, nil
	case tokEquals:
		return Term{Kind: Equals, Pos: tok.pos}, nil
	case tokWord:
		nt, err := d.token()
		if err != nil {
			return Term{}, err
		}
		if nt.kind != tokLParen {
			d.unread(nt)
			return Term{Kind: classifyWord(tok.text), Text: tok.text, Pos: tok.pos}, nil
		}
		if classifyWord(tok.text) != Name {
			return Term{}, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("%q cannot be called", tok.text)}
		}
		return d.call(tok)
	case tokLParen:
		return Term{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected '('"}
	case tokRParen:
		return Term{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected ')'"}
	default:
		return Term{}, &SyntaxError{Pos: tok.pos, Msg: "unexpected end of input"}
	}
}

func (d *Decoder) call(name token) (Term, error) {
	t := Term{Kind: Call, Text: name.text, Pos: name.pos}
	for {
		tok, err := d.token()
		if err != nil {
			return Term{}, err
		}
		switch tok.kind {
		case tokRParen:
			return t, nil
		case tokEOF:
			return Term{}, &SyntaxError{Pos: name.pos, Msg: fmt.Sprintf("unclosed %s(", name.text)}
		}
		arg, err := d.term(tok)
		if err != nil {
			return Term{}, err
		}
		t.Args = append(t.Args, arg)
	}
}

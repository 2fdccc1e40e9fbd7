package fss

import (
	"errors"
	"strconv"

	"github.com/hupe1980/fastic/model"
)

// ResolveIRI returns the full IRI named by an IRI or Abbreviated term.
func (t Term) ResolveIRI(p *model.Prefixes) (string, error) {
	switch t.Kind {
	case IRI:
		return t.Text, nil
	case Abbreviated:
		if p != nil {
			if iri, ok := p.Expand(t.Text); ok {
				return iri, nil
			}
		}
		return "", t.Errorf("unknown prefix in %q", t.Text)
	default:
		return "", t.Errorf("expected IRI, got %s", t.Kind)
	}
}

// ResolveLiteral decodes a Literal term. Plain literals are xsd:string and
// language-tagged literals rdf:langString.
func (t Term) ResolveLiteral(p *model.Prefixes) (model.Literal, error) {
	if t.Kind != Literal {
		return model.Literal{}, t.Errorf("expected literal, got %s", t.Kind)
	}
	switch {
	case t.Lang != "":
		return model.LangString(t.Text, t.Lang), nil
	case t.Datatype == nil:
		return model.String(t.Text), nil
	}
	dt, err := t.Datatype.ResolveIRI(p)
	if err != nil {
		return model.Literal{}, err
	}
	lit, err := model.ParseLiteral(t.Text, model.Datatype(dt))
	if err != nil {
		if errors.Is(err, model.ErrInvalidLexical) {
			return model.Literal{}, t.Errorf("%v", err)
		}
		return model.Literal{}, err
	}
	return lit, nil
}

// ResolveInt decodes an Integer term.
func (t Term) ResolveInt() (int, error) {
	if t.Kind != Integer {
		return 0, t.Errorf("expected integer, got %s", t.Kind)
	}
	n, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, t.Errorf("invalid integer %q", t.Text)
	}
	return n, nil
}

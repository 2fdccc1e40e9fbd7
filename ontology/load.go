package ontology

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/hupe1980/fastic/internal/fss"
	"github.com/hupe1980/fastic/model"
)

// Stats counts what Load read.
type Stats struct {
	Individuals      int            `json:"individuals"`
	ClassAssertions  int            `json:"class_assertions"`
	SubClassAxioms   int            `json:"subclass_axioms"`
	ObjectAssertions int            `json:"object_assertions"`
	DataAssertions   int            `json:"data_assertions"`
	Skipped          int            `json:"skipped"`
	SkippedByAxiom   map[string]int `json:"skipped_by_axiom,omitempty"`
}

// Axioms returns the number of axioms passed to the sink.
func (s Stats) Axioms() int {
	return s.Individuals + s.ClassAssertions + s.SubClassAxioms + s.ObjectAssertions + s.DataAssertions
}

func (s *Stats) skip(axiom string) {
	s.Skipped++
	if s.SkippedByAxiom == nil {
		s.SkippedByAxiom = make(map[string]int)
	}
	s.SkippedByAxiom[axiom]++
}

// Load reads a functional-style document from r and feeds its ground facts to
// sink. It returns the declared prefixes, merged over the default owl, rdf,
// rdfs and xsd prefixes.
//
// Syntax errors abort loading and carry a line and column. Axioms outside the
// supported subset are skipped and counted.
func Load(ctx context.Context, r io.Reader, sink Sink) (*model.Prefixes, Stats, error) {
	l := &loader{
		sink:     sink,
		prefixes: model.DefaultPrefixes(),
	}

	dec := fss.NewDecoder(r, "Ontology")
	for {
		if err := ctx.Err(); err != nil {
			return l.prefixes, l.stats, err
		}

		t, err := dec.Next()
		if errors.Is(err, io.EOF) {
			return l.prefixes, l.stats, nil
		}
		if err != nil {
			return l.prefixes, l.stats, err
		}

		switch t.Kind {
		case fss.Open, fss.Close, fss.IRI:
			// Ontology( <iri> <version> ... )
			continue
		case fss.Call:
			if err := l.axiom(ctx, t, dec.Depth()); err != nil {
				return l.prefixes, l.stats, err
			}
		default:
			return l.prefixes, l.stats, t.Errorf("unexpected %s", t.Kind)
		}
	}
}

type loader struct {
	sink     Sink
	prefixes *model.Prefixes
	stats    Stats
}

func (l *loader) axiom(ctx context.Context, t fss.Term, depth int) error {
	if t.Text == "Prefix" {
		if depth > 0 {
			return t.Errorf("Prefix inside Ontology")
		}
		return l.prefix(t)
	}
	if depth == 0 {
		return t.Errorf("%s outside Ontology", t.Text)
	}

	args := stripAnnotations(t.Args)
	switch t.Text {
	case "Import", "Annotation":
		return nil
	case "Declaration":
		return l.declaration(ctx, t, args)
	case "ClassAssertion":
		return l.classAssertion(ctx, t, args)
	case "SubClassOf":
		return l.subClassOf(ctx, t, args)
	case "EquivalentClasses":
		return l.equivalentClasses(ctx, t, args)
	case "ObjectPropertyAssertion":
		return l.objectAssertion(ctx, t, args)
	case "DataPropertyAssertion":
		return l.dataAssertion(ctx, t, args)
	}
	l.stats.skip(t.Text)
	return nil
}

// prefix handles Prefix(name:=<namespace>).
func (l *loader) prefix(t fss.Term) error {
	if len(t.Args) != 3 || t.Args[0].Kind != fss.Abbreviated || !strings.HasSuffix(t.Args[0].Text, ":") ||
		t.Args[1].Kind != fss.Equals || t.Args[2].Kind != fss.IRI {
		return t.Errorf("malformed Prefix declaration")
	}
	l.prefixes.Set(strings.TrimSuffix(t.Args[0].Text, ":"), t.Args[2].Text)
	return nil
}

func (l *loader) declaration(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) != 1 || args[0].Kind != fss.Call || len(args[0].Args) != 1 {
		return t.Errorf("malformed Declaration")
	}
	if args[0].Text != "NamedIndividual" {
		return nil
	}
	ind, err := args[0].Args[0].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	if err := l.sink.AddIndividual(ctx, model.Individual(ind)); err != nil {
		return err
	}
	l.stats.Individuals++
	return nil
}

func (l *loader) classAssertion(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) != 2 {
		return t.Errorf("ClassAssertion takes a class and an individual")
	}
	if !args[0].IsIRI() {
		l.stats.skip("ClassAssertion")
		return nil
	}
	c, err := args[0].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	ind, err := args[1].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	if err := l.sink.AddClassAssertion(ctx, model.Class(c), model.Individual(ind)); err != nil {
		return err
	}
	l.stats.ClassAssertions++
	return nil
}

func (l *loader) subClassOf(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) != 2 {
		return t.Errorf("SubClassOf takes two class expressions")
	}
	classes, ok, err := l.atomicClasses(args)
	if err != nil {
		return err
	}
	if !ok {
		l.stats.skip("SubClassOf")
		return nil
	}
	if err := l.sink.AddSubClassOf(ctx, classes[0], classes[1]); err != nil {
		return err
	}
	l.stats.SubClassAxioms++
	return nil
}

// equivalentClasses turns EquivalentClasses(A B C) into a subclass cycle
// A ⊑ B ⊑ C ⊑ A.
func (l *loader) equivalentClasses(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) < 2 {
		return t.Errorf("EquivalentClasses takes at least two class expressions")
	}
	classes, ok, err := l.atomicClasses(args)
	if err != nil {
		return err
	}
	if !ok {
		l.stats.skip("EquivalentClasses")
		return nil
	}
	for i, sub := range classes {
		super := classes[(i+1)%len(classes)]
		if err := l.sink.AddSubClassOf(ctx, sub, super); err != nil {
			return err
		}
		l.stats.SubClassAxioms++
	}
	return nil
}

// atomicClasses resolves args as named classes. It reports false if any of
// them is a complex class expression.
func (l *loader) atomicClasses(args []fss.Term) ([]model.Class, bool, error) {
	classes := make([]model.Class, 0, len(args))
	for _, a := range args {
		if !a.IsIRI() {
			return nil, false, nil
		}
		c, err := a.ResolveIRI(l.prefixes)
		if err != nil {
			return nil, false, err
		}
		classes = append(classes, model.Class(c))
	}
	return classes, true, nil
}

func (l *loader) objectAssertion(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) != 3 {
		return t.Errorf("ObjectPropertyAssertion takes a property and two individuals")
	}

	prop, inverse := args[0], false
	if prop.Kind == fss.Call && prop.Text == "ObjectInverseOf" && len(prop.Args) == 1 {
		prop, inverse = prop.Args[0], true
	}
	p, err := prop.ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	s, err := args[1].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	o, err := args[2].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	if inverse {
		s, o = o, s
	}
	if err := l.sink.AddObjectPropertyAssertion(ctx, model.ObjectProperty(p), model.Individual(s), model.Individual(o)); err != nil {
		return err
	}
	l.stats.ObjectAssertions++
	return nil
}

func (l *loader) dataAssertion(ctx context.Context, t fss.Term, args []fss.Term) error {
	if len(args) != 3 {
		return t.Errorf("DataPropertyAssertion takes a property, an individual and a literal")
	}
	p, err := args[0].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	s, err := args[1].ResolveIRI(l.prefixes)
	if err != nil {
		return err
	}
	lit, err := args[2].ResolveLiteral(l.prefixes)
	if err != nil {
		return err
	}
	if err := l.sink.AddDataPropertyAssertion(ctx, model.DataProperty(p), model.Individual(s), lit); err != nil {
		return err
	}
	l.stats.DataAssertions++
	return nil
}

// stripAnnotations drops the leading axiom annotations.
func stripAnnotations(args []fss.Term) []fss.Term {
	for len(args) > 0 && args[0].Kind == fss.Call && args[0].Text == "Annotation" {
		args = args[1:]
	}
	return args
}

package engine

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner"
	"github.com/hupe1980/fastic/reasoner/memory"
)

const ex = "http://example.org/"

const (
	alice model.Individual = ex + "alice"
	bob   model.Individual = ex + "bob"
	carol model.Individual = ex + "carol"
	dave  model.Individual = ex + "dave"

	person model.Class = ex + "Person"
	pet    model.Class = ex + "Pet"

	hasChild model.ObjectProperty = ex + "hasChild"
	owns     model.ObjectProperty = ex + "owns"
	age      model.DataProperty   = ex + "age"
	name     model.DataProperty   = ex + "name"
)

var (
	personC = expr.Class(person)
	petC    = expr.Class(pet)
)

// family: alice has children bob and carol; carol owns dave (a pet).
func family(t *testing.T) *memory.Reasoner {
	t.Helper()
	ctx := t.Context()
	r := memory.New()
	for _, i := range []model.Individual{alice, bob, carol} {
		require.NoError(t, r.AddClassAssertion(ctx, person, i))
	}
	require.NoError(t, r.AddClassAssertion(ctx, pet, dave))
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, alice, bob))
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, alice, carol))
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, owns, carol, dave))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, age, alice, model.Int(30)))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, age, bob, model.Int(12)))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, age, carol, model.Decimal(7.5)))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, name, alice, model.String("Alice")))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, name, bob, model.LangString("Bob", "en")))
	return r
}

func newEngine(t *testing.T, r reasoner.Reasoner, opts ...Option) *Engine {
	t.Helper()
	e, err := New(t.Context(), r, append([]Option{WithClosedWorld(true)}, opts...)...)
	require.NoError(t, err)
	return e
}

func names(e *Engine, m bitmask.Mask) []model.Individual {
	return slices.Collect(e.Index().Decode(m))
}

func eval(t *testing.T, e *Engine, ce expr.ClassExpression) []model.Individual {
	t.Helper()
	m, err := e.Evaluate(t.Context(), ce)
	require.NoError(t, err, ce.String())
	return names(e, m)
}

func TestEngine_Evaluate(t *testing.T) {
	e := newEngine(t, family(t))

	child := hasChild.Expression()
	tests := []struct {
		name string
		ce   expr.ClassExpression
		want []model.Individual
	}{
		{"class", personC, []model.Individual{alice, bob, carol}},
		{"thing", expr.Thing, []model.Individual{alice, bob, carol, dave}},
		{"nothing", expr.Nothing, nil},
		{"union", expr.Or(petC, expr.OneOf(alice)), []model.Individual{alice, dave}},
		{"intersection", expr.And(personC, expr.Not(expr.OneOf(alice))), []model.Individual{bob, carol}},
		{"one of unknown", expr.OneOf(ex+"nobody", bob), []model.Individual{bob}},
		{"some thing", expr.Some(child, expr.Thing), []model.Individual{alice}},
		{"some filler", expr.Some(child, expr.Some(owns.Expression(), petC)), []model.Individual{alice}},
		{"some empty filler", expr.Some(child, petC), nil},
		{"inverse", expr.Some(child.Invert(), personC), []model.Individual{bob, carol}},
		{"only", expr.Only(child, personC), []model.Individual{alice, bob, carol, dave}},
		{"only pet", expr.Only(owns.Expression(), petC), []model.Individual{alice, bob, carol, dave}},
		{"only person owns", expr.Only(owns.Expression(), personC), []model.Individual{alice, bob, dave}},
		{"has value", expr.HasValue(child, bob), []model.Individual{alice}},
		{"min 2", expr.Min(2, child, personC), []model.Individual{alice}},
		{"min 3", expr.Min(3, child, personC), nil},
		{"min 0", expr.Min(0, child, personC), []model.Individual{alice, bob, carol, dave}},
		{"max 1", expr.Max(1, child, personC), []model.Individual{bob, carol, dave}},
		{"max -1", expr.Max(-1, child, personC), nil},
		{"exactly 0", expr.Exactly(0, child, personC), []model.Individual{bob, carol, dave}},
		{"exactly 2", expr.Exactly(2, child, expr.Thing), []model.Individual{alice}},
		{"exactly 1 pet", expr.Exactly(1, owns.Expression(), petC), []model.Individual{carol}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, e, tt.ce)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_DataRanges(t *testing.T) {
	e := newEngine(t, family(t))

	tests := []struct {
		name string
		ce   expr.ClassExpression
		want []model.Individual
	}{
		{"adult", expr.DataSome(age, expr.MinInclusive(model.Int(18))), []model.Individual{alice}},
		{"minor", expr.DataSome(age, expr.MaxExclusive(model.Int(18))), []model.Individual{bob}},
		{"decimal restriction", expr.DataSome(age, expr.MaxInclusive(model.Decimal(10))), []model.Individual{carol}},
		{"datatype", expr.DataSome(age, expr.Datatype(model.XSDInteger)), []model.Individual{alice, bob}},
		{"literal", expr.DataSome(name, expr.Datatype(model.RDFSLiteral)), []model.Individual{alice, bob}},
		{"one of", expr.DataSome(age, expr.Literals(model.Int(12), model.Int(99))), []model.Individual{bob}},
		{"has value", expr.HasLiteral(name, model.String("Alice")), []model.Individual{alice}},
		{"lang has value", expr.HasLiteral(name, model.LangString("Bob", "EN")), []model.Individual{bob}},
		{"complement", expr.DataSome(age, expr.DataNot(expr.Datatype(model.XSDInteger))), []model.Individual{carol}},
		{"union", expr.DataSome(age, expr.DataOr(expr.Literals(model.Int(30)), expr.Datatype(model.XSDDecimal))), []model.Individual{alice, carol}},
		{"intersection", expr.DataSome(age, expr.DataAnd(expr.Datatype(model.XSDInteger), expr.MaxInclusive(model.Int(20)))), []model.Individual{bob}},
		{"only integer", expr.DataOnly(age, expr.Datatype(model.XSDInteger)), []model.Individual{alice, bob, dave}},
		{"only not integer", expr.DataOnly(age, expr.DataNot(expr.Datatype(model.XSDInteger))), []model.Individual{carol, dave}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, e, tt.ce))
		})
	}
}

func TestEngine_Malformed(t *testing.T) {
	e := newEngine(t, family(t))
	child := hasChild.Expression()

	tests := []struct {
		name string
		ce   expr.ClassExpression
	}{
		{"nil", nil},
		{"empty union", expr.Or()},
		{"empty intersection", expr.And()},
		{"empty one of", expr.OneOf()},
		{"negative min", expr.Min(-1, child, expr.Thing)},
		{"negative exactly", expr.Exactly(-2, child, expr.Thing)},
		{"missing filler", expr.Some(child, nil)},
		{"nested", expr.And(personC, expr.Or())},
		{"empty data one of", expr.DataSome(age, expr.Literals())},
		{"empty data union", expr.DataSome(age, expr.DataOr())},
		{"empty data intersection", expr.DataSome(age, expr.DataAnd())},
		{"no facets", expr.DataSome(age, expr.Restrict(model.XSDInteger))},
		{"incomparable facet", expr.DataSome(age, expr.Restrict(model.XSDInteger, expr.FacetRestriction{Facet: expr.FacetMinInclusive, Value: model.String("x")}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Evaluate(t.Context(), tt.ce)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedExpression)

			var ee *ExpressionError
			require.ErrorAs(t, err, &ee)
			assert.NotEmpty(t, ee.Expression)
		})
	}
}

func TestEngine_IncomparableFacetCause(t *testing.T) {
	e := newEngine(t, family(t))
	ce := expr.DataSome(age, expr.Restrict(model.XSDInteger,
		expr.FacetRestriction{Facet: expr.FacetMaxInclusive, Value: model.Bool(true)}))

	_, err := e.Evaluate(t.Context(), ce)
	assert.ErrorIs(t, err, model.ErrTypeMismatch)
	assert.ErrorIs(t, err, ErrMalformedExpression)
}

type recordingObserver struct {
	NoopMetricsObserver
	lookups     map[string][2]int
	unsupported []expr.Kind
	tables      int
}

func (o *recordingObserver) OnCacheLookup(cache string, hit bool) {
	if o.lookups == nil {
		o.lookups = make(map[string][2]int)
	}
	c := o.lookups[cache]
	if hit {
		c[0]++
	} else {
		c[1]++
	}
	o.lookups[cache] = c
}

func (o *recordingObserver) OnUnsupported(kind expr.Kind) {
	o.unsupported = append(o.unsupported, kind)
}

func (o *recordingObserver) OnMaterialize(model.PropertyKind, string, string, int, time.Duration) {
	o.tables++
}

func TestEngine_OpenWorldComplement(t *testing.T) {
	obs := &recordingObserver{}
	e, err := New(t.Context(), family(t), WithMetricsObserver(obs))
	require.NoError(t, err)
	assert.False(t, e.ClosedWorld())

	got := eval(t, e, expr.And(personC, expr.Not(expr.Some(hasChild.Expression(), personC))))
	assert.Empty(t, got)
	assert.Equal(t, []expr.Kind{expr.KindComplement}, obs.unsupported)

	// A malformed operand is still reported.
	_, err = e.Evaluate(t.Context(), expr.ObjectComplementOf{})
	assert.ErrorIs(t, err, ErrMalformedExpression)
}

func TestEngine_CachesAndObserver(t *testing.T) {
	obs := &recordingObserver{}
	e := newEngine(t, family(t), WithMetricsObserver(obs))
	ce := expr.Some(hasChild.Expression(), personC)

	first := eval(t, e, ce)
	second := eval(t, e, ce)
	assert.Equal(t, first, second)

	assert.Equal(t, [2]int{1, 1}, obs.lookups[CacheObjectSome])
	assert.Equal(t, [2]int{0, 1}, obs.lookups[CacheClass])
	assert.Equal(t, 1, obs.tables)

	s := e.Stats()
	assert.Equal(t, 4, s.Individuals)
	assert.Equal(t, 1, s.ObjectTables)
	assert.Equal(t, 0, s.DataTables)
	assert.Equal(t, int64(1), s.ObjectSome.Hits)
	assert.Equal(t, 1, s.ObjectSome.Len)
	assert.Equal(t, 1, s.Classes.Len)
	assert.Equal(t, 1, s.ObjectSubjects.Len)
	assert.Equal(t, DefaultCacheSize, s.Cardinality.Capacity)
}

func TestEngine_ThingFillerBypassesExpressionCache(t *testing.T) {
	e := newEngine(t, family(t))
	eval(t, e, expr.Some(hasChild.Expression(), expr.Thing))

	s := e.Stats()
	assert.Equal(t, 0, s.ObjectSome.Len)
	assert.Equal(t, 1, s.ObjectSubjects.Len)
}

// countingReasoner counts Instances calls.
type countingReasoner struct {
	reasoner.Reasoner
	instances int
	err       error
}

func (c *countingReasoner) Instances(ctx context.Context, cl model.Class, direct bool) ([]model.Individual, error) {
	c.instances++
	if c.err != nil {
		return nil, c.err
	}
	return c.Reasoner.Instances(ctx, cl, direct)
}

func TestEngine_ClassCacheAndReset(t *testing.T) {
	cr := &countingReasoner{Reasoner: family(t)}
	e := newEngine(t, cr)

	eval(t, e, personC)
	eval(t, e, personC)
	eval(t, e, expr.Thing)
	assert.Equal(t, 1, cr.instances)

	require.NoError(t, e.Reset(t.Context()))
	eval(t, e, personC)
	assert.Equal(t, 2, cr.instances)
	assert.Equal(t, int64(0), e.Stats().Classes.Hits)
}

func TestEngine_ReasonerErrorsPropagate(t *testing.T) {
	boom := errors.New("backend down")
	cr := &countingReasoner{Reasoner: family(t), err: boom}
	e := newEngine(t, cr)

	_, err := e.Evaluate(t.Context(), expr.Some(hasChild.Expression(), personC))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrMalformedExpression)
}

func TestEngine_ResetFailureKeepsState(t *testing.T) {
	boom := errors.New("gone")
	r := &failingIndividuals{Reasoner: family(t)}
	e := newEngine(t, r)

	r.err = boom
	require.ErrorIs(t, e.Reset(t.Context()), boom)
	assert.Equal(t, 4, e.Index().Len())
}

type failingIndividuals struct {
	reasoner.Reasoner
	err error
}

func (f *failingIndividuals) Individuals(ctx context.Context) ([]model.Individual, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Reasoner.Individuals(ctx)
}

func TestEngine_DisabledCachesMatchWarm(t *testing.T) {
	r := family(t)
	cold := newEngine(t, r, WithCacheSize(0), WithoutBulkMaterialization())
	warm := newEngine(t, r, WithCacheSize(2))

	child := hasChild.Expression()
	exprs := []expr.ClassExpression{
		expr.Some(child, personC),
		expr.Min(1, child, personC),
		expr.Max(0, child, expr.Thing),
		expr.DataSome(age, expr.MinInclusive(model.Int(18))),
		expr.Only(child, expr.Not(petC)),
		expr.Exactly(1, owns.Expression(), petC),
		expr.DataOnly(age, expr.Datatype(model.XSDInteger)),
	}
	for range 3 {
		for _, ce := range exprs {
			assert.Equal(t, eval(t, cold, ce), eval(t, warm, ce), ce.String())
		}
	}
	assert.Zero(t, cold.Stats().ObjectSome.Len)
	assert.LessOrEqual(t, warm.Stats().ObjectSome.Len, 2)
}

func TestEngine_ExistentialMonotonicity(t *testing.T) {
	ctx := t.Context()
	e := newEngine(t, family(t))

	fillers := []expr.ClassExpression{
		expr.Nothing,
		petC,
		personC,
		expr.Or(personC, petC),
		expr.OneOf(bob, dave),
		expr.Thing,
	}
	props := []model.ObjectPropertyExpression{
		hasChild.Expression(),
		hasChild.Expression().Invert(),
		owns.Expression(),
		owns.Expression().Invert(),
	}

	mask := func(ce expr.ClassExpression) bitmask.Mask {
		m, err := e.Evaluate(ctx, ce)
		require.NoError(t, err, ce.String())
		return m
	}

	pairs := 0
	for _, c1 := range fillers {
		for _, c2 := range fillers {
			if !mask(c1).SubsetOf(mask(c2)) {
				continue
			}
			pairs++
			for _, p := range props {
				s1, s2 := mask(expr.Some(p, c1)), mask(expr.Some(p, c2))
				assert.True(t, s1.SubsetOf(s2), "∃%s.%s ⊄ ∃%s.%s", p, c1, p, c2)
			}
		}
	}
	assert.Greater(t, pairs, len(fillers))
}

func TestEngine_CardinalityPartition(t *testing.T) {
	e := newEngine(t, family(t))
	all := e.Index().All()

	for _, p := range []model.ObjectPropertyExpression{hasChild.Expression(), hasChild.Expression().Invert()} {
		for _, filler := range []expr.ClassExpression{expr.Thing, personC} {
			for n := range 4 {
				below, err := e.Evaluate(t.Context(), expr.Max(n-1, p, filler))
				require.NoError(t, err)
				exact, err := e.Evaluate(t.Context(), expr.Exactly(n, p, filler))
				require.NoError(t, err)
				above, err := e.Evaluate(t.Context(), expr.Min(n+1, p, filler))
				require.NoError(t, err)

				assert.True(t, below.And(exact).IsEmpty(), "≤%d/=%d %s %s", n-1, n, p, filler)
				assert.True(t, below.And(above).IsEmpty(), "≤%d/≥%d %s %s", n-1, n+1, p, filler)
				assert.True(t, exact.And(above).IsEmpty(), "=%d/≥%d %s %s", n, n+1, p, filler)
				assert.True(t, below.Or(exact).Or(above).Equal(all), "cover %d %s %s", n, p, filler)
			}
		}
	}
}

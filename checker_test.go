package fastic_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner/memory"
)

const ex = "http://example.org/"

const (
	alice model.Individual = ex + "Alice"
	bob   model.Individual = ex + "Bob"
	carol model.Individual = ex + "Carol"

	person   model.Class          = ex + "Person"
	hasChild model.ObjectProperty = ex + "hasChild"
	age      model.DataProperty   = ex + "age"
)

var personC = expr.Class(person)

// scenario: Alice and Bob are persons, Carol is not; Alice hasChild Bob;
// Alice is 30 and Bob 12.
func scenario(t *testing.T) *memory.Reasoner {
	t.Helper()
	ctx := t.Context()

	r := memory.New()
	require.NoError(t, r.AddIndividual(ctx, carol))
	require.NoError(t, r.AddClassAssertion(ctx, person, alice))
	require.NoError(t, r.AddClassAssertion(ctx, person, bob))
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, alice, bob))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, age, alice, model.Int(30)))
	require.NoError(t, r.AddDataPropertyAssertion(ctx, age, bob, model.Int(12)))
	return r
}

func newChecker(t *testing.T, r *memory.Reasoner, opts ...fastic.Option) *fastic.Checker {
	t.Helper()
	c, err := fastic.New(t.Context(), r, opts...)
	require.NoError(t, err)
	return c
}

func instances(t *testing.T, c *fastic.Checker, ce expr.ClassExpression) []model.Individual {
	t.Helper()
	seq, err := c.Instances(t.Context(), ce, false)
	require.NoError(t, err, ce.String())
	return slices.Collect(seq)
}

func TestChecker_Scenarios(t *testing.T) {
	c := newChecker(t, scenario(t), fastic.WithClosedWorldNegation(true))
	someChild := expr.Some(hasChild.Expression(), personC)

	t.Run("some child is a person", func(t *testing.T) {
		assert.Equal(t, []model.Individual{alice}, instances(t, c, someChild))
	})

	t.Run("persons without a person child", func(t *testing.T) {
		got := instances(t, c, expr.And(personC, expr.Not(someChild)))
		assert.Equal(t, []model.Individual{bob}, got)
	})

	t.Run("adults by age facet", func(t *testing.T) {
		got := instances(t, c, expr.DataSome(age, expr.MinInclusive(model.Int(18))))
		assert.Equal(t, []model.Individual{alice}, got)
	})

	t.Run("at least one person child equals some", func(t *testing.T) {
		got := instances(t, c, expr.Min(1, hasChild.Expression(), personC))
		assert.Equal(t, instances(t, c, someChild), got)
	})
}

func TestChecker_Laws(t *testing.T) {
	c := newChecker(t, scenario(t), fastic.WithClosedWorldNegation(true))
	p := hasChild.Expression()

	exprs := []expr.ClassExpression{
		personC,
		expr.Class(model.Thing),
		expr.Class(model.Nothing),
		expr.OneOf(bob, carol),
		expr.Some(p, personC),
		expr.Some(p.Invert(), expr.Class(model.Thing)),
		expr.DataSome(age, expr.MaxExclusive(model.Int(18))),
	}

	set := func(ce expr.ClassExpression) map[model.Individual]bool {
		out := map[model.Individual]bool{}
		for _, i := range instances(t, c, ce) {
			out[i] = true
		}
		return out
	}
	all := set(expr.Class(model.Thing))
	assert.Len(t, all, 3)

	for _, a := range exprs {
		sa := set(a)
		assert.Equal(t, sa, set(expr.Not(expr.Not(a))), "double negation %s", a)

		notA := set(expr.Not(a))
		for i := range all {
			assert.NotEqual(t, sa[i], notA[i], "complement partitions %s", a)
		}

		for _, b := range exprs {
			sb := set(b)
			union, inter := set(expr.Or(a, b)), set(expr.And(a, b))
			for i := range all {
				assert.Equal(t, sa[i] || sb[i], union[i], "%s ∪ %s", a, b)
				assert.Equal(t, sa[i] && sb[i], inter[i], "%s ∩ %s", a, b)
			}
			assert.Equal(t, set(expr.Not(expr.Or(a, b))), set(expr.And(expr.Not(a), expr.Not(b))), "De Morgan %s %s", a, b)
		}

		assert.Equal(t,
			set(expr.Not(expr.Some(p, expr.Not(a)))),
			set(expr.Only(p, a)),
			"universal as negated existential %s", a)
	}
}

func TestChecker_CardinalityPartition(t *testing.T) {
	ctx := t.Context()
	r := scenario(t)
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, alice, carol))
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, carol, bob))
	c := newChecker(t, r, fastic.WithClosedWorldNegation(true))

	p := hasChild.Expression()
	thing := expr.Class(model.Thing)

	seen := map[model.Individual]int{}
	for n := range 4 {
		exact := instances(t, c, expr.Exactly(n, p, thing))
		both := instances(t, c, expr.And(expr.Min(n, p, thing), expr.Max(n, p, thing)))
		assert.Equal(t, exact, both, "exactly %d", n)

		assert.Equal(t, instances(t, c, expr.Not(expr.Min(n+1, p, thing))), instances(t, c, expr.Max(n, p, thing)), "max %d", n)
		for _, i := range exact {
			seen[i]++
		}
	}
	assert.Equal(t, map[model.Individual]int{alice: 1, bob: 1, carol: 1}, seen)

	assert.Equal(t, []model.Individual{alice}, instances(t, c, expr.Exactly(2, p, thing)))
	assert.Equal(t, []model.Individual{alice, bob, carol}, instances(t, c, expr.Min(0, p, personC)))
	assert.Empty(t, instances(t, c, expr.Max(-1, p, thing)))
}

func TestChecker_CacheTransparency(t *testing.T) {
	r := scenario(t)
	p := hasChild.Expression()

	exprs := []expr.ClassExpression{
		expr.Some(p, personC),
		expr.Some(p.Invert(), personC),
		expr.Only(p, personC),
		expr.Min(1, p, personC),
		expr.Exactly(0, p, expr.Class(model.Thing)),
		expr.HasValue(p, bob),
		expr.DataSome(age, expr.MinMaxInclusive(model.Int(10), model.Float(40))),
		expr.DataOnly(age, expr.MaxInclusive(model.Int(18))),
		expr.HasLiteral(age, model.Int(12)),
	}

	run := func(c *fastic.Checker) [][]model.Individual {
		var out [][]model.Individual
		for range 2 {
			for _, ce := range exprs {
				out = append(out, instances(t, c, ce))
			}
		}
		return out
	}

	want := run(newChecker(t, r, fastic.WithClosedWorldNegation(true), fastic.WithCacheSize(0)))
	for _, size := range []int{1, 2, fastic.DefaultCacheSize} {
		got := run(newChecker(t, r, fastic.WithClosedWorldNegation(true), fastic.WithCacheSize(size)))
		assert.Equal(t, want, got, "cache size %d", size)
	}
}

func TestChecker_ConcurrentFallback(t *testing.T) {
	r := scenario(t)
	p := hasChild.Expression()
	exprs := []expr.ClassExpression{
		expr.Some(p, personC),
		expr.Some(p.Invert(), personC),
		expr.DataSome(age, expr.Datatype(model.XSDInteger)),
	}

	bulk := newChecker(t, r)
	fallback := newChecker(t, r,
		fastic.WithoutBulkMaterialization(),
		fastic.WithFetchConcurrency(4),
		fastic.WithReasonerRateLimit(1e6),
	)
	for _, ce := range exprs {
		assert.Equal(t, instances(t, bulk, ce), instances(t, fallback, ce), ce.String())
	}
}

func TestChecker_ResetPicksUpNewFacts(t *testing.T) {
	ctx := t.Context()
	r := scenario(t)
	c := newChecker(t, r)
	someChild := expr.Some(hasChild.Expression(), expr.Class(model.Thing))

	before := instances(t, c, someChild)
	gen := c.Generation()
	assert.NotEmpty(t, gen)

	// Without Reset the snapshot is kept.
	dave := model.Individual(ex + "Dave")
	require.NoError(t, r.AddObjectPropertyAssertion(ctx, hasChild, carol, dave))
	assert.Equal(t, before, instances(t, c, someChild))

	require.NoError(t, c.Reset(ctx))
	assert.NotEqual(t, gen, c.Generation())
	after := instances(t, c, someChild)
	assert.Subset(t, after, before)
	assert.Equal(t, []model.Individual{alice, carol}, after)
	assert.Equal(t, []model.Individual{alice, bob, carol, dave}, slices.Collect(c.Individuals()))

	// Reset is idempotent.
	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, after, instances(t, c, someChild))
	assert.Equal(t, 2, c.Stats().Resets)
}

func TestChecker_CountAndIsInstance(t *testing.T) {
	ctx := t.Context()
	c := newChecker(t, scenario(t))
	someChild := expr.Some(hasChild.Expression(), personC)

	n, err := c.Count(ctx, personC)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := c.IsInstance(ctx, alice, someChild)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsInstance(ctx, bob, someChild)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.IsInstance(ctx, ex+"Nobody", expr.Class(model.Thing))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChecker_OpenWorldComplement(t *testing.T) {
	var buf bytes.Buffer
	metrics := &fastic.BasicMetricsCollector{}
	c := newChecker(t, scenario(t),
		fastic.WithMetricsCollector(metrics),
		fastic.WithLogger(fastic.NewLogger(slog.NewJSONHandler(&buf, nil))),
	)
	assert.False(t, c.ClosedWorld())

	assert.Empty(t, instances(t, c, expr.Not(personC)))
	assert.Empty(t, instances(t, c, expr.And(personC, expr.Not(expr.Some(hasChild.Expression(), personC)))))
	assert.Empty(t, instances(t, c, expr.Only(hasChild.Expression(), personC)))

	assert.Equal(t, int64(3), metrics.GetStats().UnsupportedCount)
	assert.Contains(t, buf.String(), "closed-world negation")
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestChecker_EngineLogsCarryGeneration(t *testing.T) {
	var buf bytes.Buffer
	c := newChecker(t, scenario(t),
		fastic.WithLogger(fastic.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	warnings := func() []map[string]any {
		var out []map[string]any
		for line := range bytes.Lines(buf.Bytes()) {
			var rec map[string]any
			require.NoError(t, json.Unmarshal(line, &rec))
			if strings.Contains(rec["msg"].(string), "closed-world negation") {
				out = append(out, rec)
			}
		}
		return out
	}

	instances(t, c, expr.Not(personC))
	got := warnings()
	require.Len(t, got, 1)
	assert.Equal(t, c.Generation(), got[0]["generation"])

	require.NoError(t, c.Reset(t.Context()))
	instances(t, c, expr.Not(personC))
	got = warnings()
	require.Len(t, got, 2)
	assert.Equal(t, c.Generation(), got[1]["generation"])
	assert.NotEqual(t, got[0]["generation"], got[1]["generation"])
}

func TestChecker_InstancesDebugLogOnlyWhenEnabled(t *testing.T) {
	var info, debug bytes.Buffer
	quiet := newChecker(t, scenario(t), fastic.WithLogger(fastic.NewLogger(slog.NewJSONHandler(&info, nil))))
	verbose := newChecker(t, scenario(t),
		fastic.WithLogger(fastic.NewLogger(slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	instances(t, quiet, personC)
	instances(t, verbose, personC)
	assert.NotContains(t, info.String(), "instance retrieval completed")
	assert.Contains(t, debug.String(), "instance retrieval completed")

	_, err := quiet.Instances(t.Context(), expr.Or(), false)
	require.Error(t, err)
	assert.Contains(t, info.String(), "instance retrieval failed")
}

func TestChecker_Direct(t *testing.T) {
	var buf bytes.Buffer
	c := newChecker(t, scenario(t), fastic.WithLogger(fastic.NewLogger(slog.NewJSONHandler(&buf, nil))))

	seq, err := c.Instances(t.Context(), personC, true)
	require.NoError(t, err)
	assert.Equal(t, instances(t, c, personC), slices.Collect(seq))
	assert.Contains(t, buf.String(), "direct instances are not distinguished")
	assert.Contains(t, buf.String(), c.Generation())
}

func TestChecker_Errors(t *testing.T) {
	ctx := t.Context()

	_, err := fastic.New(ctx, nil)
	assert.ErrorIs(t, err, fastic.ErrNilReasoner)

	metrics := &fastic.BasicMetricsCollector{}
	c := newChecker(t, scenario(t), fastic.WithMetricsCollector(metrics))

	tests := []struct {
		name  string
		ce    expr.ClassExpression
		cause error
	}{
		{"negative min", expr.Min(-1, hasChild.Expression(), personC), nil},
		{"missing filler", expr.Some(hasChild.Expression(), nil), nil},
		{"empty union", expr.Or(), nil},
		{"nested", expr.And(personC, expr.Exactly(-2, hasChild.Expression(), personC)), nil},
		{"nil", nil, nil},
		{
			"incomparable facet",
			expr.DataSome(age, expr.Restrict(model.XSDInteger, expr.FacetRestriction{Facet: expr.FacetMinInclusive, Value: model.String("x")})),
			model.ErrTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Instances(ctx, tt.ce, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, fastic.ErrMalformedExpression)

			var ee *fastic.ExpressionError
			require.ErrorAs(t, err, &ee)
			assert.NotEmpty(t, ee.Expression)
			assert.NotEmpty(t, ee.Reason)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
				assert.ErrorContains(t, err, tt.cause.Error())
				assert.Nil(t, errors.Unwrap(err))
			} else {
				assert.Equal(t, "malformed class expression "+ee.Expression+": "+ee.Reason, err.Error())
			}

			_, err = c.Count(ctx, tt.ce)
			assert.ErrorIs(t, err, fastic.ErrMalformedExpression)
		})
	}
	assert.Equal(t, int64(2*len(tests)), metrics.GetStats().EvaluationErrors)
}

type failingReasoner struct {
	*memory.Reasoner
	err error
}

func (f failingReasoner) Instances(context.Context, model.Class, bool) ([]model.Individual, error) {
	return nil, f.err
}

func TestChecker_ReasonerErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	c, err := fastic.New(t.Context(), failingReasoner{Reasoner: scenario(t), err: boom})
	require.NoError(t, err)

	_, err = c.Instances(t.Context(), personC, false)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, fastic.ErrMalformedExpression)
}

func TestChecker_Metrics(t *testing.T) {
	metrics := &fastic.BasicMetricsCollector{}
	c := newChecker(t, scenario(t), fastic.WithMetricsCollector(metrics))
	ce := expr.Some(hasChild.Expression(), personC)

	instances(t, c, ce)
	instances(t, c, ce)

	s := metrics.GetStats()
	assert.Equal(t, int64(2), s.EvaluationCount)
	assert.Equal(t, int64(0), s.EvaluationErrors)
	assert.Equal(t, int64(1), s.ResetCount)
	assert.Equal(t, int64(1), s.Materializations)
	assert.Equal(t, int64(1), s.MaterializedEdges)
	assert.Positive(t, s.CacheHits)
	assert.Positive(t, s.CacheMisses)
}

func TestChecker_Stats(t *testing.T) {
	c := newChecker(t, scenario(t), fastic.WithCacheSize(8))
	ce := expr.Some(hasChild.Expression(), personC)
	instances(t, c, ce)
	instances(t, c, ce)

	s := c.Stats()
	assert.Equal(t, c.Generation(), s.Generation)
	assert.Equal(t, 3, s.Individuals)
	assert.Equal(t, 1, s.ObjectTables)
	assert.Equal(t, 0, s.DataTables)
	assert.Equal(t, 8, s.Caches["object_some"].Capacity)
	assert.Equal(t, int64(1), s.Caches["object_some"].Hits)
	assert.Equal(t, 1, s.Caches["class"].Len)
	assert.Nil(t, s.Fetch)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"object_tables":1`)
}

func TestChecker_FetchStats(t *testing.T) {
	c := newChecker(t, scenario(t),
		fastic.WithoutBulkMaterialization(),
		fastic.WithFetchConcurrency(2),
		fastic.WithReasonerRateLimit(1e6),
	)
	instances(t, c, expr.Some(hasChild.Expression(), personC))

	s := c.Stats()
	require.NotNil(t, s.Fetch)
	assert.Equal(t, 2, s.Fetch.Workers)
	assert.True(t, s.Fetch.Limited)
	assert.Positive(t, s.Fetch.Calls)
	assert.GreaterOrEqual(t, s.Fetch.Calls, s.Fetch.Throttled)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rate_limited":true`)
}

func TestChecker_Delegates(t *testing.T) {
	ctx := t.Context()
	r := scenario(t)
	c := newChecker(t, r)
	assert.Same(t, r, c.Reasoner())

	types, err := c.Types(ctx, alice, true)
	require.NoError(t, err)
	assert.Equal(t, []model.Class{person}, types)

	objs, err := c.ObjectPropertyValues(ctx, alice, hasChild.Expression())
	require.NoError(t, err)
	assert.Equal(t, []model.Individual{bob}, objs)

	vals, err := c.DataPropertyValues(ctx, bob, age)
	require.NoError(t, err)
	assert.Equal(t, []model.Literal{model.Int(12)}, vals)
}

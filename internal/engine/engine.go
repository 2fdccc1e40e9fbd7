package engine

import (
	"context"
	"log/slog"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/bitmask"
	"github.com/hupe1980/fastic/internal/cache"
	"github.com/hupe1980/fastic/internal/index"
	"github.com/hupe1980/fastic/internal/relation"
	"github.com/hupe1980/fastic/internal/resource"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner"
)

// DefaultCacheSize is the default capacity of every bounded cache.
const DefaultCacheSize = 128

type maskLRU = cache.LRU[string, bitmask.Mask]

// Engine evaluates class expressions to bitmasks over an individual index.
//
// Engine is not safe for concurrent use. Reset must not run concurrently
// with Evaluate.
type Engine struct {
	r reasoner.Reasoner

	cacheSize   int
	closedWorld bool
	disableBulk bool

	resourceController *resource.Controller
	metrics            MetricsObserver
	logger             *slog.Logger

	idx *index.Index
	rel *relation.Materializer

	classes  *cache.Map[model.Class, bitmask.Mask]
	subjects [3]*maskLRU // indexed by model.PropertyKind

	objectSome  *maskLRU
	dataSome    *maskLRU
	cardinality *maskLRU
}

// Option defines a configuration option for the Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCacheSize sets the capacity of each bounded cache. 0 disables them.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// WithClosedWorld enables closed-world negation for ObjectComplementOf.
func WithClosedWorld(enabled bool) Option {
	return func(e *Engine) {
		e.closedWorld = enabled
	}
}

// WithResourceController bounds the per-subject materialization fallback.
func WithResourceController(rc *resource.Controller) Option {
	return func(e *Engine) {
		e.resourceController = rc
	}
}

// WithoutBulkMaterialization disables the reasoner.EdgeLister fast path.
func WithoutBulkMaterialization() Option {
	return func(e *Engine) {
		e.disableBulk = true
	}
}

// WithMetricsObserver sets the metrics observer for the engine.
func WithMetricsObserver(observer MetricsObserver) Option {
	return func(e *Engine) {
		e.metrics = observer
	}
}

// New creates an engine over r and builds its index.
func New(ctx context.Context, r reasoner.Reasoner, opts ...Option) (*Engine, error) {
	e := &Engine{
		r:         r,
		cacheSize: DefaultCacheSize,
		metrics:   &NoopMetricsObserver{},
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Reset(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// SetLogger replaces the logger used for subsequent evaluations.
func (e *Engine) SetLogger(l *slog.Logger) {
	e.logger = l
}

// Reset discards every cache and rebuilds the index from the reasoner's
// current individuals. On error the engine keeps its previous state.
func (e *Engine) Reset(ctx context.Context) error {
	individuals, err := e.r.Individuals(ctx)
	if err != nil {
		return err
	}

	idx := index.New(individuals)
	e.idx = idx
	e.rel = relation.New(e.r, idx, relation.Options{
		Controller:    e.resourceController,
		DisableBulk:   e.disableBulk,
		OnMaterialize: e.onMaterialize,
	})

	e.classes = cache.NewMap[model.Class, bitmask.Mask]()
	for k := range e.subjects {
		e.subjects[k] = cache.NewLRU[string, bitmask.Mask](e.cacheSize)
	}
	e.objectSome = cache.NewLRU[string, bitmask.Mask](e.cacheSize)
	e.dataSome = cache.NewLRU[string, bitmask.Mask](e.cacheSize)
	e.cardinality = cache.NewLRU[string, bitmask.Mask](e.cacheSize)
	return nil
}

// Index returns the current individual index.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// ClosedWorld reports whether closed-world negation is enabled.
func (e *Engine) ClosedWorld() bool {
	return e.closedWorld
}

// Evaluate returns the mask of individuals that are instances of ce.
func (e *Engine) Evaluate(ctx context.Context, ce expr.ClassExpression) (bitmask.Mask, error) {
	return e.eval(ctx, ce)
}

func (e *Engine) eval(ctx context.Context, ce expr.ClassExpression) (bitmask.Mask, error) {
	switch c := ce.(type) {
	case expr.NamedClass:
		return e.class(ctx, c.Class)

	case expr.ObjectUnionOf:
		if len(c.Operands) == 0 {
			return bitmask.Mask{}, malformed(c, "union without operands", nil)
		}
		acc := e.idx.None()
		for _, op := range c.Operands {
			m, err := e.eval(ctx, op)
			if err != nil {
				return bitmask.Mask{}, err
			}
			acc = acc.Or(m)
		}
		return acc, nil

	case expr.ObjectIntersectionOf:
		if len(c.Operands) == 0 {
			return bitmask.Mask{}, malformed(c, "intersection without operands", nil)
		}
		acc := e.idx.All()
		for _, op := range c.Operands {
			m, err := e.eval(ctx, op)
			if err != nil {
				return bitmask.Mask{}, err
			}
			acc = acc.And(m)
		}
		return acc, nil

	case expr.ObjectComplementOf:
		return e.complement(ctx, c)

	case expr.ObjectOneOf:
		if len(c.Individuals) == 0 {
			return bitmask.Mask{}, malformed(c, "enumeration without individuals", nil)
		}
		return e.idx.EncodeAll(c.Individuals), nil

	case expr.ObjectSomeValuesFrom:
		return e.someValues(ctx, c)

	case expr.ObjectAllValuesFrom:
		if c.Filler == nil {
			return bitmask.Mask{}, malformed(c, "missing filler", nil)
		}
		return e.eval(ctx, expr.Not(expr.Some(c.Property, expr.Negate(c.Filler))))

	case expr.ObjectHasValue:
		return e.eval(ctx, c.AsSomeValuesFrom())

	case expr.ObjectMinCardinality:
		if c.Cardinality < 0 {
			return bitmask.Mask{}, malformed(c, "negative cardinality", nil)
		}
		return e.countBetween(ctx, c, c.Property, c.Filler, c.Cardinality, -1)

	case expr.ObjectMaxCardinality:
		return e.maxCardinality(ctx, c)

	case expr.ObjectExactCardinality:
		if c.Cardinality < 0 {
			return bitmask.Mask{}, malformed(c, "negative cardinality", nil)
		}
		return e.countBetween(ctx, c, c.Property, c.Filler, c.Cardinality, c.Cardinality)

	case expr.DataSomeValuesFrom:
		return e.dataSomeValues(ctx, c)

	case expr.DataAllValuesFrom:
		if c.Range == nil {
			return bitmask.Mask{}, malformed(c, "missing data range", nil)
		}
		var neg expr.DataRange = expr.DataNot(c.Range)
		if dc, ok := c.Range.(expr.DataComplementOf); ok {
			neg = dc.Range
		}
		return e.eval(ctx, expr.Not(expr.DataSome(c.Property, neg)))

	case expr.DataHasValue:
		return e.eval(ctx, c.AsSomeValuesFrom())

	case nil:
		return bitmask.Mask{}, malformed(nil, "missing class expression", nil)

	default:
		return bitmask.Mask{}, malformed(ce, "unsupported expression kind", nil)
	}
}

// class returns the instances of an atomic class, asking the reasoner once.
func (e *Engine) class(ctx context.Context, c model.Class) (bitmask.Mask, error) {
	switch c {
	case model.Thing:
		return e.idx.All(), nil
	case model.Nothing:
		return e.idx.None(), nil
	}

	m, ok := e.classes.Get(c)
	e.metrics.OnCacheLookup(CacheClass, ok)
	if ok {
		return m, nil
	}

	instances, err := e.r.Instances(ctx, c, false)
	if err != nil {
		return bitmask.Mask{}, err
	}
	m = e.idx.EncodeAll(instances)
	e.classes.Add(c, m)
	return m, nil
}

func (e *Engine) complement(ctx context.Context, c expr.ObjectComplementOf) (bitmask.Mask, error) {
	if c.Operand == nil {
		return bitmask.Mask{}, malformed(c, "missing operand", nil)
	}
	if !e.closedWorld {
		e.logger.Warn("class complement requires closed-world negation, returning empty set",
			"expression", c.String())
		e.metrics.OnUnsupported(expr.KindComplement)
		return e.idx.None(), nil
	}

	m, err := e.eval(ctx, c.Operand)
	if err != nil {
		return bitmask.Mask{}, err
	}
	return m.Complement(), nil
}

// cached looks key up in lru and computes it on a miss.
func (e *Engine) cached(lru *maskLRU, name, key string, compute func() (bitmask.Mask, error)) (bitmask.Mask, error) {
	m, ok := lru.Get(key)
	e.metrics.OnCacheLookup(name, ok)
	if ok {
		return m, nil
	}

	m, err := compute()
	if err != nil {
		return bitmask.Mask{}, err
	}
	lru.Add(key, m)
	return m, nil
}

func (e *Engine) onMaterialize(ev relation.Event) {
	e.logger.Debug("materialized property",
		"kind", ev.Kind.String(),
		"property", ev.Property,
		"source", ev.Source.String(),
		"subjects", ev.Subjects,
		"edges", ev.Edges,
		"duration", ev.Duration,
	)
	e.metrics.OnMaterialize(ev.Kind, ev.Property, ev.Source.String(), ev.Edges, ev.Duration)
}

package fastic

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/engine"
	"github.com/hupe1980/fastic/internal/resource"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner"
)

// Checker answers instance queries for arbitrary class expressions on top of
// a base reasoner that only knows atomic classes and property assertions.
//
// A Checker is not safe for concurrent use. Callers either serialize every
// call or use one Checker per goroutine over the same base reasoner.
type Checker struct {
	r       reasoner.Reasoner
	opts    options
	logger  *Logger
	metrics MetricsCollector

	engine     *engine.Engine
	rc         *resource.Controller
	generation ulid.ULID
	resets     int
}

// New creates a Checker and indexes the base reasoner's individuals.
//
// The base reasoner is borrowed: it must outlive the Checker and must not gain
// individuals without a subsequent Reset.
func New(ctx context.Context, r reasoner.Reasoner, optFns ...Option) (*Checker, error) {
	if r == nil {
		return nil, ErrNilReasoner
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Checker{
		r:       r,
		opts:    opts,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}
	if opts.fetchConcurrency > 1 || opts.rateLimit > 0 {
		c.rc = resource.NewController(resource.Config{
			MaxWorkers:     int64(opts.fetchConcurrency),
			CallsPerSecond: opts.rateLimit,
		})
	}

	engineOpts := []engine.Option{
		engine.WithLogger(opts.logger.Logger),
		engine.WithCacheSize(opts.cacheSize),
		engine.WithClosedWorld(opts.closedWorld),
		engine.WithResourceController(c.rc),
		engine.WithMetricsObserver(metricsObserver{mc: opts.metricsCollector}),
	}
	if opts.disableBulk {
		engineOpts = append(engineOpts, engine.WithoutBulkMaterialization())
	}

	start := time.Now()
	e, err := engine.New(ctx, r, engineOpts...)
	if err != nil {
		c.metrics.RecordReset(0, time.Since(start), err)
		c.logger.LogReset(ctx, 0, time.Since(start), err)
		return nil, err
	}
	c.engine = e
	c.newGeneration(ctx, start)
	return c, nil
}

// Instances returns the individuals that are instances of ce, in ascending
// IRI order.
//
// direct=true is accepted but not distinguished: the result is the same as
// for direct=false and a warning is logged.
func (c *Checker) Instances(ctx context.Context, ce expr.ClassExpression, direct bool) (iter.Seq[model.Individual], error) {
	if direct {
		c.logger.LogDirect(ctx, render(ce))
	}

	start := time.Now()
	m, err := c.engine.Evaluate(ctx, ce)
	err = translateError(err)
	c.metrics.RecordEvaluation(kindOf(ce), time.Since(start), err)
	if err != nil || c.logger.Enabled(ctx, slog.LevelDebug) {
		c.logger.LogInstances(ctx, render(ce), m.Count(), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	return c.engine.Index().Decode(m), nil
}

// Count returns the number of instances of ce.
func (c *Checker) Count(ctx context.Context, ce expr.ClassExpression) (int, error) {
	start := time.Now()
	m, err := c.engine.Evaluate(ctx, ce)
	err = translateError(err)
	c.metrics.RecordEvaluation(kindOf(ce), time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return m.Count(), nil
}

// IsInstance reports whether ind is an instance of ce. Individuals unknown to
// the index are never instances.
func (c *Checker) IsInstance(ctx context.Context, ind model.Individual, ce expr.ClassExpression) (bool, error) {
	start := time.Now()
	m, err := c.engine.Evaluate(ctx, ce)
	err = translateError(err)
	c.metrics.RecordEvaluation(kindOf(ce), time.Since(start), err)
	if err != nil {
		return false, err
	}
	pos, ok := c.engine.Index().Encode(ind)
	return ok && m.Test(pos), nil
}

// Individuals returns every indexed individual in ascending IRI order.
func (c *Checker) Individuals() iter.Seq[model.Individual] {
	return c.engine.Index().Individuals()
}

// Reset discards every cache and rebuilds the index from the base reasoner's
// current individuals. It must not run concurrently with queries.
func (c *Checker) Reset(ctx context.Context) error {
	start := time.Now()
	if err := c.engine.Reset(ctx); err != nil {
		c.metrics.RecordReset(c.engine.Index().Len(), time.Since(start), err)
		c.logger.LogReset(ctx, 0, time.Since(start), err)
		return err
	}
	c.resets++
	c.newGeneration(ctx, start)
	return nil
}

// Generation returns the identifier of the current index generation.
func (c *Checker) Generation() string {
	return c.generation.String()
}

// ClosedWorld reports whether closed-world negation is enabled.
func (c *Checker) ClosedWorld() bool {
	return c.opts.closedWorld
}

// Reasoner returns the base reasoner.
func (c *Checker) Reasoner() reasoner.Reasoner {
	return c.r
}

// Types delegates to the base reasoner.
func (c *Checker) Types(ctx context.Context, ind model.Individual, direct bool) ([]model.Class, error) {
	return c.r.Types(ctx, ind, direct)
}

// ObjectPropertyValues delegates to the base reasoner.
func (c *Checker) ObjectPropertyValues(ctx context.Context, ind model.Individual, p model.ObjectPropertyExpression) ([]model.Individual, error) {
	return c.r.ObjectPropertyValues(ctx, ind, p)
}

// DataPropertyValues delegates to the base reasoner.
func (c *Checker) DataPropertyValues(ctx context.Context, ind model.Individual, p model.DataProperty) ([]model.Literal, error) {
	return c.r.DataPropertyValues(ctx, ind, p)
}

func (c *Checker) newGeneration(ctx context.Context, start time.Time) {
	c.generation = ulid.Make()
	c.logger = c.opts.logger.WithGeneration(c.generation.String())
	c.engine.SetLogger(c.logger.Logger)

	n := c.engine.Index().Len()
	c.metrics.RecordReset(n, time.Since(start), nil)
	c.logger.LogReset(ctx, n, time.Since(start), nil)
}

func kindOf(ce expr.ClassExpression) string {
	if ce == nil {
		return "nil"
	}
	return ce.Kind().String()
}

func render(ce expr.ClassExpression) string {
	if ce == nil {
		return "nil"
	}
	return ce.String()
}

package fastic

import (
	"log/slog"

	"github.com/hupe1980/fastic/internal/engine"
)

// DefaultCacheSize is the default capacity of each bounded cache.
const DefaultCacheSize = engine.DefaultCacheSize

type options struct {
	cacheSize        int
	closedWorld      bool
	fetchConcurrency int
	rateLimit        float64
	disableBulk      bool
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		cacheSize:        DefaultCacheSize,
		fetchConcurrency: 1,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures a Checker.
type Option func(*options)

// WithCacheSize sets the capacity of each bounded cache: the three property
// subject caches and the existential, data and cardinality result caches.
// 0 disables them; results are unaffected.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = max(n, 0)
	}
}

// WithClosedWorldNegation enables closed-world negation: the complement of a
// class is every indexed individual not in it. When disabled (the default),
// complements evaluate to the empty set and a warning is logged.
func WithClosedWorldNegation(enabled bool) Option {
	return func(o *options) {
		o.closedWorld = enabled
	}
}

// WithFetchConcurrency sets how many per-subject base reasoner queries may be
// in flight while materializing a property table without a bulk edge lister.
// The base reasoner must then be safe for concurrent reads. Default 1.
func WithFetchConcurrency(n int) Option {
	return func(o *options) {
		o.fetchConcurrency = max(n, 1)
	}
}

// WithReasonerRateLimit caps base reasoner calls during materialization to
// perSecond. 0 (the default) is unlimited.
func WithReasonerRateLimit(perSecond float64) Option {
	return func(o *options) {
		o.rateLimit = max(perSecond, 0)
	}
}

// WithoutBulkMaterialization ignores reasoner.EdgeLister and always
// materializes property tables with per-subject queries.
func WithoutBulkMaterialization() Option {
	return func(o *options) {
		o.disableBulk = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fastic.BasicMetricsCollector{}
//	c, _ := fastic.New(ctx, r, fastic.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Evaluations: %d, cache hits: %d\n", stats.EvaluationCount, stats.CacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := fastic.NewJSONLogger(slog.LevelInfo)
//	c, _ := fastic.New(ctx, r, fastic.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel logs text to stderr at the given minimum level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

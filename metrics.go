package fastic

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/internal/engine"
	"github.com/hupe1980/fastic/model"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package metrics/prom).
type MetricsCollector interface {
	// RecordEvaluation is called after each top-level evaluation.
	// kind is the OWL name of the expression kind, err is nil if successful.
	RecordEvaluation(kind string, duration time.Duration, err error)

	// RecordCacheLookup is called for every lookup in an engine cache.
	RecordCacheLookup(cache string, hit bool)

	// RecordMaterialization is called when a property table has been built.
	// kind is "object", "inverse" or "data"; source is "bulk" or "fallback".
	RecordMaterialization(kind, source string, edges int, duration time.Duration)

	// RecordUnsupported is called when a construct is answered with the empty
	// set instead of being evaluated (open-world complement).
	RecordUnsupported(construct string)

	// RecordReset is called after each index (re)build.
	RecordReset(individuals int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEvaluation(string, time.Duration, error)            {}
func (NoopMetricsCollector) RecordCacheLookup(string, bool)                           {}
func (NoopMetricsCollector) RecordMaterialization(string, string, int, time.Duration) {}
func (NoopMetricsCollector) RecordUnsupported(string)                                 {}
func (NoopMetricsCollector) RecordReset(int, time.Duration, error)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EvaluationCount      atomic.Int64
	EvaluationErrors     atomic.Int64
	EvaluationTotalNanos atomic.Int64
	CacheHits            atomic.Int64
	CacheMisses          atomic.Int64
	Materializations     atomic.Int64
	MaterializedEdges    atomic.Int64
	UnsupportedCount     atomic.Int64
	ResetCount           atomic.Int64
	ResetErrors          atomic.Int64
}

// RecordEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluation(kind string, duration time.Duration, err error) {
	b.EvaluationCount.Add(1)
	b.EvaluationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EvaluationErrors.Add(1)
	}
}

// RecordCacheLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheLookup(cache string, hit bool) {
	if hit {
		b.CacheHits.Add(1)
	} else {
		b.CacheMisses.Add(1)
	}
}

// RecordMaterialization implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMaterialization(kind, source string, edges int, duration time.Duration) {
	b.Materializations.Add(1)
	b.MaterializedEdges.Add(int64(edges))
}

// RecordUnsupported implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnsupported(construct string) {
	b.UnsupportedCount.Add(1)
}

// RecordReset implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReset(individuals int, duration time.Duration, err error) {
	b.ResetCount.Add(1)
	if err != nil {
		b.ResetErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EvaluationCount:    b.EvaluationCount.Load(),
		EvaluationErrors:   b.EvaluationErrors.Load(),
		EvaluationAvgNanos: b.getAvgEvaluationNanos(),
		CacheHits:          b.CacheHits.Load(),
		CacheMisses:        b.CacheMisses.Load(),
		Materializations:   b.Materializations.Load(),
		MaterializedEdges:  b.MaterializedEdges.Load(),
		UnsupportedCount:   b.UnsupportedCount.Load(),
		ResetCount:         b.ResetCount.Load(),
		ResetErrors:        b.ResetErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgEvaluationNanos() int64 {
	count := b.EvaluationCount.Load()
	if count == 0 {
		return 0
	}
	return b.EvaluationTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EvaluationCount    int64
	EvaluationErrors   int64
	EvaluationAvgNanos int64
	CacheHits          int64
	CacheMisses        int64
	Materializations   int64
	MaterializedEdges  int64
	UnsupportedCount   int64
	ResetCount         int64
	ResetErrors        int64
}

// metricsObserver forwards engine events to a MetricsCollector.
type metricsObserver struct {
	mc MetricsCollector
}

var _ engine.MetricsObserver = metricsObserver{}

func (o metricsObserver) OnCacheLookup(cache string, hit bool) {
	o.mc.RecordCacheLookup(cache, hit)
}

func (o metricsObserver) OnMaterialize(kind model.PropertyKind, _ string, source string, edges int, duration time.Duration) {
	o.mc.RecordMaterialization(kind.String(), source, edges, duration)
}

func (o metricsObserver) OnUnsupported(kind expr.Kind) {
	o.mc.RecordUnsupported(kind.String())
}

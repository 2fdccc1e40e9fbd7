// Package prom exports Checker metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c, err := fastic.New(ctx, r, fastic.WithMetricsCollector(prom.NewCollector(reg)))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/fastic"
)

const namespace = "fastic"

// Collector implements fastic.MetricsCollector with Prometheus metrics.
type Collector struct {
	evalLatency       *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	materialized      *prometheus.CounterVec
	materializedEdges *prometheus.CounterVec
	materializeLat    *prometheus.HistogramVec
	unsupported       *prometheus.CounterVec
	resets            *prometheus.CounterVec
	individuals       prometheus.Gauge
}

var _ fastic.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics and registers them with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		evalLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_latency_seconds",
			Help:      "Latency of top-level class expression evaluations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "status"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Engine cache lookups",
		}, []string{"cache", "result"}),
		materialized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "materializations_total",
			Help:      "Property tables materialized from the base reasoner",
		}, []string{"kind", "source"}),
		materializedEdges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "materialized_edges_total",
			Help:      "Property assertions copied into materialized tables",
		}, []string{"kind"}),
		materializeLat: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "materialization_latency_seconds",
			Help:      "Time spent materializing one property table",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "source"}),
		unsupported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unsupported_total",
			Help:      "Constructs answered with the empty set instead of being evaluated",
		}, []string{"construct"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Index builds",
		}, []string{"status"}),
		individuals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "individuals",
			Help:      "Individuals in the current index generation",
		}),
	}

	reg.MustRegister(
		c.evalLatency,
		c.cacheLookups,
		c.materialized,
		c.materializedEdges,
		c.materializeLat,
		c.unsupported,
		c.resets,
		c.individuals,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordEvaluation implements fastic.MetricsCollector.
func (c *Collector) RecordEvaluation(kind string, duration time.Duration, err error) {
	c.evalLatency.WithLabelValues(kind, status(err)).Observe(duration.Seconds())
}

// RecordCacheLookup implements fastic.MetricsCollector.
func (c *Collector) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordMaterialization implements fastic.MetricsCollector.
func (c *Collector) RecordMaterialization(kind, source string, edges int, duration time.Duration) {
	c.materialized.WithLabelValues(kind, source).Inc()
	c.materializedEdges.WithLabelValues(kind).Add(float64(edges))
	c.materializeLat.WithLabelValues(kind, source).Observe(duration.Seconds())
}

// RecordUnsupported implements fastic.MetricsCollector.
func (c *Collector) RecordUnsupported(construct string) {
	c.unsupported.WithLabelValues(construct).Inc()
}

// RecordReset implements fastic.MetricsCollector.
func (c *Collector) RecordReset(individuals int, _ time.Duration, err error) {
	c.resets.WithLabelValues(status(err)).Inc()
	if err == nil {
		c.individuals.Set(float64(individuals))
	}
}

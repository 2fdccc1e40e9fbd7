package engine

import (
	"time"

	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/model"
)

// Cache names reported to the MetricsObserver.
const (
	CacheClass           = "class"
	CacheObjectSubjects  = "object_subjects"
	CacheInverseSubjects = "inverse_subjects"
	CacheDataSubjects    = "data_subjects"
	CacheObjectSome      = "object_some"
	CacheDataSome        = "data_some"
	CacheCardinality     = "cardinality"
)

// MetricsObserver receives engine events.
type MetricsObserver interface {
	// OnCacheLookup is called for every lookup in one of the engine caches.
	OnCacheLookup(cache string, hit bool)

	// OnMaterialize is called when a property table has been built.
	OnMaterialize(kind model.PropertyKind, property string, source string, edges int, duration time.Duration)

	// OnUnsupported is called when a construct is answered with the empty set
	// instead of being evaluated.
	OnUnsupported(kind expr.Kind)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (o *NoopMetricsObserver) OnCacheLookup(cache string, hit bool) {}
func (o *NoopMetricsObserver) OnMaterialize(kind model.PropertyKind, property string, source string, edges int, duration time.Duration) {
}
func (o *NoopMetricsObserver) OnUnsupported(kind expr.Kind) {}

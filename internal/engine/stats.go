package engine

import (
	"github.com/hupe1980/fastic/internal/cache"
	"github.com/hupe1980/fastic/model"
)

// Stats is a snapshot of the engine state. Cache counters start over on Reset.
type Stats struct {
	Individuals  int
	ObjectTables int
	DataTables   int

	Classes         cache.Stats
	ObjectSubjects  cache.Stats
	InverseSubjects cache.Stats
	DataSubjects    cache.Stats
	ObjectSome      cache.Stats
	DataSome        cache.Stats
	Cardinality     cache.Stats
}

// Stats returns the current engine statistics.
func (e *Engine) Stats() Stats {
	objects, data := e.rel.Tables()
	return Stats{
		Individuals:     e.idx.Len(),
		ObjectTables:    objects,
		DataTables:      data,
		Classes:         e.classes.Stats(),
		ObjectSubjects:  e.subjects[model.ObjectPropertyKind].Stats(),
		InverseSubjects: e.subjects[model.InverseObjectPropertyKind].Stats(),
		DataSubjects:    e.subjects[model.DataPropertyKind].Stats(),
		ObjectSome:      e.objectSome.Stats(),
		DataSome:        e.dataSome.Stats(),
		Cardinality:     e.cardinality.Stats(),
	}
}

package relation

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/fastic/internal/index"
	"github.com/hupe1980/fastic/internal/resource"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/reasoner"
)

// Source identifies how a table was built.
type Source uint8

const (
	// SourceBulk means the table was streamed through reasoner.EdgeLister.
	SourceBulk Source = iota
	// SourceFallback means the table was assembled from per-subject queries.
	SourceFallback
)

func (s Source) String() string {
	if s == SourceBulk {
		return "bulk"
	}
	return "fallback"
}

// Event describes one materialized table.
type Event struct {
	Kind     model.PropertyKind
	Property string
	Source   Source
	Subjects int
	Edges    int
	Duration time.Duration
}

// Options configures a Materializer.
type Options struct {
	// Controller bounds fallback concurrency and reasoner call rate. May be nil.
	Controller *resource.Controller

	// DisableBulk forces the per-subject fallback even when the reasoner
	// implements reasoner.EdgeLister.
	DisableBulk bool

	// OnMaterialize is called after each table is built. May be nil.
	OnMaterialize func(Event)
}

// Materializer builds property tables lazily, once per property expression.
// It is not safe for concurrent use.
type Materializer struct {
	r     reasoner.Reasoner
	edges reasoner.EdgeLister
	idx   *index.Index
	opts  Options

	objects map[model.ObjectPropertyExpression]*ObjectTable
	data    map[model.DataProperty]*DataTable
}

// New creates a materializer resolving individuals through idx.
func New(r reasoner.Reasoner, idx *index.Index, opts Options) *Materializer {
	m := &Materializer{
		r:       r,
		idx:     idx,
		opts:    opts,
		objects: make(map[model.ObjectPropertyExpression]*ObjectTable),
		data:    make(map[model.DataProperty]*DataTable),
	}
	if el, ok := r.(reasoner.EdgeLister); ok && !opts.DisableBulk {
		m.edges = el
	}
	return m
}

// Objects returns the table of p, materializing it on first use.
func (m *Materializer) Objects(ctx context.Context, p model.ObjectPropertyExpression) (*ObjectTable, error) {
	if t, ok := m.objects[p]; ok {
		return t, nil
	}

	start := time.Now()
	targets := make([]*roaring.Bitmap, m.idx.Len())
	add := func(s, o model.Individual) {
		si, ok := m.idx.Encode(s)
		if !ok {
			return
		}
		oi, ok := m.idx.Encode(o)
		if !ok {
			return
		}
		if targets[si] == nil {
			targets[si] = roaring.New()
		}
		targets[si].Add(uint32(oi))
	}

	var (
		src Source
		err error
	)
	if m.edges != nil {
		src = SourceBulk
		err = m.bulk(ctx, func(ctx context.Context) error {
			return m.edges.ObjectPropertyEdges(ctx, p.Property, func(s, o model.Individual) error {
				if p.Inverse {
					s, o = o, s
				}
				add(s, o)
				return nil
			})
		})
	} else {
		src = SourceFallback
		var values [][]model.Individual
		values, err = fetch(ctx, m, func(ctx context.Context, s model.Individual) ([]model.Individual, error) {
			return m.r.ObjectPropertyValues(ctx, s, p)
		})
		for si, objs := range values {
			for _, o := range objs {
				add(m.idx.Individual(si), o)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	t := newObjectTable(targets)
	m.objects[p] = t
	m.report(Event{
		Kind:     p.Kind(),
		Property: string(p.Property),
		Source:   src,
		Subjects: t.Len(),
		Edges:    t.Edges(),
		Duration: time.Since(start),
	})
	return t, nil
}

// Data returns the table of p, materializing it on first use.
func (m *Materializer) Data(ctx context.Context, p model.DataProperty) (*DataTable, error) {
	if t, ok := m.data[p]; ok {
		return t, nil
	}

	start := time.Now()

	var (
		values [][]model.Literal
		src    Source
		err    error
	)
	if m.edges != nil {
		src = SourceBulk
		values = make([][]model.Literal, m.idx.Len())
		err = m.bulk(ctx, func(ctx context.Context) error {
			return m.edges.DataPropertyEdges(ctx, p, func(s model.Individual, v model.Literal) error {
				if si, ok := m.idx.Encode(s); ok {
					values[si] = append(values[si], v)
				}
				return nil
			})
		})
	} else {
		src = SourceFallback
		values, err = fetch(ctx, m, func(ctx context.Context, s model.Individual) ([]model.Literal, error) {
			return m.r.DataPropertyValues(ctx, s, p)
		})
	}
	if err != nil {
		return nil, err
	}

	t := newDataTable(values)
	m.data[p] = t
	m.report(Event{
		Kind:     model.DataPropertyKind,
		Property: string(p),
		Source:   src,
		Subjects: t.Len(),
		Edges:    t.Edges(),
		Duration: time.Since(start),
	})
	return t, nil
}

// Tables returns the number of materialized object and data tables.
func (m *Materializer) Tables() (objects, data int) {
	return len(m.objects), len(m.data)
}

func (m *Materializer) bulk(ctx context.Context, stream func(context.Context) error) error {
	rc := m.opts.Controller
	if err := rc.AcquireCall(ctx); err != nil {
		return err
	}
	return stream(ctx)
}

func (m *Materializer) report(ev Event) {
	if m.opts.OnMaterialize != nil {
		m.opts.OnMaterialize(ev)
	}
}

// fetch queries every individual of the index and returns the answers in
// index order. With more than one worker the queries fan out; the result
// does not depend on completion order.
func fetch[T any](ctx context.Context, m *Materializer, query func(context.Context, model.Individual) ([]T, error)) ([][]T, error) {
	rc := m.opts.Controller
	out := make([][]T, m.idx.Len())

	if rc.Workers() <= 1 {
		for i := range out {
			if err := rc.AcquireCall(ctx); err != nil {
				return nil, err
			}
			vs, err := query(ctx, m.idx.Individual(i))
			if err != nil {
				return nil, err
			}
			out[i] = vs
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range out {
		if err := rc.AcquireWorker(gctx); err != nil {
			if werr := g.Wait(); werr != nil {
				return nil, werr
			}
			return nil, err
		}
		g.Go(func() error {
			defer rc.ReleaseWorker()
			if err := rc.AcquireCall(gctx); err != nil {
				return err
			}
			vs, err := query(gctx, m.idx.Individual(i))
			if err != nil {
				return err
			}
			out[i] = vs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

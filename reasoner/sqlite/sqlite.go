package sqlite

import (
	"context"
	"database/sql"
	"slices"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/ontology"
	"github.com/hupe1980/fastic/reasoner"
)

var (
	_ reasoner.Reasoner   = (*Reasoner)(nil)
	_ reasoner.EdgeLister = (*Reasoner)(nil)
	_ ontology.Sink       = (*Reasoner)(nil)
)

// Reasoner answers base-reasoner queries from a SQLite database. It is safe
// for concurrent use.
type Reasoner struct {
	db *sql.DB
	writer
}

// Open opens (or creates) the database at path. ":memory:" opens a private
// in-memory database.
func Open(ctx context.Context, path string) (*Reasoner, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// Every connection would get its own empty database.
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Reasoner{db: db, writer: writer{db: db}}, nil
}

// Close closes the database connection
func (r *Reasoner) Close() error {
	return r.db.Close()
}

// Batch runs fn with a sink that writes inside one transaction. The
// transaction commits if fn returns nil and rolls back otherwise.
func (r *Reasoner) Batch(ctx context.Context, fn func(ontology.Sink) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(writer{db: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Individuals returns every individual in IRI order.
func (r *Reasoner) Individuals(ctx context.Context) ([]model.Individual, error) {
	return queryColumn[model.Individual](ctx, r.db, `SELECT iri FROM individuals ORDER BY iri`)
}

// Instances returns the instances of c in IRI order. Non-direct instances
// include the instances of every subclass.
func (r *Reasoner) Instances(ctx context.Context, c model.Class, direct bool) ([]model.Individual, error) {
	switch {
	case c == model.Thing && !direct:
		return r.Individuals(ctx)
	case c == model.Nothing:
		return nil, nil
	case direct:
		return queryColumn[model.Individual](ctx, r.db,
			`SELECT individual FROM class_assertions WHERE class = ? ORDER BY individual`, string(c))
	}

	return queryColumn[model.Individual](ctx, r.db, `
WITH RECURSIVE subs(class) AS (
	SELECT ?
	UNION
	SELECT s.sub FROM subclass_axioms s JOIN subs ON s.super = subs.class
)
SELECT DISTINCT individual FROM class_assertions
WHERE class IN (SELECT class FROM subs)
ORDER BY individual`, string(c))
}

// Types returns the classes of ind in IRI order. Non-direct types include all
// superclasses and owl:Thing.
func (r *Reasoner) Types(ctx context.Context, ind model.Individual, direct bool) ([]model.Class, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM individuals WHERE iri = ?`, string(ind)).Scan(&exists)
	if err != nil || exists == 0 {
		return nil, err
	}

	if direct {
		return queryColumn[model.Class](ctx, r.db,
			`SELECT class FROM class_assertions WHERE individual = ? ORDER BY class`, string(ind))
	}

	types, err := queryColumn[model.Class](ctx, r.db, `
WITH RECURSIVE supers(class) AS (
	SELECT class FROM class_assertions WHERE individual = ?
	UNION
	SELECT s.super FROM subclass_axioms s JOIN supers ON s.sub = supers.class
)
SELECT class FROM supers`, string(ind))
	if err != nil {
		return nil, err
	}
	if !slices.Contains(types, model.Thing) {
		types = append(types, model.Thing)
	}
	slices.Sort(types)
	return types, nil
}

// ObjectPropertyValues returns the objects of ind under p in assertion order.
func (r *Reasoner) ObjectPropertyValues(ctx context.Context, ind model.Individual, p model.ObjectPropertyExpression) ([]model.Individual, error) {
	if p.Inverse {
		return queryColumn[model.Individual](ctx, r.db,
			`SELECT subject FROM object_assertions WHERE property = ? AND object = ? ORDER BY seq`,
			string(p.Property), string(ind))
	}
	return queryColumn[model.Individual](ctx, r.db,
		`SELECT object FROM object_assertions WHERE property = ? AND subject = ? ORDER BY seq`,
		string(p.Property), string(ind))
}

// DataPropertyValues returns the literals of ind under p in assertion order.
func (r *Reasoner) DataPropertyValues(ctx context.Context, ind model.Individual, p model.DataProperty) ([]model.Literal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT datatype, lexical, lang FROM data_assertions WHERE property = ? AND subject = ? ORDER BY seq`,
		string(p), string(ind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Literal
	for rows.Next() {
		var dt, lex, lang string
		if err := rows.Scan(&dt, &lex, &lang); err != nil {
			return nil, err
		}
		lit, err := decodeLiteral(dt, lex, lang)
		if err != nil {
			return nil, err
		}
		out = append(out, lit)
	}
	return out, rows.Err()
}

// ObjectPropertyEdges streams every assertion of p in assertion order.
func (r *Reasoner) ObjectPropertyEdges(ctx context.Context, p model.ObjectProperty, fn func(subject, object model.Individual) error) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subject, object FROM object_assertions WHERE property = ? ORDER BY seq`, string(p))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s, o string
		if err := rows.Scan(&s, &o); err != nil {
			return err
		}
		if err := fn(model.Individual(s), model.Individual(o)); err != nil {
			return err
		}
	}
	return rows.Err()
}

// DataPropertyEdges streams every assertion of p in assertion order.
func (r *Reasoner) DataPropertyEdges(ctx context.Context, p model.DataProperty, fn func(subject model.Individual, value model.Literal) error) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subject, datatype, lexical, lang FROM data_assertions WHERE property = ? ORDER BY seq`, string(p))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var s, dt, lex, lang string
		if err := rows.Scan(&s, &dt, &lex, &lang); err != nil {
			return err
		}
		lit, err := decodeLiteral(dt, lex, lang)
		if err != nil {
			return err
		}
		if err := fn(model.Individual(s), lit); err != nil {
			return err
		}
	}
	return rows.Err()
}

func queryColumn[T ~string](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, T(s))
	}
	return out, rows.Err()
}

// SavePrefixes stores the prefix table next to the assertions so that a
// reopened database can abbreviate and parse IRIs the way the loaded document
// did.
func (r *Reasoner) SavePrefixes(ctx context.Context, p *model.Prefixes) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range p.Names() {
		ns, _ := p.Namespace(name)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO prefixes(name, namespace) VALUES(?, ?)
			 ON CONFLICT(name) DO UPDATE SET namespace = excluded.namespace`,
			name, ns); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Prefixes returns the stored prefix table on top of the default prefixes.
func (r *Reasoner) Prefixes(ctx context.Context) (*model.Prefixes, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, namespace FROM prefixes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p := model.DefaultPrefixes()
	for rows.Next() {
		var name, ns string
		if err := rows.Scan(&name, &ns); err != nil {
			return nil, err
		}
		p.Set(name, ns)
	}
	return p, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/ontology"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// writer inserts facts through a connection or a transaction. Duplicate
// facts are ignored.
type writer struct {
	db execer
}

var _ ontology.Sink = writer{}

func (w writer) AddIndividual(ctx context.Context, ind model.Individual) error {
	_, err := w.db.ExecContext(ctx, `INSERT OR IGNORE INTO individuals(iri) VALUES (?)`, string(ind))
	return err
}

func (w writer) AddClassAssertion(ctx context.Context, c model.Class, ind model.Individual) error {
	if err := w.AddIndividual(ctx, ind); err != nil {
		return err
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO class_assertions(class, individual) VALUES (?, ?)`,
		string(c), string(ind))
	return err
}

func (w writer) AddSubClassOf(ctx context.Context, sub, super model.Class) error {
	_, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subclass_axioms(sub, super) VALUES (?, ?)`,
		string(sub), string(super))
	return err
}

func (w writer) AddObjectPropertyAssertion(ctx context.Context, p model.ObjectProperty, subject, object model.Individual) error {
	if err := w.AddIndividual(ctx, subject); err != nil {
		return err
	}
	if err := w.AddIndividual(ctx, object); err != nil {
		return err
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO object_assertions(property, subject, object) VALUES (?, ?, ?)`,
		string(p), string(subject), string(object))
	return err
}

func (w writer) AddDataPropertyAssertion(ctx context.Context, p model.DataProperty, subject model.Individual, value model.Literal) error {
	if err := w.AddIndividual(ctx, subject); err != nil {
		return err
	}
	_, err := w.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO data_assertions(property, subject, datatype, lexical, lang) VALUES (?, ?, ?, ?, ?)`,
		string(p), string(subject), string(value.Datatype), value.Lexical(), value.Lang)
	return err
}

// decodeLiteral rebuilds a literal from its stored columns.
func decodeLiteral(datatype, lexical, lang string) (model.Literal, error) {
	if lang != "" {
		return model.LangString(lexical, lang), nil
	}
	lit, err := model.ParseLiteral(lexical, model.Datatype(datatype))
	if err != nil {
		return model.Literal{}, fmt.Errorf("sqlite: stored literal: %w", err)
	}
	return lit, nil
}

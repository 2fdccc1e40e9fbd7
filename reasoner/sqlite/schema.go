package sqlite

import (
	"context"
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS individuals (
	iri TEXT PRIMARY KEY
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS class_assertions (
	class TEXT NOT NULL,
	individual TEXT NOT NULL,
	PRIMARY KEY(class, individual)
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_class_assertions_individual ON class_assertions(individual);

CREATE TABLE IF NOT EXISTS subclass_axioms (
	sub TEXT NOT NULL,
	super TEXT NOT NULL,
	PRIMARY KEY(sub, super)
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_subclass_axioms_super ON subclass_axioms(super);

CREATE TABLE IF NOT EXISTS object_assertions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	property TEXT NOT NULL,
	subject TEXT NOT NULL,
	object TEXT NOT NULL,
	UNIQUE(property, subject, object)
);

CREATE INDEX IF NOT EXISTS idx_object_assertions_object ON object_assertions(property, object);

CREATE TABLE IF NOT EXISTS data_assertions (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	property TEXT NOT NULL,
	subject TEXT NOT NULL,
	datatype TEXT NOT NULL,
	lexical TEXT NOT NULL,
	lang TEXT NOT NULL DEFAULT '',
	UNIQUE(property, subject, datatype, lexical, lang)
);

CREATE TABLE IF NOT EXISTS prefixes (
	name TEXT PRIMARY KEY,
	namespace TEXT NOT NULL
) WITHOUT ROWID;
`

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

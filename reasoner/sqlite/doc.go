// Package sqlite provides a base reasoner backed by a SQLite database.
//
// It answers the same questions as package memory, from tables of asserted
// facts, and closes class instances and types under atomic subclass axioms
// with recursive queries. The database persists between runs, so an ontology
// is imported once and queried many times:
//
//	r, err := sqlite.Open(ctx, "family.db")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	err = r.Batch(ctx, func(sink ontology.Sink) error {
//	    _, _, err := ontology.Load(ctx, rc, sink)
//	    return err
//	})
//
// The pure-Go modernc.org/sqlite driver is used, so no cgo is required.
package sqlite

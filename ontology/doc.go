// Package ontology loads OWL 2 functional-style documents into a base
// reasoner.
//
// Only the ground facts a base reasoner answers are kept: named individuals,
// class assertions on atomic classes, atomic subclass and equivalence axioms,
// and object and data property assertions. Everything else is skipped and
// counted in Stats.
//
//	store := blobstore.NewLocalStore("testdata")
//	rc, err := ontology.Open(ctx, store, "family.ofn.zst")
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
//	r := memory.New()
//	prefixes, stats, err := ontology.Load(ctx, rc, r)
package ontology

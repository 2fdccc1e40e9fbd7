package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/config"
	"github.com/hupe1980/fastic/model"
	"github.com/hupe1980/fastic/ontology"
	"github.com/hupe1980/fastic/reasoner"
	"github.com/hupe1980/fastic/reasoner/memory"
	"github.com/hupe1980/fastic/reasoner/sqlite"
)

// errNoOntology is returned when the memory backend has nothing to load.
var errNoOntology = errors.New("--ontology is required for the memory backend")

var (
	configPath   string
	ontologyName string
)

var rootCmd = &cobra.Command{
	Use:   "fastic",
	Short: "Fast instance retrieval for class expressions",
	Long: `fastic answers instance queries for OWL class expressions on top of a
base reasoner that only knows class and property assertions.

Ontologies are functional-style documents read from a local directory,
MinIO or S3, optionally compressed (.zst, .gz, .lz4).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&ontologyName, "ontology", "o", "", "Ontology document name in the configured source")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// knowledgeBase is an opened base reasoner together with the prefixes its
// IRIs are written with.
type knowledgeBase struct {
	reasoner reasoner.Reasoner
	prefixes *model.Prefixes
	close    func() error
}

// openKnowledgeBase opens the configured backend. The memory backend loads
// the named ontology. The sqlite backend imports it first when a name is
// given and otherwise serves the database as is.
func openKnowledgeBase(ctx context.Context, cfg *config.Config, logger *fastic.Logger, name string) (*knowledgeBase, error) {
	if cfg.Reasoner.Backend == config.BackendSQLite {
		r, err := sqlite.Open(ctx, cfg.Reasoner.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if name != "" {
			if _, err := importOntology(ctx, cfg, logger, r, name); err != nil {
				_ = r.Close()
				return nil, err
			}
		}
		prefixes, err := r.Prefixes(ctx)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		return &knowledgeBase{reasoner: r, prefixes: prefixes, close: r.Close}, nil
	}

	if name == "" {
		return nil, errNoOntology
	}
	store, err := cfg.Source.Open(ctx)
	if err != nil {
		return nil, err
	}
	rc, err := ontology.Open(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("open ontology %q: %w", name, err)
	}
	defer rc.Close()

	r := memory.New()
	prefixes, stats, err := ontology.Load(ctx, rc, r)
	if err != nil {
		return nil, fmt.Errorf("load ontology %q: %w", name, err)
	}
	logLoaded(ctx, logger, name, stats)
	return &knowledgeBase{reasoner: r, prefixes: prefixes, close: func() error { return nil }}, nil
}

// importOntology loads the named ontology into the database inside one
// transaction and stores its prefixes.
func importOntology(ctx context.Context, cfg *config.Config, logger *fastic.Logger, r *sqlite.Reasoner, name string) (ontology.Stats, error) {
	store, err := cfg.Source.Open(ctx)
	if err != nil {
		return ontology.Stats{}, err
	}
	rc, err := ontology.Open(ctx, store, name)
	if err != nil {
		return ontology.Stats{}, fmt.Errorf("open ontology %q: %w", name, err)
	}
	defer rc.Close()

	var (
		prefixes *model.Prefixes
		stats    ontology.Stats
	)
	err = r.Batch(ctx, func(sink ontology.Sink) error {
		var err error
		prefixes, stats, err = ontology.Load(ctx, rc, sink)
		return err
	})
	if err != nil {
		return stats, fmt.Errorf("import ontology %q: %w", name, err)
	}
	if err := r.SavePrefixes(ctx, prefixes); err != nil {
		return stats, err
	}
	logLoaded(ctx, logger, name, stats)
	return stats, nil
}

func logLoaded(ctx context.Context, logger *fastic.Logger, name string, stats ontology.Stats) {
	logger.InfoContext(ctx, "ontology loaded",
		"ontology", name,
		"axioms", stats.Axioms(),
		"individuals", stats.Individuals,
		"skipped", stats.Skipped,
	)
}

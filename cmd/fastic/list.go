package main

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

var listPrefix string

var listCmd = &cobra.Command{
	Use:   "list [PATTERN]",
	Short: "List ontology documents in the configured source",
	Long: `List the documents of the configured source whose names match a glob
pattern. "*" does not cross "/", "**" does.

Examples:
  fastic list
  fastic list '*.ofn.zst'
  fastic list --prefix family/ '**.ofn'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "Only list names starting with prefix")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	pattern := "**"
	if len(args) == 1 {
		pattern = args[0]
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := cfg.Source.Open(ctx)
	if err != nil {
		return err
	}
	names, err := store.List(ctx, listPrefix)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		if g.Match(name) {
			fmt.Fprintln(out, name)
		}
	}
	return nil
}

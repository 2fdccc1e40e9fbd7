package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/fastic"
	"github.com/hupe1980/fastic/codec"
	"github.com/hupe1980/fastic/expr"
	"github.com/hupe1980/fastic/model"
)

var (
	instancesDirect bool
	instancesCount  bool
	instancesJSON   bool
)

var instancesCmd = &cobra.Command{
	Use:   "instances EXPRESSION...",
	Short: "Retrieve the instances of class expressions",
	Long: `Retrieve the instances of one or more class expressions written in
functional-style syntax. IRIs may be abbreviated with the ontology's prefixes.

Examples:
  fastic instances -o family.ofn ':Person'
  fastic instances -o family.ofn --count 'ObjectSomeValuesFrom(:hasChild :Person)'
  fastic instances -c fastic.yaml 'ObjectComplementOf(:Parent)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstances,
}

func init() {
	rootCmd.AddCommand(instancesCmd)

	instancesCmd.Flags().BoolVar(&instancesDirect, "direct", false, "Request direct instances")
	instancesCmd.Flags().BoolVar(&instancesCount, "count", false, "Print only the number of instances")
	instancesCmd.Flags().BoolVar(&instancesJSON, "json", false, "Output as JSON")
}

// instancesResult is the JSON output for one expression.
type instancesResult struct {
	Expression string   `json:"expression"`
	Count      int      `json:"count"`
	Instances  []string `json:"instances,omitempty"`
}

func runInstances(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cfg.Logger()

	kb, err := openKnowledgeBase(ctx, cfg, logger, ontologyName)
	if err != nil {
		return err
	}
	defer kb.close()

	c, err := fastic.New(ctx, kb.reasoner, cfg.Options()...)
	if err != nil {
		return err
	}

	results := make([]instancesResult, 0, len(args))
	for _, arg := range args {
		res, err := evaluate(cmd, c, kb.prefixes, arg)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if instancesJSON {
		return writeEncoded(cmd.OutOrStdout(), cfg.OutputCodec(), results)
	}
	return writeResults(cmd.OutOrStdout(), results)
}

func evaluate(cmd *cobra.Command, c *fastic.Checker, prefixes *model.Prefixes, text string) (instancesResult, error) {
	ctx := cmd.Context()

	ce, err := expr.Parse(text, prefixes)
	if err != nil {
		return instancesResult{}, err
	}
	res := instancesResult{Expression: expr.Format(ce, prefixes)}

	if instancesCount && !instancesDirect {
		res.Count, err = c.Count(ctx, ce)
		return res, err
	}

	seq, err := c.Instances(ctx, ce, instancesDirect)
	if err != nil {
		return res, err
	}
	for ind := range seq {
		res.Instances = append(res.Instances, prefixes.Abbreviate(string(ind)))
	}
	res.Count = len(res.Instances)
	if instancesCount {
		res.Instances = nil
	}
	return res, nil
}

func writeResults(w io.Writer, results []instancesResult) error {
	for _, res := range results {
		if instancesCount {
			if _, err := fmt.Fprintf(w, "%s\t%d\n", res.Expression, res.Count); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s (%d)\n", res.Expression, res.Count); err != nil {
			return err
		}
		for _, ind := range res.Instances {
			if _, err := fmt.Fprintf(w, "  %s\n", ind); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeEncoded(w io.Writer, c codec.Codec, v any) error {
	data, err := c.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tensorcanon/pkg/pipeline"
)

// canonOpts holds the command-line flags for the canon command.
type canonOpts struct {
	output        string // output file for canonical terms as JSON (stdout display if empty)
	maxCandidates int    // candidate budget for the canonicalization search
	refresh       bool   // bypass the result cache
	noCache       bool   // disable caching entirely
}

// newCanonCmd creates the canon command for reducing term files to normal form.
// It parses a TOML term file, canonicalizes every term, and prints the
// canonical sums, factors, and coefficient of each.
//
// Default options:
//   - maxCandidates: search budget shared with the pipeline default
//   - caching enabled, keyed by file content hash
func newCanonCmd() *cobra.Command {
	opts := canonOpts{maxCandidates: pipeline.DefaultMaxCandidates}

	cmd := &cobra.Command{
		Use:   "canon <file>",
		Short: "Canonicalize the terms in a term file",
		Long: `Canonicalize the terms in a TOML term file.

Every term is reduced to a unique normal form: summation indices are renamed
canonically, factors are reordered, and declared slot symmetries are applied,
folding any resulting sign flip into the coefficient.

Examples:
  tensorcanon canon terms.toml                  # Print canonical terms
  tensorcanon canon terms.toml -o canonical.json # Also write them as JSON
  tensorcanon canon terms.toml --refresh         # Recompute, ignoring the cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanon(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write canonical terms as JSON to file")
	cmd.Flags().IntVar(&opts.maxCandidates, "max-candidates", opts.maxCandidates, "candidate budget for the canonical form search")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runCanon executes the canonicalization pipeline on input and displays the result.
// If opts.output is set, the canonical terms are additionally written as JSON.
func runCanon(ctx context.Context, input string, opts *canonOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Canonicalizing %s", input)

	runner := newRunner(logger, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:          input,
		MaxCandidates: opts.maxCandidates,
		Refresh:       opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Canonicalized %d terms", result.Stats.TermCount))

	printTerms(result.Terms)
	printStats(len(result.Terms), result.CacheInfo.CanonHit)

	if opts.output != "" {
		if err := writeTermsJSON(result.Terms, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	}

	printNewline()
	printNextStep("Render the expression graph", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

// printTerms displays each canonical term with its sums, factors, and coefficient.
func printTerms(terms []pipeline.TermSummary) {
	for i, term := range terms {
		printInfo("term %d", i)
		for _, s := range term.Sums {
			printDetail("sum %s over %s", s.Dummy, s.Range)
		}
		for _, f := range term.Factors {
			printDetail("%s", f)
		}
		printDetail("coeff %d", term.Coeff)
	}
}

// writeTermsJSON serializes terms as JSON to path.
func writeTermsJSON(terms []pipeline.TermSummary, path string) error {
	data, err := pipeline.MarshalTerms(terms)
	if err != nil {
		return err
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

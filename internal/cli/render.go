package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tensorcanon/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output        string   // output file (single format) or base path (multiple)
	formats       []string // output formats: "svg", "pdf", "png", "dot", "json"
	term          int      // which term's expression graph to render
	detailed      bool     // show colour keys and symmetry info in node labels
	maxCandidates int      // candidate budget for the canonicalization search
	refresh       bool     // bypass the artifact cache
	noCache       bool     // disable caching entirely
}

// newRenderCmd creates the render command for visualizing a term's expression graph.
// The term file is canonicalized first so the rendered graph reflects the input
// exactly as the canonicalizer sees it.
//
// Default settings:
//   - term: 0 (first term in the file)
//   - format: svg
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{maxCandidates: pipeline.DefaultMaxCandidates}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a term's expression graph",
		Long: `Render the expression graph of one term from a TOML term file.

The graph shows summation nodes, index expressions, and tensor factors with
slot-labeled edges, in the form the canonicalizer operates on.

Examples:
  tensorcanon render terms.toml                         # First term as SVG
  tensorcanon render terms.toml --term 2 -f png,pdf     # Third term, two formats
  tensorcanon render terms.toml -f dot --detailed       # Raw DOT with colour keys`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().IntVar(&opts.term, "term", 0, "index of the term to render")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show colour keys and symmetry generators in node labels")
	cmd.Flags().IntVar(&opts.maxCandidates, "max-candidates", opts.maxCandidates, "candidate budget for the canonical form search")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender canonicalizes input and writes the requested artifacts to disk.
// With a single format the output path is opts.output (or derived from input);
// with multiple formats each artifact is written as base.format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner := newRunner(logger, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:          input,
		MaxCandidates: opts.maxCandidates,
		Refresh:       opts.refresh,
		Term:          opts.term,
		Formats:       opts.formats,
		Detailed:      opts.detailed,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered term %d in %d format(s)", opts.term, len(result.Artifacts)))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return fmt.Errorf("missing artifact for format %s", format)
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeArtifact(data, path); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		printFile(path)
	}

	printStats(len(result.Terms), result.CacheInfo.RenderHit)
	return nil
}

// writeArtifact writes data to path, overwriting any existing file.
func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/pipeline"
)

// graphCommand creates the graph command for drawing constraint graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "graph [stackfile]",
		Short: "Render the constraint graph as DOT or SVG",
		Long: `Render the constraint graph of a stackfile.

Each arrow points from a layer down to a layer it must cover. Solved layers
are labelled with their z-index and static layers are drawn with a double
border. Graphs that cannot be solved are still drawn; layers caught in a
cycle are highlighted in red.

SVG drawings are cached under $XDG_CACHE_HOME/stratum (~/.cache/stratum).`,
		Example: `  stratum graph stack.toml | dot -Tpng > stack.png
  stratum graph stack.toml -f svg -o stack.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = graphFormat(output)
			}
			if !slices.Contains(pipeline.GraphFormats, format) {
				return perrors.New(perrors.ErrCodeInvalidFormat, "unsupported graph format %q (want dot or svg)", format)
			}
			return c.runGraph(cmd.Context(), args[0], format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot (default), svg")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the SVG render cache")

	return cmd
}

// graphFormat infers the graph format from the output path.
func graphFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), "."+pipeline.FormatSVG) {
		return pipeline.FormatSVG
	}
	return pipeline.FormatDOT
}

func (c *CLI) runGraph(ctx context.Context, path, format, output string, noCache bool) error {
	logger := loggerFromContext(ctx)
	runner := c.newCachedRunner(noCache)

	res, solveErr := runner.SolveFile(ctx, path)
	if res == nil {
		return solveErr
	}
	if solveErr != nil {
		logger.Warn("graph is not solvable, rendering constraints only", "code", perrors.GetCode(solveErr))
	}

	spinner := newSpinner(ctx, os.Stderr, format == pipeline.FormatSVG && isTerminal(os.Stderr), "Rendering "+format+"...")
	spinner.Start()
	prog := newProgress(logger)
	data, err := runner.Render(ctx, res, solveErr, format)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()
	prog.done("Rendered", "format", format, "bytes", len(data))

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Rendered constraint graph")
	printFile(output)
	return nil
}

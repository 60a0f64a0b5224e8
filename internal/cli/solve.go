package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/output"
	"github.com/matzehuels/stratum/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output string // output file; empty writes to stdout
	format string // table, text, json, toml, yaml, css or scss
	prefix string // variable prefix for css and scss
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [stackfile]",
		Short: "Compute z-index values for every layer",
		Long: `Compute z-index values for every layer in a stackfile.

Dynamic layers receive the smallest index (at least 1) that keeps them above
everything they must cover. Static layers keep their declared index; a
static layer that cannot satisfy its constraints is reported as a conflict.

Output formats: table (terminal default), text, json, toml, yaml, css, scss.
When --output is given the format is inferred from its extension.`,
		Example: `  stratum solve stack.toml
  stratum solve stack.yaml -f css --prefix layer-
  stratum solve stack.toml -o src/styles/z-index.scss`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = outputFormat(opts.format, opts.output, isTerminal(os.Stdout))
			if opts.format != formatTable {
				if err := perrors.ValidateFormat(opts.format, output.Formats); err != nil {
					return err
				}
			}
			return c.runSolve(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: table, text, json, toml, yaml, css, scss")
	cmd.Flags().StringVar(&opts.prefix, "prefix", output.DefaultPrefix, "variable name prefix for css and scss output")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, path string, opts solveOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	res, err := c.newRunner().SolveFile(ctx, path)
	if err != nil {
		reportSolveError(err)
		return err
	}
	prog.done("Solved", "layers", res.Stats.LayerCount, "max", res.Solution.Max())

	return emitSolution(res, opts)
}

// emitSolution writes a solved result to stdout or opts.output in
// opts.format.
func emitSolution(res *pipeline.Result, opts solveOpts) error {
	if opts.format == formatTable {
		fmt.Fprintln(stdout, solutionTable(res.Solution, staticSet(res)))
		printStats(res.Stats.LayerCount, res.Stats.StaticCount, res.Stats.ConstraintCount)
		return nil
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, res.Solution, opts.format, output.Options{Prefix: opts.prefix}); err != nil {
		return err
	}
	if opts.output == "" {
		_, err := io.Copy(stdout, &buf)
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Solved %d layers", res.Stats.LayerCount)
	printFile(opts.output)
	return nil
}

// reportSolveError prints extra context for solver failures. The error
// itself is printed by main.
func reportSolveError(err error) {
	if unresolved := pipeline.Unresolved(err); len(unresolved) > 0 {
		printError("Layers caught in a cycle")
		printDetail("%s", strings.Join(unresolved, ", "))
		return
	}
	if perrors.Is(err, perrors.ErrCodeStaticConflict) {
		printError("Static layers cannot satisfy their constraints")
		printDetail("%s", perrors.UserMessage(err))
	}
}

func staticSet(res *pipeline.Result) map[string]bool {
	static := make(map[string]bool)
	for _, info := range res.Graph.Layers() {
		if info.Static {
			static[info.Name] = true
		}
	}
	return static
}

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/output"
	"github.com/matzehuels/stratum/pkg/stackfile"
)

// watchCommand creates the watch command for continuous solving.
func (c *CLI) watchCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "watch [stackfile]",
		Short: "Re-solve a stackfile whenever it changes",
		Long: `Solve a stackfile, then solve it again every time it is saved.

Typical use is keeping a generated stylesheet in sync while editing:

  stratum watch stack.toml -o src/styles/z-index.css

A save that fails to parse or solve is reported and the previous output is
left untouched. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = outputFormat(opts.format, opts.output, isTerminal(os.Stdout))
			if opts.format != formatTable {
				if err := perrors.ValidateFormat(opts.format, output.Formats); err != nil {
					return err
				}
			}
			return c.runWatch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: table, text, json, toml, yaml, css, scss")
	cmd.Flags().StringVar(&opts.prefix, "prefix", output.DefaultPrefix, "variable name prefix for css and scss output")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, path string, opts solveOpts) error {
	logger := loggerFromContext(ctx)
	runner := c.newRunner()

	w, err := stackfile.NewWatcher(path, logger)
	if err != nil {
		return err
	}

	solve := func(def *stackfile.Definition) {
		res, err := runner.Reload(ctx, path, def)
		if err != nil {
			printWarning("%s: %s", path, perrors.UserMessage(err))
			reportSolveError(err)
			return
		}
		if err := emitSolution(res, opts); err != nil {
			logger.Error("write solution", "err", err)
		}
	}

	solve(w.Current())
	w.OnChange(solve)

	stop, err := w.Watch()
	if err != nil {
		return err
	}
	defer stop()

	printInfo("Watching %s", path)
	<-ctx.Done()
	return nil
}

package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/stratum/pkg/errors"
	"github.com/matzehuels/stratum/pkg/stackfile"
)

// convertCommand creates the convert command for re-encoding stackfiles.
func (c *CLI) convertCommand() *cobra.Command {
	var output, to string

	cmd := &cobra.Command{
		Use:   "convert [stackfile]",
		Short: "Convert a stackfile between TOML, YAML and JSON",
		Long: `Convert a stackfile between TOML, YAML and JSON.

The stackfile is validated first. Every constraint is written as an "above"
list on the upper layer, so "below" declarations are normalized away.`,
		Example: `  stratum convert stack.yaml --to toml
  stratum convert stack.toml -o stack.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" && output != "" {
				f, err := stackfile.DetectFormat(output)
				if err != nil {
					return err
				}
				to = f
			}
			if to == "" {
				return perrors.New(perrors.ErrCodeInvalidFormat, "target format required: pass --to or an --output with a known extension")
			}
			if err := perrors.ValidateFormat(to, stackfile.Formats); err != nil {
				return err
			}
			return runConvert(cmd.Context(), args[0], to, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "target format: toml, yaml, json")

	return cmd
}

func runConvert(ctx context.Context, path, to, output string) error {
	logger := loggerFromContext(ctx)

	def, err := stackfile.Load(path)
	if err != nil {
		return err
	}
	g, err := def.Build()
	if err != nil {
		return err
	}
	logger.Debug("loaded stackfile", "path", path, "layers", g.Len(), "constraints", g.ConstraintCount())

	var buf bytes.Buffer
	if err := stackfile.Write(&buf, stackfile.FromGraph(g), to); err != nil {
		return err
	}
	if output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Converted %s to %s", path, to)
	printFile(output)
	printNextStep("Solve it", "stratum solve "+output)
	return nil
}

package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// viewCommand creates the view command for browsing a solved stack.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [stackfile]",
		Short: "Browse a solved stack interactively",
		Long: `Solve a stackfile and browse the result in the terminal.

Layers are listed from the top of the stack down. The selected layer's
direct constraints are shown below the list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runView(ctx context.Context, path string) error {
	res, err := c.newRunner().SolveFile(ctx, path)
	if err != nil {
		reportSolveError(err)
		return err
	}

	p := tea.NewProgram(NewStackModel(res.Graph, res.Solution), tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

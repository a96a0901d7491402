package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
	"github.com/tfournier/girder/internal/contract"
)

func newProductivityCmd(app *App) *cobra.Command {
	var grain string

	cmd := &cobra.Command{
		Use:   "productivity",
		Short: "Show quantity-based productivity by task, phase, or project",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			var title string
			var items []contract.ProductivityItem
			switch grain {
			case "task":
				title, items = "Task Productivity", result.TaskProductivity
			case "phase":
				title, items = "Phase Productivity", result.PhaseProductivity
			case "project":
				title, items = "Project Productivity", result.ProjectProductivity
			default:
				return fmt.Errorf("unknown grain %q (want task, phase, or project)", grain)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProductivity(title, items))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&grain, "grain", "task", "Aggregation grain: task, phase, or project")

	return cmd
}

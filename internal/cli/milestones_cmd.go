package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
)

func newMilestonesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Show milestone progress and status counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMilestones(result.Milestones, result.MilestoneStatus))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

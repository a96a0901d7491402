package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
)

func newHealthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show schedule findings and dependency coverage",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleHealth(result.ScheduleHealth))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
)

func newHoursCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Show how unlinked hour entries were matched to tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMatchReport(result.MatchReport, verbose))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every match decision")

	return cmd
}

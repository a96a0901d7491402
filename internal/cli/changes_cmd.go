package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
)

func newChangesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changes",
		Short: "Summarize approved change orders by project and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChangeControl(result.ChangeControlSummary))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

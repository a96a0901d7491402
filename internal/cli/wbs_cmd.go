package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
	"github.com/tfournier/girder/internal/contract"
)

func newWBSCmd(app *App) *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Render the rolled-up work breakdown tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			items := result.WBSData.Items
			if maxDepth > 0 {
				items = pruneDepth(items, maxDepth)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWBS(items))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "depth", 0, "Limit tree depth (0 = unlimited)")

	return cmd
}

func pruneDepth(items []contract.WBSItem, depth int) []contract.WBSItem {
	out := make([]contract.WBSItem, len(items))
	for i, item := range items {
		if depth <= 1 {
			item.Children = nil
		} else {
			item.Children = pruneDepth(item.Children, depth-1)
		}
		out[i] = item
	}
	return out
}

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the work breakdown tree interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("browse needs an interactive terminal; use `girder wbs` instead")
			}

			result, err := app.Analysis.Derive(context.Background(), app.Input)
			if err != nil {
				return err
			}

			model := newBrowseModel(result.WBSData.Items, result.AsOf)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	return cmd
}

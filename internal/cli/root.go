package cli

import (
	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Analysis  service.AnalysisService
	Snapshots service.SnapshotService

	// Input is the dataset path resolved from the --input flag or the
	// GIRDER_INPUT environment variable.
	Input string

	// IsInteractive reports whether stdin is a terminal; interactive
	// pickers are skipped when it is unset or returns false.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "girder" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "girder",
		Short: "Project-controls derivation from a flat data snapshot",
		Long: "Girder ingests a denormalized project-controls export and derives\n" +
			"earned value, a rolled-up work breakdown, productivity, and forecast views.",
	}

	root.PersistentFlags().StringVarP(&app.Input, "input", "i", app.Input, "Path to the dataset JSON snapshot")

	root.AddCommand(
		newDeriveCmd(app),
		newStatusCmd(app),
		newWBSCmd(app),
		newHoursCmd(app),
		newChangesCmd(app),
		newProductivityCmd(app),
		newHealthCmd(app),
		newMilestonesCmd(app),
		newSnapshotCmd(app),
		newBrowseCmd(app),
	)

	return root
}

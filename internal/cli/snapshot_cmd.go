package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tfournier/girder/internal/cli/formatter"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

func newSnapshotCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Take and inspect stored point-in-time snapshots",
	}

	cmd.AddCommand(
		newSnapshotTakeCmd(app),
		newSnapshotListCmd(app),
		newSnapshotShowCmd(app),
		newSnapshotTrendCmd(app),
	)

	return cmd
}

func newSnapshotTakeCmd(app *App) *cobra.Command {
	var scopeFlag, scopeID, viewFlag, label string

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Derive the current dataset and store a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No scope on the command line: offer the hierarchy as a picker
			// when running in a terminal.
			if scopeFlag == "" && app.IsInteractive != nil && app.IsInteractive() {
				picked := "all"
				view := string(domain.ViewAll)
				form, err := snapshotScopeForm(ctx, app, &picked, &view, &label)
				if err != nil {
					return err
				}
				if err := form.Run(); err != nil {
					return err
				}
				viewFlag = view
				if picked == "all" {
					scopeFlag = "all"
				} else if kind, id, ok := strings.Cut(picked, ":"); ok {
					scopeFlag, scopeID = kind, id
				}
			}
			if scopeFlag == "" {
				scopeFlag = "all"
			}
			if viewFlag == "" {
				viewFlag = "all"
			}

			scope, ok := domain.ParseSnapshotScope(scopeFlag)
			if !ok {
				return fmt.Errorf("unknown scope %q", scopeFlag)
			}
			if scope != domain.ScopeAll && scopeID == "" {
				return fmt.Errorf("scope %q requires --scope-id", scope)
			}
			view, ok := domain.ParseSnapshotView(viewFlag)
			if !ok {
				return fmt.Errorf("unknown view %q", viewFlag)
			}

			snap, err := app.Snapshots.Take(ctx, app.Input, scope, scopeID, view, label)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored snapshot %s (%s, %s)\n",
				formatter.Bold(snap.ID), snap.Scope, snap.SnapshotDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "", "Scope level: all, portfolio, customer, site, or project")
	cmd.Flags().StringVar(&scopeID, "scope-id", "", "ID of the scope node (not needed for all)")
	cmd.Flags().StringVar(&viewFlag, "view", "all", "Chart view to populate")
	cmd.Flags().StringVar(&label, "label", "", "Free-form label, e.g. month-end")

	return cmd
}

func newSnapshotListCmd(app *App) *cobra.Command {
	var scopeFlag, scopeID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := domain.SnapshotScope("")
			if scopeFlag != "" {
				parsed, ok := domain.ParseSnapshotScope(scopeFlag)
				if !ok {
					return fmt.Errorf("unknown scope %q", scopeFlag)
				}
				scope = parsed
			}

			snaps, err := app.Snapshots.List(context.Background(), scope, scopeID)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotList(snaps))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "", "Filter by scope level")
	cmd.Flags().StringVar(&scopeID, "scope-id", "", "Filter by scope node ID")

	return cmd
}

func newSnapshotShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := app.Snapshots.Get(context.Background(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "{\"metrics\":%s,\"charts\":%s}\n",
					snap.MetricsJSON, snap.ChartsJSON)
				return nil
			}

			var metrics contract.EVMSummary
			if err := json.Unmarshal([]byte(snap.MetricsJSON), &metrics); err != nil {
				return fmt.Errorf("snapshot %s has unreadable metrics: %w", snap.ID, err)
			}
			charts := contract.NewSnapshotCharts()
			if err := json.Unmarshal([]byte(snap.ChartsJSON), &charts); err != nil {
				return fmt.Errorf("snapshot %s has unreadable charts: %w", snap.ID, err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSnapshotDetail(snap, metrics, charts))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw stored JSON")

	return cmd
}

func newSnapshotTrendCmd(app *App) *cobra.Command {
	var scopeFlag, scopeID string

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Plot headline metrics across a scope's snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, ok := domain.ParseSnapshotScope(scopeFlag)
			if !ok {
				return fmt.Errorf("unknown scope %q", scopeFlag)
			}

			points, err := app.Snapshots.Trend(context.Background(), scope, scopeID)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrend(points))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeFlag, "scope", "all", "Scope level to trend")
	cmd.Flags().StringVar(&scopeID, "scope-id", "", "Scope node ID (not needed for all)")

	return cmd
}

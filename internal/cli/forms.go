package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tfournier/girder/internal/cli/formatter"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

func girderHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// snapshotScopeForm builds a form that picks a scope node from the dataset
// hierarchy, plus the view and an optional label. The scope select stores
// "kind:id"; the caller splits it after Run.
func snapshotScopeForm(ctx context.Context, app *App, scopeID, view, label *string) (*huh.Form, error) {
	result, err := app.Analysis.Derive(ctx, app.Input)
	if err != nil {
		return nil, err
	}

	scopeOpts := []huh.Option[string]{huh.NewOption("Everything", "all")}
	for _, opt := range hierarchyOptions(result.Hierarchy, 0) {
		scopeOpts = append(scopeOpts, opt)
	}

	viewOpts := make([]huh.Option[string], 0, len(domain.AllSnapshotViews))
	for _, v := range domain.AllSnapshotViews {
		viewOpts = append(viewOpts, huh.NewOption(string(v), string(v)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Scope").
				Options(scopeOpts...).
				Value(scopeID),
			huh.NewSelect[string]().
				Title("View").
				Options(viewOpts...).
				Value(view),
			huh.NewInput().
				Title("Label (optional)").
				Placeholder("month-end").
				Value(label),
		),
	).WithTheme(girderHuhTheme()).WithShowHelp(false)

	return form, nil
}

func hierarchyOptions(items []contract.HierarchyItem, depth int) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, it := range items {
		if _, ok := domain.ParseSnapshotScope(it.Kind); ok {
			indent := ""
			for i := 0; i < depth; i++ {
				indent += "  "
			}
			opts = append(opts, huh.NewOption(
				fmt.Sprintf("%s%s (%s)", indent, it.Name, it.Kind),
				it.Kind+":"+it.ID,
			))
		}
		opts = append(opts, hierarchyOptions(it.Children, depth+1)...)
	}
	return opts
}

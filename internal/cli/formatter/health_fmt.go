package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatScheduleHealth renders schedule findings grouped into a table plus
// the dependency-coverage summary line.
func FormatScheduleHealth(health contract.ScheduleHealth) string {
	var b strings.Builder

	if len(health.Findings) == 0 {
		b.WriteString(StyleGreen.Render("No schedule findings.") + "\n")
	} else {
		headers := []string{"TASK", "CATEGORY", "DETAIL"}
		rows := make([][]string, 0, len(health.Findings))
		for _, f := range health.Findings {
			rows = append(rows, []string{
				Bold(f.TaskName),
				categoryBadge(f.Category),
				StyleFg.Render(f.Detail),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	cov := health.DependencyCoverage
	b.WriteString("\n")
	line := fmt.Sprintf("Dependency coverage: %.0f%% (%d of %d leaf tasks linked, %d isolated)",
		cov.CoveragePercent, cov.LinkedTasks, cov.LeafTasks, cov.IsolatedTasks)
	if cov.CoveragePercent >= 80 {
		b.WriteString(StyleGreen.Render(line) + "\n")
	} else if cov.CoveragePercent >= 50 {
		b.WriteString(StyleYellow.Render(line) + "\n")
	} else {
		b.WriteString(StyleRed.Render(line) + "\n")
	}

	return RenderBox("Schedule Health", b.String())
}

func categoryBadge(category string) string {
	switch category {
	case "constraint":
		return StyleRed.Render("CONSTRAINT")
	case "weekend":
		return StyleYellow.Render("WEEKEND")
	case "negativeSlack":
		return StyleRed.Render("NEG SLACK")
	case "isolated":
		return StyleBlue.Render("ISOLATED")
	default:
		return StyleDim.Render(strings.ToUpper(category))
	}
}

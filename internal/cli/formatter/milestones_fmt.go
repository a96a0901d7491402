package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatMilestones renders the milestone table plus status counts.
func FormatMilestones(items []contract.MilestoneItem, status contract.MilestoneStatus) string {
	var b strings.Builder

	if len(items) == 0 {
		b.WriteString(Dim("No milestones in dataset.") + "\n")
		return RenderBox("Milestones", b.String())
	}

	headers := []string{"MILESTONE", "STATUS", "DUE", "PROGRESS"}
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			Bold(m.Name),
			milestoneStatusPill(m.Status),
			DateOrDash(m.DueDate),
			FormatPercentPtr(m.PercentComplete),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if status.Total > 0 {
		keys := make([]string, 0, len(status.Counts))
		for k := range status.Counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%d %s", status.Counts[k], k))
		}
		b.WriteString("\n" + Dim(strings.Join(parts, ", ")) + "\n")
	}

	return RenderBox("Milestones", b.String())
}

func milestoneStatusPill(status string) string {
	switch strings.ToLower(status) {
	case "completed", "complete", "done":
		return StyleGreen.Render("✔ " + status)
	case "in progress", "ready for review":
		return StyleYellow.Render("▶ " + status)
	case "at risk", "delayed", "blocked", "missed":
		return StyleRed.Render("▲ " + status)
	case "":
		return Dim("--")
	default:
		return StyleDim.Render("○ " + status)
	}
}

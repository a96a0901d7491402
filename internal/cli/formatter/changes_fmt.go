package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatChangeControl renders the approved change-order rollup by project and
// by approval month.
func FormatChangeControl(summary contract.ChangeControlSummary) string {
	var b strings.Builder

	if summary.TotalRequests == 0 {
		b.WriteString(Dim("No change requests in dataset.") + "\n")
		return RenderBox("Change Control", b.String())
	}

	b.WriteString(fmt.Sprintf("%s approved of %s total, worth %s and %s\n\n",
		Bold(fmt.Sprintf("%d", summary.ApprovedRequests)),
		fmt.Sprintf("%d", summary.TotalRequests),
		signedHours(summary.TotalDeltaHours),
		signedCost(summary.TotalDeltaCost),
	))

	if len(summary.ByProject) > 0 {
		b.WriteString(Header("By Project") + "\n")
		b.WriteString(changeGroupTable(summary.ByProject, "PROJECT"))
		b.WriteString("\n")
	}

	if len(summary.ByMonth) > 0 {
		b.WriteString(Header("By Month") + "\n")
		b.WriteString(changeGroupTable(summary.ByMonth, "MONTH"))
	}

	return RenderBox("Change Control", b.String())
}

func changeGroupTable(groups []contract.ChangeControlGroup, keyHeader string) string {
	headers := []string{keyHeader, "REQUESTS", "ΔHOURS", "ΔCOST"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		name := g.Name
		if name == "" {
			name = g.Key
		}
		rows = append(rows, []string{
			Bold(name),
			fmt.Sprintf("%d", g.Requests),
			signedHours(g.DeltaHours),
			signedCost(g.DeltaCost),
		})
	}
	return RenderTableAligned(headers, rows, []bool{false, true, true, true})
}

// signedHours renders an hour delta with favorability coloring inverted:
// added scope shows yellow, removed scope green.
func signedHours(v float64) string {
	switch {
	case v > 0:
		return StyleYellow.Render("+" + FormatHours(v))
	case v < 0:
		return StyleGreen.Render("-" + FormatHours(-v))
	default:
		return Dim(FormatHours(0))
	}
}

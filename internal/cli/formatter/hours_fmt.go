package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatMatchReport renders the hour-entry matching summary, and the
// per-entry decision log when verbose is set.
func FormatMatchReport(report contract.MatchReport, verbose bool) string {
	var b strings.Builder

	if report.Total == 0 {
		b.WriteString(Dim("All hour entries carried task links; nothing to resolve.") + "\n")
		return RenderBox("Hour Matching", b.String())
	}

	headers := []string{"METHOD", "ENTRIES", "SHARE"}
	rows := [][]string{
		{StyleGreen.Render("Exact"), fmt.Sprintf("%d", report.Exact), sharePct(report.Exact, report.Total)},
		{StyleYellow.Render("Relaxed"), fmt.Sprintf("%d", report.Relaxed), sharePct(report.Relaxed, report.Total)},
		{StyleBlue.Render("Containment"), fmt.Sprintf("%d", report.Contained), sharePct(report.Contained, report.Total)},
		{StyleRed.Render("Unmatched"), fmt.Sprintf("%d", report.Unmatched), sharePct(report.Unmatched, report.Total)},
	}
	b.WriteString(RenderTableAligned(headers, rows, []bool{false, true, true}))

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d entries resolved by label", report.Total)) + "\n")

	if verbose && len(report.Decisions) > 0 {
		b.WriteString("\n" + Header("Decisions") + "\n")
		dheaders := []string{"ENTRY", "TASK", "METHOD", "CANDIDATES"}
		drows := make([][]string, 0, len(report.Decisions))
		for _, d := range report.Decisions {
			task := TruncID(d.TaskID)
			if d.TaskID == "" {
				task = Dim("--")
			}
			drows = append(drows, []string{
				TruncID(d.EntryID),
				task,
				methodLabel(d.Method),
				fmt.Sprintf("%d", d.Candidates),
			})
		}
		b.WriteString(RenderTableAligned(dheaders, drows, []bool{false, false, false, true}))
	}

	return RenderBox("Hour Matching", b.String())
}

func sharePct(part, total int) string {
	if total == 0 {
		return Dim("--")
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(total)*100)
}

func methodLabel(method string) string {
	switch method {
	case "exact":
		return StyleGreen.Render(method)
	case "relaxed":
		return StyleYellow.Render(method)
	case "containment":
		return StyleBlue.Render(method)
	default:
		return StyleRed.Render("none")
	}
}

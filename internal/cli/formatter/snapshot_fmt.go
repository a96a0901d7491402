package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

// FormatSnapshotList renders stored snapshots newest-last, as the repository
// returns them.
func FormatSnapshotList(snaps []*domain.Snapshot) string {
	var b strings.Builder

	if len(snaps) == 0 {
		b.WriteString(Dim("No snapshots stored.") + "\n")
		return RenderBox("Snapshots", b.String())
	}

	headers := []string{"ID", "SCOPE", "DATE", "LABEL"}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		scope := string(s.Scope)
		if s.ScopeID != "" {
			scope += " " + TruncID(s.ScopeID)
		}
		label := s.Label
		if label == "" {
			label = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			StylePurple.Render(scope),
			s.SnapshotDate.Format("2006-01-02"),
			label,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Snapshots", b.String())
}

// FormatSnapshotDetail renders one stored snapshot's headline metrics and
// budget section.
func FormatSnapshotDetail(snap *domain.Snapshot, metrics contract.EVMSummary, charts contract.SnapshotCharts) string {
	var b strings.Builder

	b.WriteString(Dim("Scope ") + StylePurple.Render(string(snap.Scope)))
	if snap.ScopeID != "" {
		b.WriteString(" " + TruncID(snap.ScopeID))
	}
	b.WriteString(Dim("  taken ") + snap.SnapshotDate.Format("2006-01-02"))
	if snap.Label != "" {
		b.WriteString("  " + StyleBlue.Render("["+snap.Label+"]"))
	}
	b.WriteString("\n\n")

	headers := []string{"", "CPI", "SPI", "EAC", "COMPLETE"}
	rows := [][]string{{
		Bold("Metrics"),
		FormatIndex(metrics.CPI),
		FormatIndex(metrics.SPI),
		FormatCost(metrics.EAC),
		fmt.Sprintf("%.1f%%", metrics.PercentComplete),
	}}
	b.WriteString(RenderTableAligned(headers, rows, []bool{false, true, true, true, true}))

	budget := charts.Budget
	if budget.BaselineCost > 0 || budget.ActualCost > 0 {
		b.WriteString("\n" + Header("Budget") + "\n")
		b.WriteString(fmt.Sprintf("%s of %s spent (%.1f%%), %s remaining\n",
			FormatCost(budget.ActualCost),
			FormatCost(budget.BaselineCost),
			budget.PercentSpent,
			FormatCost(budget.RemainingCost),
		))
	}

	if n := len(charts.SCurve.Points); n > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d S-curve points captured", n)) + "\n")
	}

	return RenderBox("Snapshot", b.String())
}

// FormatTrend renders the metric series across a scope's stored snapshots.
func FormatTrend(points []contract.TrendPoint) string {
	var b strings.Builder

	if len(points) == 0 {
		b.WriteString(Dim("No snapshots to trend. Take at least two with `girder snapshot take`.") + "\n")
		return RenderBox("Trend", b.String())
	}

	headers := []string{"DATE", "LABEL", "CPI", "SPI", "COMPLETE", "EAC"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		label := p.Label
		if label == "" {
			label = Dim("--")
		}
		rows = append(rows, []string{
			p.SnapshotDate,
			label,
			FormatIndex(p.CPI),
			FormatIndex(p.SPI),
			fmt.Sprintf("%.1f%%", p.PercentComplete),
			FormatCost(p.EAC),
		})
	}
	b.WriteString(RenderTableAligned(headers, rows, []bool{false, false, true, true, true, true}))

	if len(points) >= 2 {
		first, last := points[0], points[len(points)-1]
		delta := last.CPI - first.CPI
		switch {
		case delta > 0.005:
			b.WriteString("\n" + StyleGreen.Render(fmt.Sprintf("Cost performance improving (%+.2f since %s)", delta, first.SnapshotDate)) + "\n")
		case delta < -0.005:
			b.WriteString("\n" + StyleRed.Render(fmt.Sprintf("Cost performance declining (%+.2f since %s)", delta, first.SnapshotDate)) + "\n")
		default:
			b.WriteString("\n" + Dim("Cost performance holding steady.") + "\n")
		}
	}

	return RenderBox("Trend", b.String())
}

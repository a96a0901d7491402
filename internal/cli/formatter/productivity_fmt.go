package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

// FormatProductivity renders quantity-based productivity rows for one grain
// (task, phase, or project).
func FormatProductivity(title string, items []contract.ProductivityItem) string {
	var b strings.Builder

	if len(items) == 0 {
		b.WriteString(Dim("No quantity tracking on this grain.") + "\n")
		return RenderBox(title, b.String())
	}

	headers := []string{"NAME", "DONE / BASELINE", "HOURS", "UNITS/H", "PERFORMANCE"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			Bold(it.Name),
			fmt.Sprintf("%.0f / %.0f", it.CompletedQty, it.BaselineQty),
			FormatHours(it.ActualHours),
			ratioCell(it.UnitsPerHour),
			performanceCell(it.PerformingMetric),
		})
	}
	b.WriteString(RenderTableAligned(headers, rows, []bool{false, true, true, true, false}))

	return RenderBox(title, b.String())
}

func ratioCell(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%.2f", *v)
}

// performanceCell colors actual-vs-expected throughput: 1.0 means producing
// at the estimated rate.
func performanceCell(v *float64) string {
	if v == nil {
		return Dim("--")
	}
	return IndexColor(*v).Render(fmt.Sprintf("%.2f", *v))
}

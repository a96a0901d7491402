package formatter

import (
	"fmt"
	"strings"

	"github.com/tfournier/girder/internal/contract"
)

const statusProgressBarWidth = 20

// FormatEVM formats the earned-value summary into a styled CLI dashboard.
func FormatEVM(evm contract.EVMSummary, asOf string) string {
	var b strings.Builder

	b.WriteString(Dim("As of ") + Bold(asOf) + "\n\n")

	b.WriteString(RenderProgress(evm.PercentComplete, statusProgressBarWidth))
	b.WriteString(Dim(" complete") + "\n\n")

	headers := []string{"METRIC", "VALUE", ""}
	rows := [][]string{
		{"Budget at completion", FormatCost(evm.BAC), Dim("BAC")},
		{"Planned value", FormatCost(evm.PV), Dim("PV")},
		{"Earned value", FormatCost(evm.EV), Dim("EV")},
		{"Actual cost", FormatCost(evm.AC), Dim("AC")},
		{"Cost variance", signedCost(evm.CostVariance), Dim("CV")},
		{"Schedule variance", signedCost(evm.ScheduleVariance), Dim("SV")},
		{"Cost performance", FormatIndex(evm.CPI), IndexIndicator(evm.CPI)},
		{"Schedule performance", FormatIndex(evm.SPI), IndexIndicator(evm.SPI)},
		{"Estimate at completion", FormatCost(evm.EAC), Dim("EAC")},
		{"Estimate to complete", FormatCost(evm.ETC), Dim("ETC")},
		{"Variance at completion", signedCost(evm.VAC), Dim("VAC")},
		{"To-complete index", FormatIndex(evm.TCPI), Dim("TCPI")},
	}
	b.WriteString(RenderTableAligned(headers, rows, []bool{false, true, false}))

	b.WriteString("\n")
	spent := fmt.Sprintf("%.1f%% of budget spent", evm.PercentSpent)
	b.WriteString(Dim(spent) + "\n")

	return RenderBox("Performance", b.String())
}

// signedCost renders a cost variance with favorability coloring: positive is
// green, negative red, zero dimmed.
func signedCost(v float64) string {
	switch {
	case v > 0:
		return StyleGreen.Render("+" + FormatCost(v))
	case v < 0:
		return StyleRed.Render(FormatCost(v))
	default:
		return Dim(FormatCost(0))
	}
}

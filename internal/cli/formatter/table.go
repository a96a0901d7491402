package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum visible width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	return RenderTableAligned(headers, rows, nil)
}

// RenderTableAligned is RenderTable with per-column right alignment.
// rightAlign[i] set makes column i right-aligned; a nil or short slice
// leaves the remaining columns left-aligned.
func RenderTableAligned(headers []string, rows [][]string, rightAlign []bool) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Widths use the visible width, not byte length, so styled cells line up.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	alignedRight := func(i int) bool {
		return rightAlign != nil && i < len(rightAlign) && rightAlign[i]
	}

	var b strings.Builder

	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], alignedRight(i), i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			writeCell(&b, cell, lipgloss.Width(cell), widths[i], alignedRight(i), i == cols-1)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func writeCell(b *strings.Builder, cell string, visible, width int, right, last bool) {
	pad := width - visible
	if pad < 0 {
		pad = 0
	}
	if right {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(cell)
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		return
	}
	b.WriteString(cell)
	if !last {
		b.WriteString(strings.Repeat(" ", pad+colGap))
	}
}

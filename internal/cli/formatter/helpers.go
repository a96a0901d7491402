package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders an hour quantity with a trimmed decimal and "h" suffix.
func FormatHours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%dh", int64(h))
	}
	return fmt.Sprintf("%.1fh", h)
}

// FormatCost renders a cost with thousands separators and no currency
// assumption beyond a leading "$".
func FormatCost(c float64) string {
	neg := c < 0
	if neg {
		c = -c
	}
	whole := int64(c)
	frac := int64((c-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	out := "$" + strings.Join(parts, ",")
	if frac > 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatHoursPtr renders an optional hour quantity; a dimmed dash when unset.
func FormatHoursPtr(h *float64) string {
	if h == nil {
		return Dim("--")
	}
	return FormatHours(*h)
}

// FormatCostPtr renders an optional cost; a dimmed dash when unset.
func FormatCostPtr(c *float64) string {
	if c == nil {
		return Dim("--")
	}
	return FormatCost(*c)
}

// FormatPercentPtr renders an optional percentage; a dimmed dash when unset.
func FormatPercentPtr(p *float64) string {
	if p == nil {
		return Dim("--")
	}
	return fmt.Sprintf("%.0f%%", *p)
}

// FormatIndex renders a performance index to two decimals with health coloring.
func FormatIndex(v float64) string {
	return IndexColor(v).Render(fmt.Sprintf("%.2f", v))
}

// KindBadge returns a purple-styled, capitalized tree-level label.
func KindBadge(kind string) string {
	if kind == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(kind[:1]) + kind[1:]
	return StylePurple.Render(label)
}

// MethodBadge renders a progress-method label in the dim style.
func MethodBadge(method string) string {
	if method == "" {
		return ""
	}
	return Dim("(" + method + ")")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateOrDash renders a yyyy-mm-dd string, or a dimmed dash when blank.
func DateOrDash(d string) string {
	if d == "" {
		return Dim("--")
	}
	return StyleFg.Render(d)
}

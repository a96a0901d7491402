package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tfournier/girder/internal/cli/formatter"
	"github.com/tfournier/girder/internal/contract"
)

// browseNode is one flattened tree row; children stay attached so
// expand/collapse can re-flatten without re-walking the contract tree.
type browseNode struct {
	item     contract.WBSItem
	level    int
	expanded bool
	children []*browseNode
}

type browseKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ExpandAll key.Binding
	Collapse  key.Binding
	Quit      key.Binding
}

func defaultBrowseKeys() browseKeyMap {
	return browseKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		ExpandAll: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		Collapse:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// browseModel is the bubbletea Model behind `girder browse`: a navigable
// work-breakdown tree with a detail pane for the selected node.
type browseModel struct {
	roots   []*browseNode
	visible []*browseNode
	cursor  int
	keys    browseKeyMap
	vp      viewport.Model
	width   int
	height  int
	asOf    string
	ready   bool
}

func newBrowseModel(items []contract.WBSItem, asOf string) browseModel {
	roots := make([]*browseNode, 0, len(items))
	for _, item := range items {
		roots = append(roots, buildBrowseNode(item, 0))
	}
	// Top level starts expanded so the screen is not a bare root list.
	for _, r := range roots {
		r.expanded = true
	}

	m := browseModel{
		roots: roots,
		keys:  defaultBrowseKeys(),
		vp:    viewport.New(0, 0),
		asOf:  asOf,
	}
	m.reflatten()
	return m
}

func buildBrowseNode(item contract.WBSItem, level int) *browseNode {
	n := &browseNode{item: item, level: level}
	for _, child := range item.Children {
		n.children = append(n.children, buildBrowseNode(child, level+1))
	}
	return n
}

func (m *browseModel) reflatten() {
	m.visible = m.visible[:0]
	var walk func(nodes []*browseNode)
	walk = func(nodes []*browseNode) {
		for _, n := range nodes {
			m.visible = append(m.visible, n)
			if n.expanded {
				walk(n.children)
			}
		}
	}
	walk(m.roots)

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *browseModel) setExpandedAll(expanded bool) {
	var walk func(nodes []*browseNode)
	walk = func(nodes []*browseNode) {
		for _, n := range nodes {
			n.expanded = expanded
			walk(n.children)
		}
	}
	walk(m.roots)
	if !expanded {
		m.cursor = 0
	}
	m.reflatten()
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = m.treeHeight()
		m.ready = true
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.syncViewport()

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			m.syncViewport()

		case key.Matches(msg, m.keys.Toggle):
			if m.cursor < len(m.visible) {
				n := m.visible[m.cursor]
				if len(n.children) > 0 {
					n.expanded = !n.expanded
					m.reflatten()
					m.syncViewport()
				}
			}

		case key.Matches(msg, m.keys.ExpandAll):
			m.setExpandedAll(true)
			m.syncViewport()

		case key.Matches(msg, m.keys.Collapse):
			m.setExpandedAll(false)
			m.syncViewport()
		}
	}

	return m, nil
}

// treeHeight reserves room for the header, detail pane, and help line.
func (m browseModel) treeHeight() int {
	h := m.height - detailPaneHeight - 3
	if h < 3 {
		h = 3
	}
	return h
}

const detailPaneHeight = 6

func (m *browseModel) syncViewport() {
	m.vp.Height = m.treeHeight()
	m.vp.SetContent(m.renderTree())

	// Keep the cursor row inside the viewport window.
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	}
	if m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m browseModel) renderTree() string {
	var b strings.Builder
	for i, n := range m.visible {
		b.WriteString(m.renderRow(n, i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m browseModel) renderRow(n *browseNode, selected bool) string {
	indent := strings.Repeat("  ", n.level)

	arrow := "  "
	if len(n.children) > 0 {
		if n.expanded {
			arrow = "▾ "
		} else {
			arrow = "▸ "
		}
	}

	code := ""
	if n.item.WBSCode != "" {
		code = n.item.WBSCode + " "
	}

	pct := ""
	if n.item.PercentComplete != nil {
		pct = fmt.Sprintf("  %3.0f%%", *n.item.PercentComplete)
	}

	line := indent + arrow + code + n.item.Name + pct
	if selected {
		return lipgloss.NewStyle().
			Foreground(formatter.ColorFg).
			Background(lipgloss.Color("#3c3836")).
			Bold(true).
			Render("› " + line)
	}
	return "  " + formatter.StyleFg.Render(line)
}

func (m browseModel) renderDetail() string {
	if m.cursor >= len(m.visible) {
		return ""
	}
	item := m.visible[m.cursor].item

	var lines []string
	lines = append(lines, formatter.Bold(item.Name)+" "+formatter.KindBadge(item.Kind))

	span := ""
	if item.StartDate != "" || item.EndDate != "" {
		span = fmt.Sprintf("%s → %s", item.StartDate, item.EndDate)
	}
	if span != "" {
		lines = append(lines, formatter.Dim(span)+formatter.Dim(fmt.Sprintf("  (%dd)", item.DaysRequired)))
	}

	hours := fmt.Sprintf("Hours %s / %s   Cost %s / %s",
		formatter.FormatHoursPtr(item.ActualHours), formatter.FormatHoursPtr(item.BaselineHours),
		formatter.FormatCostPtr(item.ActualCost), formatter.FormatCostPtr(item.BaselineCost))
	lines = append(lines, hours)

	if item.PercentComplete != nil {
		progress := formatter.RenderProgress(*item.PercentComplete, 24)
		if item.Method != "" {
			progress += " " + formatter.MethodBadge(item.Method)
		}
		lines = append(lines, progress)
	}

	if item.TaskCount > 0 {
		lines = append(lines, formatter.Dim(fmt.Sprintf("%d tasks, %s remaining",
			item.TaskCount, formatter.FormatHours(item.RemainingHours))))
	}

	return strings.Join(lines, "\n")
}

func (m browseModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := formatter.Header("Girder Browse") + "  " + formatter.Dim("as of "+m.asOf)

	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(formatter.ColorDim).
		Height(detailPaneHeight - 1)

	help := formatter.Dim("↑/↓ move · enter expand/collapse · e expand all · c collapse all · q quit")

	return header + "\n" + m.vp.View() + "\n" + detailStyle.Render(m.renderDetail()) + "\n" + help
}

package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/contract"
)

func browseFixture() browseModel {
	pct := 50.0
	items := []contract.WBSItem{
		{
			ID: "pf1", WBSCode: "1", Kind: "portfolio", Name: "Downstream",
			Children: []contract.WBSItem{
				{
					ID: "p1", WBSCode: "1.1", Kind: "project", Name: "Refinery Upgrade",
					PercentComplete: &pct,
					Children: []contract.WBSItem{
						{ID: "ph1", WBSCode: "1.1.1", Kind: "phase", Name: "Civil"},
					},
				},
			},
		},
	}
	m := newBrowseModel(items, "2025-06-30")
	resized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return resized.(browseModel)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseModel_TopLevelStartsExpanded(t *testing.T) {
	m := browseFixture()

	// Root expanded, so the project row is visible but the phase is not.
	require.Len(t, m.visible, 2)
	assert.Equal(t, "Downstream", m.visible[0].item.Name)
	assert.Equal(t, "Refinery Upgrade", m.visible[1].item.Name)
}

func TestBrowseModel_NavigateAndExpand(t *testing.T) {
	m := browseFixture()

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(browseModel)
	assert.Equal(t, 1, m.cursor)

	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(browseModel)
	require.Len(t, m.visible, 3)
	assert.Equal(t, "Civil", m.visible[2].item.Name)

	// Collapse again.
	updated, _ = m.Update(keyMsg("enter"))
	m = updated.(browseModel)
	assert.Len(t, m.visible, 2)
}

func TestBrowseModel_CursorStaysInBounds(t *testing.T) {
	m := browseFixture()

	updated, _ := m.Update(keyMsg("k"))
	m = updated.(browseModel)
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 10; i++ {
		updated, _ = m.Update(keyMsg("j"))
		m = updated.(browseModel)
	}
	assert.Equal(t, len(m.visible)-1, m.cursor)
}

func TestBrowseModel_ExpandAllAndCollapseAll(t *testing.T) {
	m := browseFixture()

	updated, _ := m.Update(keyMsg("e"))
	m = updated.(browseModel)
	assert.Len(t, m.visible, 3)

	updated, _ = m.Update(keyMsg("c"))
	m = updated.(browseModel)
	assert.Len(t, m.visible, 1)
	assert.Equal(t, 0, m.cursor)
}

func TestBrowseModel_QuitKey(t *testing.T) {
	m := browseFixture()

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBrowseModel_ViewRendersSelection(t *testing.T) {
	m := browseFixture()

	view := m.View()
	assert.Contains(t, view, "Downstream")
	assert.Contains(t, view, "2025-06-30")
	assert.Contains(t, view, "q quit")
}

package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tfournier/girder/internal/contract"
)

func fptr(v float64) *float64 { return &v }

func TestFormatWBS_RendersNestedTree(t *testing.T) {
	items := []contract.WBSItem{
		{
			ID: "p1", WBSCode: "1", Kind: "project", Name: "Refinery Upgrade",
			PercentComplete: fptr(60), TaskCount: 4,
			Children: []contract.WBSItem{
				{
					ID: "ph1", WBSCode: "1.1", Kind: "phase", Name: "Civil",
					ActualHours: fptr(120), BaselineHours: fptr(200), TaskCount: 2,
				},
			},
		},
	}

	out := FormatWBS(items)

	assert.Contains(t, out, "Refinery Upgrade")
	assert.Contains(t, out, "Civil")
	assert.Contains(t, out, "1.1")
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "120h / 200h")
	assert.Contains(t, out, "4 tasks")
}

func TestFormatWBS_Empty(t *testing.T) {
	assert.Contains(t, FormatWBS(nil), "No work breakdown data")
}

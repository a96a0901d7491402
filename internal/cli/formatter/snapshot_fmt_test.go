package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

func TestFormatSnapshotList(t *testing.T) {
	snaps := []*domain.Snapshot{
		{
			ID:           "abcd1234efgh",
			Scope:        domain.ScopeProject,
			ScopeID:      "p1",
			SnapshotDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Label:        "month-end",
		},
	}

	out := FormatSnapshotList(snaps)

	assert.Contains(t, out, "abcd1234")
	assert.Contains(t, out, "project")
	assert.Contains(t, out, "2025-06-30")
	assert.Contains(t, out, "month-end")
}

func TestFormatSnapshotList_Empty(t *testing.T) {
	assert.Contains(t, FormatSnapshotList(nil), "No snapshots stored")
}

func TestFormatSnapshotDetail(t *testing.T) {
	snap := &domain.Snapshot{
		ID:           "s1",
		Scope:        domain.ScopeAll,
		SnapshotDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Label:        "baseline",
	}
	metrics := contract.EVMSummary{CPI: 0.9, SPI: 1.1, EAC: 11111, PercentComplete: 45}
	charts := contract.NewSnapshotCharts()
	charts.Budget = contract.BudgetView{BaselineCost: 10000, ActualCost: 4500, PercentSpent: 45, RemainingCost: 5500}

	out := FormatSnapshotDetail(snap, metrics, charts)

	assert.Contains(t, out, "baseline")
	assert.Contains(t, out, "0.90")
	assert.Contains(t, out, "$11,111")
	assert.Contains(t, out, "BUDGET")
	assert.Contains(t, out, "$5,500")
}

func TestFormatTrend(t *testing.T) {
	points := []contract.TrendPoint{
		{SnapshotDate: "2025-05-31", CPI: 0.8, SPI: 0.9, PercentComplete: 30, EAC: 12000},
		{SnapshotDate: "2025-06-30", CPI: 0.95, SPI: 0.93, PercentComplete: 45, EAC: 10500},
	}

	out := FormatTrend(points)

	assert.Contains(t, out, "2025-05-31")
	assert.Contains(t, out, "2025-06-30")
	assert.Contains(t, out, "improving")
}

func TestFormatTrend_DecliningCPI(t *testing.T) {
	points := []contract.TrendPoint{
		{SnapshotDate: "2025-05-31", CPI: 1.0},
		{SnapshotDate: "2025-06-30", CPI: 0.85},
	}

	assert.Contains(t, FormatTrend(points), "declining")
}

func TestFormatTrend_Empty(t *testing.T) {
	assert.Contains(t, FormatTrend(nil), "No snapshots to trend")
}

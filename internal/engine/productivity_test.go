package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func productivityFixture() *domain.Dataset {
	return &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Phases:   []*domain.Phase{phase("ph1", "p1", "Welding")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", PhaseID: "ph1", Name: "Pipe welds",
				ProgressMethod: domain.MethodQuantity,
				BaselineQty:    domain.FloatPtr(100),
				CompletedQty:   domain.FloatPtr(50),
				BaselineHours:  domain.FloatPtr(200),
				ActualHours:    domain.FloatPtr(125),
			},
			{
				ID: "t2", ProjectID: "p1", PhaseID: "ph1", Name: "Plate welds",
				ProgressMethod: domain.MethodQuantity,
				BaselineQty:    domain.FloatPtr(100),
				CompletedQty:   domain.FloatPtr(25),
				BaselineHours:  domain.FloatPtr(100),
				ActualHours:    domain.FloatPtr(25),
			},
		},
	}
}

func TestComputeProductivity_TaskRatios(t *testing.T) {
	ds := productivityFixture()
	idx := BuildIndex(ds)
	progress := ComputeProgress(ds.Tasks, idx)

	taskRows, _, _ := ComputeProductivity(ds.Tasks, idx, progress)

	require.Len(t, taskRows, 2)
	row := taskRows[0]
	assert.Equal(t, "t1", row.ID)
	require.NotNil(t, row.ExpectedUnitsPerHour)
	assert.InDelta(t, 0.5, *row.ExpectedUnitsPerHour, 1e-9)
	require.NotNil(t, row.UnitsPerHour)
	assert.InDelta(t, 0.4, *row.UnitsPerHour, 1e-9)
	require.NotNil(t, row.HrsPerUnit)
	assert.InDelta(t, 2.0, *row.HrsPerUnit, 1e-9)
	require.NotNil(t, row.PerformingMetric)
	assert.InDelta(t, 80.0, *row.PerformingMetric, 1e-9)
}

func TestComputeProductivity_PhaseAggregatesRawSums(t *testing.T) {
	ds := productivityFixture()
	idx := BuildIndex(ds)
	progress := ComputeProgress(ds.Tasks, idx)

	_, phaseRows, projectRows := ComputeProductivity(ds.Tasks, idx, progress)

	require.Len(t, phaseRows, 1)
	row := phaseRows[0]
	assert.Equal(t, "ph1", row.ID)
	assert.Equal(t, "Welding", row.Name)
	assert.Equal(t, 200.0, row.BaselineQty)
	assert.Equal(t, 75.0, row.ActualQty)
	assert.Equal(t, 300.0, row.BaselineHours)
	assert.Equal(t, 150.0, row.ActualHours)

	// Ratios come from the sums, not from averaging the task ratios:
	// 75 units / 150 h = 0.5, against expected 200/300.
	require.NotNil(t, row.UnitsPerHour)
	assert.InDelta(t, 0.5, *row.UnitsPerHour, 1e-9)
	require.NotNil(t, row.ExpectedUnitsPerHour)
	assert.InDelta(t, 200.0/300.0, *row.ExpectedUnitsPerHour, 1e-9)

	require.Len(t, projectRows, 1)
	assert.Equal(t, "p1", projectRows[0].ID)
	assert.Equal(t, 200.0, projectRows[0].BaselineQty)
}

func TestComputeProductivity_NoBaselineQtyNoRow(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{ID: "t1", ProjectID: "p1", Name: "Hours only", BaselineHours: domain.FloatPtr(40), ActualHours: domain.FloatPtr(10)},
		},
	}
	idx := BuildIndex(ds)
	progress := ComputeProgress(ds.Tasks, idx)

	taskRows, phaseRows, projectRows := ComputeProductivity(ds.Tasks, idx, progress)

	assert.Empty(t, taskRows)
	assert.Empty(t, phaseRows)
	assert.Empty(t, projectRows)
}

func TestComputeProductivity_ZeroActualHoursLeavesRatiosNil(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", Name: "Not started",
				BaselineQty:   domain.FloatPtr(100),
				BaselineHours: domain.FloatPtr(50),
			},
		},
	}
	idx := BuildIndex(ds)
	progress := ComputeProgress(ds.Tasks, idx)

	taskRows, _, _ := ComputeProductivity(ds.Tasks, idx, progress)

	require.Len(t, taskRows, 1)
	assert.NotNil(t, taskRows[0].ExpectedUnitsPerHour)
	assert.Nil(t, taskRows[0].UnitsPerHour)
	assert.Nil(t, taskRows[0].ProductivityVariance)
	assert.Nil(t, taskRows[0].PerformingMetric)
}

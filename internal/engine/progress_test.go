package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func progressIdx(ds *domain.Dataset) *Index {
	return BuildIndex(ds)
}

func TestComputeProgress_HoursMethod(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{ID: "t1", ProjectID: "p1", Name: "Task", BaselineHours: domain.FloatPtr(40), ActualHours: domain.FloatPtr(20)},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	p := progress["t1"]
	assert.Equal(t, domain.MethodHours, p.Method)
	assert.Equal(t, 50.0, p.PercentComplete)
	assert.Equal(t, 20.0, p.EarnedHours)
	assert.Equal(t, 20.0, p.RemainingHours)
	require.NotNil(t, p.Efficiency)
	assert.Equal(t, 100.0, *p.Efficiency)
}

func TestComputeProgress_QuantityMethod(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", Name: "Welds",
				ProgressMethod: domain.MethodQuantity,
				BaselineQty:    domain.FloatPtr(200),
				CompletedQty:   domain.FloatPtr(30),
			},
		},
		QuantityEntries: []*domain.TaskQuantityEntry{
			{ID: "q1", TaskID: "t1", Type: domain.QtyCompleted, Qty: 20},
			{ID: "q2", TaskID: "t1", Type: domain.QtyProduced, Qty: 75},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	p := progress["t1"]
	assert.Equal(t, 50.0, p.CompletedQty)
	assert.Equal(t, 75.0, p.ProducedQty)
	// 50 of 200 completed; produced units never feed percent complete.
	assert.Equal(t, 25.0, p.PercentComplete)
}

func TestComputeProgress_MilestoneStatusWeight(t *testing.T) {
	// Status spelled with mixed case and no explicit percent: the weight
	// table decides.
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", Name: "Gate",
				ProgressMethod: domain.MethodMilestone,
				MilestoneID:    "m1",
			},
		},
		Milestones: []*domain.Milestone{
			{ID: "m1", ProjectID: "p1", Name: "Gate 2", Status: "At Risk"},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	assert.Equal(t, 45.0, progress["t1"].PercentComplete)
}

func TestComputeProgress_MilestoneExplicitPercentWins(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{ID: "t1", ProjectID: "p1", Name: "Gate", ProgressMethod: domain.MethodMilestone, MilestoneID: "m1"},
		},
		Milestones: []*domain.Milestone{
			{ID: "m1", Status: "At Risk", PercentComplete: domain.FloatPtr(60)},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	assert.Equal(t, 60.0, progress["t1"].PercentComplete)
}

func TestComputeProgress_UnknownMilestoneStatusFallsBackToHours(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", Name: "Gate",
				ProgressMethod: domain.MethodMilestone,
				MilestoneID:    "m1",
				BaselineHours:  domain.FloatPtr(10),
				ActualHours:    domain.FloatPtr(4),
			},
		},
		Milestones: []*domain.Milestone{{ID: "m1", Status: "somewhere in between"}},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	assert.Equal(t, 40.0, progress["t1"].PercentComplete)
}

func TestComputeProgress_IsMilestoneFlagImpliesMethod(t *testing.T) {
	ds := &domain.Dataset{
		Projects:   []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks:      []*domain.Task{{ID: "t1", ProjectID: "p1", Name: "Gate", IsMilestone: true, MilestoneID: "m1"}},
		Milestones: []*domain.Milestone{{ID: "m1", Status: "completed"}},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	assert.Equal(t, domain.MethodMilestone, progress["t1"].Method)
	assert.Equal(t, 100.0, progress["t1"].PercentComplete)
}

func TestComputeProgress_PercentAlwaysClamped(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			// Overrun: 80 actual on 40 baseline.
			{ID: "over", ProjectID: "p1", Name: "Over", BaselineHours: domain.FloatPtr(40), ActualHours: domain.FloatPtr(80)},
			// Negative synthetic input.
			{ID: "neg", ProjectID: "p1", Name: "Neg", BaselineHours: domain.FloatPtr(40), ActualHours: domain.FloatPtr(-10)},
			// Zero baseline never divides.
			{ID: "zero", ProjectID: "p1", Name: "Zero", ActualHours: domain.FloatPtr(10)},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	for id, p := range progress {
		assert.GreaterOrEqual(t, p.PercentComplete, 0.0, id)
		assert.LessOrEqual(t, p.PercentComplete, 100.0, id)
	}
	assert.Equal(t, 100.0, progress["over"].PercentComplete)
	assert.Equal(t, 0.0, progress["neg"].PercentComplete)
	assert.Equal(t, 0.0, progress["zero"].PercentComplete)
}

func TestComputeProgress_ExplicitRemainingHonored(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks: []*domain.Task{
			{
				ID: "t1", ProjectID: "p1", Name: "Task",
				BaselineHours:  domain.FloatPtr(40),
				ActualHours:    domain.FloatPtr(10),
				RemainingHours: domain.FloatPtr(55),
			},
		},
	}

	progress := ComputeProgress(ds.Tasks, progressIdx(ds))

	assert.Equal(t, 55.0, progress["t1"].RemainingHours)
}

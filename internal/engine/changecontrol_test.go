package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func TestApplyChangeControl_ApprovedTaskDelta(t *testing.T) {
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "T3", ProjectID: "p1", Name: "Rebar", BaselineHours: domain.FloatPtr(40)},
		},
		ChangeRequests: []*domain.ChangeRequest{
			{ID: "CR1", ProjectID: "p1", Status: domain.ChangeApproved},
		},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "i1", ChangeRequestID: "CR1", TaskID: "T3", DeltaHours: 10},
		},
	}

	adj := ApplyChangeControl(ds)

	require.Len(t, adj.Tasks, 1)
	require.NotNil(t, adj.Tasks[0].BaselineHours)
	assert.Equal(t, 50.0, *adj.Tasks[0].BaselineHours)
	// Input stays at its original baseline.
	assert.Equal(t, 40.0, *ds.Tasks[0].BaselineHours)
}

func TestApplyChangeControl_DraftAndRejectedIgnored(t *testing.T) {
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "t1", Name: "Task", BaselineHours: domain.FloatPtr(40)},
		},
		ChangeRequests: []*domain.ChangeRequest{
			{ID: "cr-draft", Status: domain.ChangeDraft},
			{ID: "cr-rej", Status: domain.ChangeRejected},
		},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "i1", ChangeRequestID: "cr-draft", TaskID: "t1", DeltaHours: 99},
			{ID: "i2", ChangeRequestID: "cr-rej", TaskID: "t1", DeltaHours: 99},
		},
	}

	adj := ApplyChangeControl(ds)

	assert.Equal(t, 40.0, *adj.Tasks[0].BaselineHours)
	assert.Empty(t, adj.TaskDeltas)
}

func TestApplyChangeControl_ZeroImpactsIsIdentity(t *testing.T) {
	base := domain.FloatPtr(40)
	start := date(2025, time.March, 3)
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "t1", Name: "Task", BaselineHours: base, StartDate: start},
		},
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
	}

	adj := ApplyChangeControl(ds)

	// Untouched baselines keep the exact same pointers, nil included.
	assert.Same(t, base, adj.Tasks[0].BaselineHours)
	assert.Same(t, start, adj.Tasks[0].StartDate)
	assert.Nil(t, adj.Tasks[0].BaselineCost)
	assert.Nil(t, adj.Projects[0].BaselineHours)
}

func TestApplyChangeControl_ScopeLevelsIndependent(t *testing.T) {
	ds := &domain.Dataset{
		Tasks:  []*domain.Task{{ID: "t1", PhaseID: "ph1", Name: "Task", BaselineHours: domain.FloatPtr(10)}},
		Phases: []*domain.Phase{{ID: "ph1", ProjectID: "p1", Name: "Phase", BaselineHours: domain.FloatPtr(100)}},
		ChangeRequests: []*domain.ChangeRequest{
			{ID: "cr1", Status: domain.ChangeImplemented},
		},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "i1", ChangeRequestID: "cr1", TaskID: "t1", DeltaHours: 5},
		},
	}

	adj := ApplyChangeControl(ds)

	assert.Equal(t, 15.0, *adj.Tasks[0].BaselineHours)
	// The task-scoped delta never bubbles into the phase.
	assert.Equal(t, 100.0, *adj.Phases[0].BaselineHours)
}

func TestApplyChangeControl_DateShift(t *testing.T) {
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "t1", Name: "Task", StartDate: date(2025, time.March, 3), EndDate: date(2025, time.March, 10)},
		},
		ChangeRequests: []*domain.ChangeRequest{{ID: "cr1", Status: domain.ChangeApproved}},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "i1", ChangeRequestID: "cr1", TaskID: "t1", DeltaStartDays: 7, DeltaEndDays: 14},
		},
	}

	adj := ApplyChangeControl(ds)

	assert.Equal(t, *date(2025, time.March, 10), *adj.Tasks[0].StartDate)
	assert.Equal(t, *date(2025, time.March, 24), *adj.Tasks[0].EndDate)
}

func TestApplyChangeControl_CostTransactionAggregation(t *testing.T) {
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "t1", Name: "Task", ActualCost: domain.FloatPtr(1000)},
		},
		CostTransactions: []*domain.CostTransaction{
			{ID: "c1", TaskID: "t1", Amount: 250},
			{ID: "c2", TaskID: "t1", Amount: 500, IsAccrual: true},
			{ID: "c3", TaskID: "t1", Amount: 50},
		},
	}

	adj := ApplyChangeControl(ds)

	assert.Equal(t, 1300.0, *adj.Tasks[0].ActualCost)
	assert.Equal(t, CostAgg{Actual: 300, Forecast: 500}, adj.TaskCosts["t1"])
}

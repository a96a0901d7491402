package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func TestWeekKey_NormalizesToMonday(t *testing.T) {
	monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-02", weekKey(monday))
	// Any time-of-day within the same week collapses to the same key.
	assert.Equal(t, "2025-06-02", weekKey(time.Date(2025, time.June, 4, 17, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2025-06-02", weekKey(time.Date(2025, time.June, 8, 23, 59, 0, 0, time.UTC)))
	// Next Monday starts a new bucket.
	assert.Equal(t, "2025-06-09", weekKey(time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)))
}

func TestBuildSCurve_CumulativeSeries(t *testing.T) {
	tasks := []*domain.Task{
		{
			ID: "t1", Name: "Task",
			BaselineHours: domain.FloatPtr(40),
			StartDate:     date(2025, time.June, 2),
			EndDate:       date(2025, time.June, 13), // two weeks
		},
	}
	entries := []*domain.HourEntry{
		{ID: "h1", TaskID: "t1", Date: date(2025, time.June, 3), Hours: 10},
		{ID: "h2", TaskID: "t1", Date: date(2025, time.June, 11), Hours: 15},
	}

	curve := BuildSCurve(tasks, entries, NewWeekCache())

	require.Len(t, curve.Points, 2)
	assert.Equal(t, "2025-06-02", curve.Points[0].Week)
	assert.InDelta(t, 20.0, curve.Points[0].PlannedHours, 1e-9)
	assert.InDelta(t, 10.0, curve.Points[0].ActualHours, 1e-9)
	assert.InDelta(t, 40.0, curve.Points[1].CumulativePlanned, 1e-9)
	assert.InDelta(t, 25.0, curve.Points[1].CumulativeActual, 1e-9)
}

func TestBuildSCurve_UndatedRecordsExcluded(t *testing.T) {
	tasks := []*domain.Task{
		{ID: "t1", Name: "No dates", BaselineHours: domain.FloatPtr(40)},
	}
	entries := []*domain.HourEntry{
		{ID: "h1", Hours: 10}, // no date
	}

	curve := BuildSCurve(tasks, entries, NewWeekCache())

	assert.Empty(t, curve.Points)
}

func TestBuildLaborBreakdown_GroupsByChargeCode(t *testing.T) {
	entries := []*domain.HourEntry{
		{ID: "h1", ChargeCode: "CIVIL", Date: date(2025, time.June, 3), Hours: 8},
		{ID: "h2", ChargeCode: "CIVIL", Date: date(2025, time.June, 10), Hours: 4},
		{ID: "h3", Date: date(2025, time.June, 3), Hours: 2},
	}

	breakdown := BuildLaborBreakdown(entries)

	require.Len(t, breakdown.Weeks, 2)
	require.Len(t, breakdown.Rows, 2)
	assert.Equal(t, "CIVIL", breakdown.Rows[0].ChargeCode)
	assert.Equal(t, 12.0, breakdown.Rows[0].TotalHours)
	assert.Equal(t, "uncoded", breakdown.Rows[1].ChargeCode)
	assert.Equal(t, 10.0, breakdown.Total["2025-06-02"])
}

func TestBuildResourceHeatmap_ResolvesEmployeeNames(t *testing.T) {
	ds := &domain.Dataset{
		Employees: []*domain.Employee{{ID: "e1", Name: "Dana Fields"}},
	}
	idx := BuildIndex(ds)
	entries := []*domain.HourEntry{
		{ID: "h1", EmployeeID: "e1", Date: date(2025, time.June, 3), Hours: 8},
		{ID: "h2", EmployeeID: "ghost", Date: date(2025, time.June, 3), Hours: 4},
		{ID: "h3", Date: date(2025, time.June, 3), Hours: 2},
	}

	heatmap := BuildResourceHeatmap(entries, idx)

	require.Len(t, heatmap.Rows, 3)
	names := []string{heatmap.Rows[0].Resource, heatmap.Rows[1].Resource, heatmap.Rows[2].Resource}
	assert.Equal(t, []string{"Dana Fields", "ghost", "unassigned"}, names)
}

func TestBuildForecast_BurnDownAtRecentRate(t *testing.T) {
	asOf := date(2025, time.June, 13)
	entries := []*domain.HourEntry{
		{ID: "h1", Date: date(2025, time.June, 3), Hours: 20},
		{ID: "h2", Date: date(2025, time.June, 10), Hours: 20},
	}

	forecast := BuildForecast(50, 40, entries, asOf)

	assert.Equal(t, 90.0, forecast.ProjectedHours)
	// Rate 20 h/week burns 50 h in three weeks.
	require.Len(t, forecast.Points, 3)
	assert.InDelta(t, 30.0, forecast.Points[0].RemainingHours, 1e-9)
	assert.InDelta(t, 10.0, forecast.Points[1].RemainingHours, 1e-9)
	assert.InDelta(t, 0.0, forecast.Points[2].RemainingHours, 1e-9)
}

func TestBuildForecast_NoBurnSingleBucket(t *testing.T) {
	forecast := BuildForecast(80, 0, nil, date(2025, time.June, 13))

	require.Len(t, forecast.Points, 1)
	assert.Equal(t, 80.0, forecast.Points[0].RemainingHours)
}

func TestBuildForecast_NothingRemaining(t *testing.T) {
	forecast := BuildForecast(0, 120, nil, date(2025, time.June, 13))

	assert.Equal(t, 120.0, forecast.ProjectedHours)
	assert.Empty(t, forecast.Points)
}

func TestBuildMilestones_StatusCounts(t *testing.T) {
	milestones := []*domain.Milestone{
		{ID: "m1", Name: "Gate 1", Status: "Completed"},
		{ID: "m2", Name: "Gate 2", Status: "at-risk"},
		{ID: "m3", Name: "Gate 3", Status: "AT_RISK"},
	}

	items, status := BuildMilestones(milestones)

	assert.Len(t, items, 3)
	assert.Equal(t, 3, status.Total)
	assert.Equal(t, 1, status.Counts["completed"])
	assert.Equal(t, 2, status.Counts["at risk"], "separator variants collapse to one bucket")
}

func TestSummarizeChangeControl_GroupsByProjectAndMonth(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks:    []*domain.Task{task("t1", "p1", "", "Work")},
		ChangeRequests: []*domain.ChangeRequest{
			{ID: "cr1", ProjectID: "p1", Status: domain.ChangeApproved, ApprovedDate: date(2025, time.May, 12)},
			{ID: "cr2", ProjectID: "p1", Status: domain.ChangeApproved}, // no dates at all
			{ID: "cr3", ProjectID: "p1", Status: domain.ChangeDraft},
		},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "i1", ChangeRequestID: "cr1", TaskID: "t1", DeltaHours: 10, DeltaCost: 1500},
			{ID: "i2", ChangeRequestID: "cr2", ProjectID: "p1", DeltaHours: 5},
			{ID: "i3", ChangeRequestID: "cr3", TaskID: "t1", DeltaHours: 99},
		},
	}
	idx := BuildIndex(ds)

	summary := SummarizeChangeControl(ds, idx)

	assert.Equal(t, 3, summary.TotalRequests)
	assert.Equal(t, 2, summary.ApprovedRequests)
	assert.Equal(t, 15.0, summary.TotalDeltaHours)
	assert.Equal(t, 1500.0, summary.TotalDeltaCost)

	require.Len(t, summary.ByProject, 1)
	assert.Equal(t, "p1", summary.ByProject[0].Key)
	assert.Equal(t, "Alpha", summary.ByProject[0].Name)
	assert.Equal(t, 2, summary.ByProject[0].Requests)

	require.Len(t, summary.ByMonth, 2)
	assert.Equal(t, "2025-05", summary.ByMonth[0].Key)
	assert.Equal(t, "unknown", summary.ByMonth[1].Key)
}

func TestBuildQualityMetrics_CoverageRatios(t *testing.T) {
	ds := &domain.Dataset{
		Tasks: []*domain.Task{
			{ID: "t1", Name: "A", BaselineHours: domain.FloatPtr(10), StartDate: date(2025, time.June, 2), EndDate: date(2025, time.June, 6)},
			{ID: "t2", Name: "B"},
		},
	}
	matched := []*domain.HourEntry{
		{ID: "h1", TaskID: "t1", Hours: 4},
		{ID: "h2", Hours: 2},
	}

	m := BuildQualityMetrics(ds, matched, 3)

	assert.Equal(t, 2, m.TasksTotal)
	assert.Equal(t, 50.0, m.BaselineCoverage)
	assert.Equal(t, 50.0, m.DateCoverage)
	assert.Equal(t, 1, m.HourEntriesLinked)
	assert.Equal(t, 1, m.HourEntriesUnmatched)
	assert.Equal(t, 50.0, m.HourLinkage)
	assert.Equal(t, 3, m.ValidationIssues)
}

func TestLatestDate_MaxAcrossAllArrays(t *testing.T) {
	ds := &domain.Dataset{
		Tasks:       []*domain.Task{{ID: "t1", EndDate: date(2025, time.June, 10)}},
		HourEntries: []*domain.HourEntry{{ID: "h1", Date: date(2025, time.July, 1)}},
		Milestones:  []*domain.Milestone{{ID: "m1", Date: date(2025, time.May, 20)}},
	}

	latest := LatestDate(ds)

	require.NotNil(t, latest)
	assert.Equal(t, *date(2025, time.July, 1), *latest)
}

func TestLatestDate_EmptyDataset(t *testing.T) {
	assert.Nil(t, LatestDate(&domain.Dataset{}))
}

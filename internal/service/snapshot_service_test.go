package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

func newSnapshotService(t *testing.T) *SnapshotServiceImpl {
	t.Helper()
	analysis := NewAnalysisService(nil, nil)
	return NewSnapshotService(analysis, newSnapshotRepo(t), nil)
}

func TestSnapshotService_TakeStoresPayload(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	svc := newSnapshotService(t)
	ctx := context.Background()

	snap, err := svc.Take(ctx, path, domain.ScopeProject, "p1", domain.ViewAll, "baseline")
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "baseline", snap.Label)
	// Snapshot date comes from the data, not the wall clock.
	assert.Equal(t, "2025-06-13", snap.SnapshotDate.Format("2006-01-02"))

	var metrics contract.EVMSummary
	require.NoError(t, json.Unmarshal([]byte(snap.MetricsJSON), &metrics))
	assert.Equal(t, 10000.0, metrics.BAC)

	got, err := svc.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.MetricsJSON, got.MetricsJSON)
}

func TestSnapshotService_ListScoped(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	svc := newSnapshotService(t)
	ctx := context.Background()

	_, err := svc.Take(ctx, path, domain.ScopeProject, "p1", domain.ViewAll, "")
	require.NoError(t, err)
	_, err = svc.Take(ctx, path, domain.ScopeAll, "", domain.ViewAll, "")
	require.NoError(t, err)

	listed, err := svc.List(ctx, domain.ScopeProject, "p1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSnapshotService_TrendDecodesMetrics(t *testing.T) {
	svc := newSnapshotService(t)
	ctx := context.Background()

	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	for i, cpi := range []float64{0.9, 1.1} {
		metrics, _ := json.Marshal(contract.EVMSummary{CPI: cpi, SPI: 1.0, PercentComplete: float64(30 * (i + 1))})
		require.NoError(t, svc.repo.Create(ctx, &domain.Snapshot{
			ID:           string(rune('a' + i)),
			Scope:        domain.ScopeAll,
			SnapshotDate: day.AddDate(0, 0, 7*i),
			MetricsJSON:  string(metrics),
			ChartsJSON:   "{}",
			CreatedAt:    day,
		}))
	}
	// A corrupt row is skipped, not fatal.
	require.NoError(t, svc.repo.Create(ctx, &domain.Snapshot{
		ID: "bad", Scope: domain.ScopeAll, SnapshotDate: day.AddDate(0, 0, 21),
		MetricsJSON: "not json", ChartsJSON: "{}", CreatedAt: day,
	}))

	points, err := svc.Trend(ctx, domain.ScopeAll, "")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-06-02", points[0].SnapshotDate)
	assert.InDelta(t, 0.9, points[0].CPI, 1e-9)
	assert.InDelta(t, 1.1, points[1].CPI, 1e-9)
}

func TestSnapshotService_ViewGatedChartsPersisted(t *testing.T) {
	path := writeDataset(t, sampleDataset)
	svc := newSnapshotService(t)

	snap, err := svc.Take(context.Background(), path, domain.ScopeProject, "p1", domain.ViewLabor, "")
	require.NoError(t, err)

	var charts contract.SnapshotCharts
	require.NoError(t, json.Unmarshal([]byte(snap.ChartsJSON), &charts))
	assert.NotEmpty(t, charts.LaborBreakdown.Rows)
	assert.Empty(t, charts.SCurve.Points)
}

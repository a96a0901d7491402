package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
	"github.com/tfournier/girder/internal/repository"
)

// SnapshotServiceImpl derives scoped payloads through the analysis service
// and persists them for trend analysis.
type SnapshotServiceImpl struct {
	analysis *AnalysisServiceImpl
	repo     repository.SnapshotRepo
	observer UseCaseObserver
	now      func() time.Time
}

func NewSnapshotService(analysis *AnalysisServiceImpl, repo repository.SnapshotRepo, observer UseCaseObserver) *SnapshotServiceImpl {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &SnapshotServiceImpl{
		analysis: analysis,
		repo:     repo,
		observer: observer,
		now:      time.Now,
	}
}

func (s *SnapshotServiceImpl) Take(ctx context.Context, inputPath string, scope domain.SnapshotScope, scopeID string, view domain.SnapshotView, label string) (*domain.Snapshot, error) {
	ds, err := s.analysis.Dataset(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	var snap *domain.Snapshot
	fields := map[string]any{"scope": string(scope), "scope_id": scopeID}
	err = observe(ctx, s.observer, "snapshot_take", fields, func() error {
		payload := s.analysis.BuildSnapshot(ds, scope, scopeID, view)

		metrics, err := json.Marshal(payload.Metrics)
		if err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
		charts, err := json.Marshal(payload.Charts)
		if err != nil {
			return fmt.Errorf("encoding charts: %w", err)
		}

		snapshotDate := s.now().UTC()
		if payload.SnapshotDate != "" {
			if d, err := time.Parse("2006-01-02", payload.SnapshotDate); err == nil {
				snapshotDate = d
			}
		}

		snap = &domain.Snapshot{
			ID:           uuid.NewString(),
			Scope:        scope,
			ScopeID:      scopeID,
			SnapshotDate: snapshotDate,
			Label:        label,
			MetricsJSON:  string(metrics),
			ChartsJSON:   string(charts),
			CreatedAt:    s.now().UTC(),
		}
		return s.repo.Create(ctx, snap)
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SnapshotServiceImpl) List(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]*domain.Snapshot, error) {
	return s.repo.List(ctx, scope, scopeID)
}

func (s *SnapshotServiceImpl) Get(ctx context.Context, id string) (*domain.Snapshot, error) {
	return s.repo.GetByID(ctx, id)
}

// Trend decodes the stored metric blocks into the headline series for one
// scope. Snapshots whose metrics fail to decode are skipped, not fatal.
func (s *SnapshotServiceImpl) Trend(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]contract.TrendPoint, error) {
	snaps, err := s.repo.List(ctx, scope, scopeID)
	if err != nil {
		return nil, err
	}

	points := make([]contract.TrendPoint, 0, len(snaps))
	for _, snap := range snaps {
		var m contract.EVMSummary
		if err := json.Unmarshal([]byte(snap.MetricsJSON), &m); err != nil {
			continue
		}
		points = append(points, contract.TrendPoint{
			SnapshotDate:    snap.SnapshotDate.Format("2006-01-02"),
			Label:           snap.Label,
			CPI:             m.CPI,
			SPI:             m.SPI,
			PercentComplete: m.PercentComplete,
			EAC:             m.EAC,
		})
	}
	return points, nil
}

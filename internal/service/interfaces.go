package service

import (
	"context"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

// AnalysisService loads a dataset file and runs the derivation pipeline
// over it. It never writes anything.
type AnalysisService interface {
	Derive(ctx context.Context, inputPath string) (*contract.DeriveResult, error)
	Dataset(ctx context.Context, inputPath string) (*domain.Dataset, error)
}

// SnapshotService takes, stores, and reads back point-in-time snapshots.
type SnapshotService interface {
	Take(ctx context.Context, inputPath string, scope domain.SnapshotScope, scopeID string, view domain.SnapshotView, label string) (*domain.Snapshot, error)
	List(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]*domain.Snapshot, error)
	Get(ctx context.Context, id string) (*domain.Snapshot, error)
	Trend(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]contract.TrendPoint, error)
}

package repository

import (
	"context"
	"time"

	"github.com/tfournier/girder/internal/domain"
)

// SnapshotRepo stores and retrieves point-in-time derivation snapshots.
type SnapshotRepo interface {
	Create(ctx context.Context, s *domain.Snapshot) error
	GetByID(ctx context.Context, id string) (*domain.Snapshot, error)
	List(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]*domain.Snapshot, error)
	ListSince(ctx context.Context, scope domain.SnapshotScope, scopeID string, since time.Time) ([]*domain.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tfournier/girder/internal/domain"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("snapshot not found")

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

const snapshotColumns = `id, scope, scope_id, snapshot_date, label, metrics_json, charts_json, created_at`

func (r *SQLiteSnapshotRepo) Create(ctx context.Context, s *domain.Snapshot) error {
	query := `INSERT INTO snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Scope),
		s.ScopeID,
		s.SnapshotDate.Format(time.RFC3339),
		s.Label,
		s.MetricsJSON,
		s.ChartsJSON,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) GetByID(ctx context.Context, id string) (*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`
	s, err := r.scanSnapshot(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *SQLiteSnapshotRepo) List(ctx context.Context, scope domain.SnapshotScope, scopeID string) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots
		WHERE scope = ? AND scope_id = ?
		ORDER BY snapshot_date`
	rows, err := r.db.QueryContext(ctx, query, string(scope), scopeID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()
	return r.scanSnapshots(rows)
}

func (r *SQLiteSnapshotRepo) ListSince(ctx context.Context, scope domain.SnapshotScope, scopeID string, since time.Time) ([]*domain.Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots
		WHERE scope = ? AND scope_id = ? AND snapshot_date >= ?
		ORDER BY snapshot_date`
	rows, err := r.db.QueryContext(ctx, query, string(scope), scopeID, since.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing snapshots since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()
	return r.scanSnapshots(rows)
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSnapshotRepo) scanSnapshot(row rowScanner) (*domain.Snapshot, error) {
	var s domain.Snapshot
	var scope, snapshotDate, createdAt string
	if err := row.Scan(&s.ID, &scope, &s.ScopeID, &snapshotDate, &s.Label, &s.MetricsJSON, &s.ChartsJSON, &createdAt); err != nil {
		return nil, err
	}
	s.Scope = domain.SnapshotScope(scope)

	var err error
	if s.SnapshotDate, err = time.Parse(time.RFC3339, snapshotDate); err != nil {
		return nil, fmt.Errorf("parsing snapshot_date: %w", err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSnapshotRepo) scanSnapshots(rows *sql.Rows) ([]*domain.Snapshot, error) {
	var out []*domain.Snapshot
	for rows.Next() {
		s, err := r.scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		id            TEXT PRIMARY KEY,
		scope         TEXT NOT NULL
		              CHECK(scope IN ('all','portfolio','customer','site','project')),
		scope_id      TEXT NOT NULL DEFAULT '',
		snapshot_date TEXT NOT NULL,
		label         TEXT NOT NULL DEFAULT '',
		metrics_json  TEXT NOT NULL,
		charts_json   TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_scope
		ON snapshots(scope, scope_id, snapshot_date)`,
}

// Migrate runs all schema migrations. Statements are idempotent; the few
// that cannot be (ALTER TABLE) tolerate duplicate-column errors on re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

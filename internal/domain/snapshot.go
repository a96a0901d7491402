package domain

import "time"

// Snapshot is a stored point-in-time derivation result for one scope, kept
// for trend analysis. Metrics and charts are persisted as the serialized
// output payloads; the store never re-derives them.
type Snapshot struct {
	ID           string
	Scope        SnapshotScope
	ScopeID      string
	SnapshotDate time.Time
	Label        string
	MetricsJSON  string
	ChartsJSON   string
	CreatedAt    time.Time
}

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/db"
	"github.com/tfournier/girder/internal/repository"
)

const sampleDataset = `{
	"projects": [
		{"id": "p1", "name": "Turnaround", "hasSchedule": true,
		 "baselineCost": 10000, "actualCost": 4000}
	],
	"phases": [
		{"id": "ph1", "projectId": "p1", "name": "Design"}
	],
	"tasks": [
		{"id": "t1", "projectId": "p1", "phaseId": "ph1", "name": "Layout",
		 "baselineHours": 40, "actualHours": 20,
		 "startDate": "2025-06-02", "endDate": "2025-06-13"}
	],
	"hour_entries": [
		{"id": "h1", "project_id": "p1", "workday_phase": "Design",
		 "workday_task": "Layout", "date": "2025-06-03", "hours": 8}
	]
}`

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func newSnapshotRepo(t *testing.T) repository.SnapshotRepo {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return repository.NewSQLiteSnapshotRepo(conn)
}

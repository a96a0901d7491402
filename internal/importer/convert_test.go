package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func TestConvert_ResolvesSnakeCaseAliases(t *testing.T) {
	raw, err := Parse([]byte(`{
		"projects": [
			{"id": "p1", "name": "Plant A", "has_schedule": true, "unit_id": "u1",
			 "baseline_hours": 120, "actual_hours": 80, "start_date": "2025-01-06"}
		],
		"tasks": [
			{"id": "t1", "project_id": "p1", "phase_id": "f1", "name": "Weld",
			 "baseline_hours": 40, "is_critical": true, "progress_method": "Quantity"}
		],
		"hour_entries": [
			{"id": "h1", "employee_id": "e1", "project_id": "p1", "hours": 8,
			 "workday_phase": "Fab", "workday_task": "Weld", "date": "2025-01-07T09:00:00Z"}
		]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)

	require.Len(t, ds.Projects, 1)
	p := ds.Projects[0]
	assert.True(t, p.HasSchedule)
	assert.Equal(t, "u1", p.UnitID)
	require.NotNil(t, p.BaselineHours)
	assert.Equal(t, 120.0, *p.BaselineHours)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, time.January, p.StartDate.Month())

	require.Len(t, ds.Tasks, 1)
	task := ds.Tasks[0]
	assert.Equal(t, "p1", task.ProjectID)
	assert.Equal(t, "f1", task.PhaseID)
	assert.True(t, task.IsCritical)
	assert.Equal(t, domain.MethodQuantity, task.ProgressMethod)

	require.Len(t, ds.HourEntries, 1)
	h := ds.HourEntries[0]
	assert.Equal(t, "e1", h.EmployeeID)
	assert.Equal(t, "Fab", h.WorkdayPhase)
}

func TestConvert_CamelCaseWinsWhenBothFormsPresent(t *testing.T) {
	raw, err := Parse([]byte(`{
		"phases": [
			{"id": "f1", "unitId": "u-camel", "unit_id": "u-snake", "name": "Fabrication"}
		]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.Phases, 1)
	assert.Equal(t, "u-camel", ds.Phases[0].UnitID)
}

func TestConvert_DropsRecordsWithoutIDs(t *testing.T) {
	raw, err := Parse([]byte(`{
		"projects": [{"name": "no id"}, {"id": "p1", "name": "kept"}],
		"tasks": [{"name": "orphan row"}]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.Projects, 1)
	assert.Equal(t, "p1", ds.Projects[0].ID)
	assert.Empty(t, ds.Tasks)
}

func TestConvert_QuantityEntryDefaultsToCompleted(t *testing.T) {
	raw, err := Parse([]byte(`{
		"quantity_entries": [
			{"task_id": "t1", "qty": 5},
			{"task_id": "t1", "qty_type": "Produced", "quantity": 3}
		]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.QuantityEntries, 2)
	assert.Equal(t, domain.QtyCompleted, ds.QuantityEntries[0].Type)
	assert.Equal(t, 5.0, ds.QuantityEntries[0].Qty)
	assert.Equal(t, domain.QtyProduced, ds.QuantityEntries[1].Type)
	assert.Equal(t, 3.0, ds.QuantityEntries[1].Qty)
}

func TestConvert_ChangeStatusNormalized(t *testing.T) {
	raw, err := Parse([]byte(`{
		"change_requests": [
			{"id": "cr1", "status": " Approved "},
			{"id": "cr2", "status": "DRAFT"}
		]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.ChangeRequests, 2)
	assert.True(t, ds.ChangeRequests[0].Status.ContributesDeltas())
	assert.False(t, ds.ChangeRequests[1].Status.ContributesDeltas())
}

func TestConvert_HierarchyNodesTagged(t *testing.T) {
	raw, err := Parse([]byte(`{
		"hierarchy_nodes": [
			{"id": "n1", "node_type": "Portfolio", "name": "Energy"},
			{"id": "n2", "nodeType": "customer", "parent_id": "n1", "name": "Acme"}
		],
		"sites": [{"id": "s1", "name": "North Yard"}]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.HierarchyNodes, 2)
	assert.Equal(t, domain.NodePortfolio, ds.HierarchyNodes[0].Type)
	assert.Equal(t, domain.NodeCustomer, ds.HierarchyNodes[1].Type)
	assert.Equal(t, "n1", ds.HierarchyNodes[1].ParentID)

	// Separate arrays get the type stamped from their array.
	require.Len(t, ds.Sites, 1)
	assert.Equal(t, domain.NodeSite, ds.Sites[0].Type)
}

func TestConvert_TaskLinksNormalizeRelationship(t *testing.T) {
	raw, err := Parse([]byte(`{
		"tasks": [
			{"id": "t2", "projectId": "p1", "name": "Paint",
			 "predecessors": [
				{"predecessorTaskId": "t1", "relationship": "fs", "lagDays": 2},
				{"predecessorTaskId": "t0", "relationship": "bogus"}
			 ]}
		]
	}`))
	require.NoError(t, err)

	ds := Convert(raw)
	require.Len(t, ds.Tasks, 1)
	require.Len(t, ds.Tasks[0].Predecessors, 2)
	assert.Equal(t, domain.RelationFS, ds.Tasks[0].Predecessors[0].Relationship)
	assert.Equal(t, 2.0, ds.Tasks[0].Predecessors[0].LagDays)
	assert.Equal(t, domain.RelationFS, ds.Tasks[0].Predecessors[1].Relationship)
}

package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tfournier/girder/internal/contract"
)

func TestFormatScheduleHealth_FindingsAndCoverage(t *testing.T) {
	health := contract.ScheduleHealth{
		Findings: []contract.HealthFinding{
			{TaskID: "t1", TaskName: "Pour slab", Category: "weekend", Detail: "starts on a Saturday"},
			{TaskID: "t2", TaskName: "Set anchors", Category: "constraint", Detail: "must start on 2025-05-01 but starts 2025-05-03"},
		},
		DependencyCoverage: contract.DependencyCoverage{
			LeafTasks:       10,
			LinkedTasks:     4,
			IsolatedTasks:   6,
			CoveragePercent: 40,
		},
	}

	out := FormatScheduleHealth(health)

	assert.Contains(t, out, "Pour slab")
	assert.Contains(t, out, "WEEKEND")
	assert.Contains(t, out, "CONSTRAINT")
	assert.Contains(t, out, "Dependency coverage: 40%")
	assert.Contains(t, out, "6 isolated")
}

func TestFormatScheduleHealth_CleanSchedule(t *testing.T) {
	health := contract.ScheduleHealth{
		DependencyCoverage: contract.DependencyCoverage{LeafTasks: 5, LinkedTasks: 5, CoveragePercent: 100},
	}

	out := FormatScheduleHealth(health)
	assert.Contains(t, out, "No schedule findings")
	assert.Contains(t, out, "100%")
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func TestValidate_CleanDatasetHasNoWarnings(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{{ID: "p1", HasSchedule: true}},
		Tasks:    []*domain.Task{{ID: "t1", ProjectID: "p1", ProgressMethod: domain.MethodHours}},
		ChangeRequests: []*domain.ChangeRequest{{ID: "cr1", Status: domain.ChangeApproved}},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "ci1", ChangeRequestID: "cr1", TaskID: "t1", DeltaHours: 10},
		},
		HourEntries: []*domain.HourEntry{{ID: "h1", ProjectID: "p1", Hours: 8}},
	}

	assert.Empty(t, Validate(ds))
}

func TestValidate_FlagsReferentialProblems(t *testing.T) {
	ds := &domain.Dataset{
		Projects: []*domain.Project{{ID: "p1"}, {ID: "p1"}},
		Tasks:    []*domain.Task{{ID: "t1", ProjectID: "ghost"}},
		ChangeImpacts: []*domain.ChangeImpact{
			{ID: "ci1", ChangeRequestID: "missing-cr", TaskID: "t1"},
			{ID: "ci2", ChangeRequestID: "missing-cr"},
		},
		HourEntries: []*domain.HourEntry{{ID: "h1", Hours: -4}},
	}

	errs := Validate(ds)
	require.NotEmpty(t, errs)

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	assert.Contains(t, msgs, `duplicate project id "p1"`)
	assert.Contains(t, msgs, `task t1: unknown project "ghost"`)
	assert.Contains(t, msgs, `change impact ci1: unknown change request "missing-cr"`)
	assert.Contains(t, msgs, `change impact ci2: no project, phase, or task scope`)
	assert.Contains(t, msgs, `hour entry h1: negative hours -4.00`)
	assert.Contains(t, msgs, `hour entry h1: missing project id`)
}

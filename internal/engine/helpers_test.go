package engine

import (
	"time"

	"github.com/tfournier/girder/internal/domain"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func scheduledProject(id, name string) *domain.Project {
	return &domain.Project{ID: id, Name: name, HasSchedule: true}
}

func task(id, projectID, phaseID, name string) *domain.Task {
	return &domain.Task{ID: id, ProjectID: projectID, PhaseID: phaseID, Name: name}
}

func phase(id, projectID, name string) *domain.Phase {
	return &domain.Phase{ID: id, ProjectID: projectID, Name: name}
}

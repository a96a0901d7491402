package importer

import (
	"fmt"

	"github.com/tfournier/girder/internal/domain"
)

var validProgressMethods = map[domain.ProgressMethod]bool{
	"":                     true, // resolved to a default by the engine
	domain.MethodHours:     true,
	domain.MethodQuantity:  true,
	domain.MethodMilestone: true,
}

// Validate inspects a canonical dataset for referential problems. The engine
// degrades gracefully on all of these, so callers treat the result as
// warnings to surface, never as a reason to refuse derivation.
func Validate(ds *domain.Dataset) []error {
	var errs []error

	errs = append(errs, checkDuplicateIDs(ds)...)

	projects := make(map[string]bool, len(ds.Projects))
	for _, p := range ds.Projects {
		projects[p.ID] = true
	}

	for _, t := range ds.Tasks {
		if t.ProjectID != "" && !projects[t.ProjectID] {
			errs = append(errs, fmt.Errorf("task %s: unknown project %q", t.ID, t.ProjectID))
		}
		if !validProgressMethods[t.ProgressMethod] {
			errs = append(errs, fmt.Errorf("task %s: unknown progress method %q", t.ID, t.ProgressMethod))
		}
	}

	requests := make(map[string]bool, len(ds.ChangeRequests))
	for _, cr := range ds.ChangeRequests {
		requests[cr.ID] = true
	}
	for _, imp := range ds.ChangeImpacts {
		if !requests[imp.ChangeRequestID] {
			errs = append(errs, fmt.Errorf("change impact %s: unknown change request %q", imp.ID, imp.ChangeRequestID))
		}
		if imp.ProjectID == "" && imp.PhaseID == "" && imp.TaskID == "" {
			errs = append(errs, fmt.Errorf("change impact %s: no project, phase, or task scope", imp.ID))
		}
	}

	for _, h := range ds.HourEntries {
		if h.Hours < 0 {
			errs = append(errs, fmt.Errorf("hour entry %s: negative hours %.2f", h.ID, h.Hours))
		}
		if h.ProjectID == "" {
			errs = append(errs, fmt.Errorf("hour entry %s: missing project id", h.ID))
		}
	}

	return errs
}

func checkDuplicateIDs(ds *domain.Dataset) []error {
	var errs []error

	check := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
			}
			seen[id] = true
		}
	}

	projectIDs := make([]string, 0, len(ds.Projects))
	for _, p := range ds.Projects {
		projectIDs = append(projectIDs, p.ID)
	}
	check("project", projectIDs)

	taskIDs := make([]string, 0, len(ds.Tasks))
	for _, t := range ds.Tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	check("task", taskIDs)

	phaseIDs := make([]string, 0, len(ds.Phases))
	for _, p := range ds.Phases {
		phaseIDs = append(phaseIDs, p.ID)
	}
	check("phase", phaseIDs)

	return errs
}

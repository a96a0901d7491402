package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

const (
	HealthConstraint    = "constraint"
	HealthWeekend       = "weekend"
	HealthNegativeSlack = "negativeSlack"
	HealthIsolated      = "isolated"
)

// BuildScheduleHealth audits the visible tasks for schedule hygiene
// problems: violated date constraints, weekend starts or finishes, negative
// total slack, and leaf tasks with no dependency links. Summary rows are
// containers, not work, and are skipped.
func BuildScheduleHealth(tasks []*domain.Task) contract.ScheduleHealth {
	out := contract.ScheduleHealth{Findings: []contract.HealthFinding{}}

	for _, t := range tasks {
		if t.IsSummary {
			continue
		}

		if f := checkConstraint(t); f != nil {
			out.Findings = append(out.Findings, *f)
		}
		if t.StartDate != nil && isWeekend(*t.StartDate) {
			out.Findings = append(out.Findings, finding(t, HealthWeekend,
				fmt.Sprintf("starts on a %s", t.StartDate.Weekday())))
		}
		if t.EndDate != nil && isWeekend(*t.EndDate) {
			out.Findings = append(out.Findings, finding(t, HealthWeekend,
				fmt.Sprintf("finishes on a %s", t.EndDate.Weekday())))
		}
		if t.TotalSlack != nil && *t.TotalSlack < 0 {
			out.Findings = append(out.Findings, finding(t, HealthNegativeSlack,
				fmt.Sprintf("total slack %.1f days", *t.TotalSlack)))
		}

		out.DependencyCoverage.LeafTasks++
		if len(t.Predecessors) == 0 && len(t.Successors) == 0 {
			out.DependencyCoverage.IsolatedTasks++
			out.Findings = append(out.Findings, finding(t, HealthIsolated,
				"no predecessor or successor links"))
		} else {
			out.DependencyCoverage.LinkedTasks++
		}
	}

	if out.DependencyCoverage.LeafTasks > 0 {
		out.DependencyCoverage.CoveragePercent = clampPercent(
			float64(out.DependencyCoverage.LinkedTasks) /
				float64(out.DependencyCoverage.LeafTasks) * 100)
	}
	return out
}

func checkConstraint(t *domain.Task) *contract.HealthFinding {
	if t.ConstraintDate == nil {
		return nil
	}
	switch normalizeConstraint(t.ConstraintType) {
	case "muststarton":
		if t.StartDate != nil && !sameDay(*t.StartDate, *t.ConstraintDate) {
			f := finding(t, HealthConstraint, fmt.Sprintf(
				"must start on %s but starts %s",
				t.ConstraintDate.Format(dayLayout), t.StartDate.Format(dayLayout)))
			return &f
		}
	case "startnoearlierthan":
		if t.StartDate != nil && t.StartDate.Before(*t.ConstraintDate) {
			f := finding(t, HealthConstraint, fmt.Sprintf(
				"starts %s, earlier than allowed %s",
				t.StartDate.Format(dayLayout), t.ConstraintDate.Format(dayLayout)))
			return &f
		}
	case "finishnolaterthan":
		if t.EndDate != nil && t.EndDate.After(*t.ConstraintDate) {
			f := finding(t, HealthConstraint, fmt.Sprintf(
				"finishes %s, later than allowed %s",
				t.EndDate.Format(dayLayout), t.ConstraintDate.Format(dayLayout)))
			return &f
		}
	}
	return nil
}

func finding(t *domain.Task, category, detail string) contract.HealthFinding {
	return contract.HealthFinding{
		TaskID:   t.ID,
		TaskName: t.Name,
		Category: category,
		Detail:   detail,
	}
}

func normalizeConstraint(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

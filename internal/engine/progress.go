package engine

import (
	"math"
	"strings"

	"github.com/tfournier/girder/internal/domain"
)

// milestoneStatusWeights maps a normalized milestone status to a percent
// complete when the milestone carries no explicit percentage.
var milestoneStatusWeights = map[string]float64{
	"completed":        100,
	"complete":         100,
	"done":             100,
	"ready for review": 80,
	"in progress":      65,
	"at risk":          45,
	"on hold":          25,
	"delayed":          20,
	"blocked":          10,
	"not started":      0,
	"missed":           0,
}

// TaskProgress is the derived progress picture of one task, computed from
// its change-control-adjusted baseline.
type TaskProgress struct {
	TaskID          string
	Method          domain.ProgressMethod
	PercentComplete float64
	EarnedHours     float64
	// Efficiency is earned over actual hours as a percentage, nil when no
	// hours were burned yet.
	Efficiency     *float64
	RemainingHours float64
	CompletedQty   float64
	ProducedQty    float64
}

// ComputeProgress derives percent complete, earned hours, efficiency, and
// remaining hours for every adjusted task, keyed by task id.
func ComputeProgress(tasks []*domain.Task, idx *Index) map[string]TaskProgress {
	out := make(map[string]TaskProgress, len(tasks))
	for _, t := range tasks {
		out[t.ID] = computeTaskProgress(t, idx)
	}
	return out
}

func computeTaskProgress(t *domain.Task, idx *Index) TaskProgress {
	completed := domain.Float64FromPtrWithDefault(0, t.CompletedQty)
	produced := 0.0
	for _, q := range idx.QuantitiesByTask[t.ID] {
		switch q.Type {
		case domain.QtyCompleted:
			completed += q.Qty
		case domain.QtyProduced:
			produced += q.Qty
		}
	}

	method := resolveMethod(t)
	baseHours := domain.Float64FromPtrWithDefault(0, t.BaselineHours)
	actualHours := domain.Float64FromPtrWithDefault(0, t.ActualHours)

	var pct float64
	switch method {
	case domain.MethodQuantity:
		baseQty := domain.Float64FromPtrWithDefault(0, t.BaselineQty)
		if baseQty > 0 {
			pct = completed / baseQty * 100
		}
	case domain.MethodMilestone:
		pct = milestonePercent(t, idx, baseHours, actualHours)
	default:
		pct = hoursPercent(baseHours, actualHours)
	}
	pct = clampPercent(pct)

	earned := baseHours * pct / 100

	var efficiency *float64
	if actualHours > 0 {
		e := clampPercent(earned / actualHours * 100)
		efficiency = &e
	}

	remaining := math.Max(0, baseHours-actualHours)
	if t.RemainingHours != nil {
		// Schedule import already states the remaining work; honor it.
		remaining = *t.RemainingHours
	}

	return TaskProgress{
		TaskID:          t.ID,
		Method:          method,
		PercentComplete: pct,
		EarnedHours:     earned,
		Efficiency:      efficiency,
		RemainingHours:  remaining,
		CompletedQty:    completed,
		ProducedQty:     produced,
	}
}

func resolveMethod(t *domain.Task) domain.ProgressMethod {
	switch t.ProgressMethod {
	case domain.MethodHours, domain.MethodQuantity, domain.MethodMilestone:
		return t.ProgressMethod
	}
	if t.IsMilestone {
		return domain.MethodMilestone
	}
	return domain.MethodHours
}

func milestonePercent(t *domain.Task, idx *Index, baseHours, actualHours float64) float64 {
	m := idx.MilestonesByID[t.MilestoneID]
	if m == nil {
		return hoursPercent(baseHours, actualHours)
	}
	if m.PercentComplete != nil {
		return *m.PercentComplete
	}
	if w, ok := milestoneStatusWeights[normalizeStatus(m.Status)]; ok {
		return w
	}
	return hoursPercent(baseHours, actualHours)
}

func hoursPercent(baseHours, actualHours float64) float64 {
	if baseHours <= 0 {
		return 0
	}
	return actualHours / baseHours * 100
}

// normalizeStatus lowercases and collapses separators so "At-Risk",
// "at_risk", and "AT RISK" all hit the same weight-table row.
func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

func clampPercent(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

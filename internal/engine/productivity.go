package engine

import (
	"github.com/tfournier/girder/internal/domain"
)

// ProductivityRow is the unit-productivity picture at one grain. Ratio
// fields are nil when their denominator is zero rather than carrying NaN.
type ProductivityRow struct {
	ID        string
	Name      string
	ProjectID string
	PhaseID   string

	BaselineQty   float64
	ActualQty     float64
	ProducedQty   float64
	BaselineHours float64
	ActualHours   float64

	ExpectedUnitsPerHour *float64
	UnitsPerHour         *float64
	HrsPerUnit           *float64
	ProductivityVariance *float64
	PerformingMetric     *float64
}

// ComputeProductivity builds the task, phase, and project productivity
// tables from adjusted tasks. Phase and project grains sum the raw
// quantities and hours of their tasks first and apply the ratio formulas to
// the sums — never by averaging child ratios.
func ComputeProductivity(tasks []*domain.Task, idx *Index, progress map[string]TaskProgress) (taskRows, phaseRows, projectRows []ProductivityRow) {
	type agg struct {
		id, name, projectID string
		baselineQty         float64
		actualQty           float64
		producedQty         float64
		baselineHours       float64
		actualHours         float64
	}

	phaseAggs := make(map[string]*agg)
	projectAggs := make(map[string]*agg)
	var phaseOrder, projectOrder []string

	for _, t := range tasks {
		if idx.ProjectsByID[t.ProjectID] != nil && !idx.ProjectsByID[t.ProjectID].HasSchedule {
			continue
		}
		p := progress[t.ID]
		baseQty := domain.Float64FromPtrWithDefault(0, t.BaselineQty)
		baseHours := domain.Float64FromPtrWithDefault(0, t.BaselineHours)
		actualHours := domain.Float64FromPtrWithDefault(0, t.ActualHours)

		if baseQty > 0 {
			row := ProductivityRow{
				ID:            t.ID,
				Name:          t.Name,
				ProjectID:     t.ProjectID,
				PhaseID:       t.PhaseID,
				BaselineQty:   baseQty,
				ActualQty:     p.CompletedQty,
				ProducedQty:   p.ProducedQty,
				BaselineHours: baseHours,
				ActualHours:   actualHours,
			}
			fillRatios(&row)
			taskRows = append(taskRows, row)
		}

		if t.PhaseID != "" {
			a := phaseAggs[t.PhaseID]
			if a == nil {
				name := ""
				if ph := idx.PhasesByID[t.PhaseID]; ph != nil {
					name = ph.Name
				}
				a = &agg{id: t.PhaseID, name: name, projectID: t.ProjectID}
				phaseAggs[t.PhaseID] = a
				phaseOrder = append(phaseOrder, t.PhaseID)
			}
			a.baselineQty += baseQty
			a.actualQty += p.CompletedQty
			a.producedQty += p.ProducedQty
			a.baselineHours += baseHours
			a.actualHours += actualHours
		}

		if t.ProjectID != "" {
			a := projectAggs[t.ProjectID]
			if a == nil {
				name := ""
				if proj := idx.ProjectsByID[t.ProjectID]; proj != nil {
					name = proj.Name
				}
				a = &agg{id: t.ProjectID, name: name, projectID: t.ProjectID}
				projectAggs[t.ProjectID] = a
				projectOrder = append(projectOrder, t.ProjectID)
			}
			a.baselineQty += baseQty
			a.actualQty += p.CompletedQty
			a.producedQty += p.ProducedQty
			a.baselineHours += baseHours
			a.actualHours += actualHours
		}
	}

	rowFromAgg := func(a *agg, phaseID string) ProductivityRow {
		row := ProductivityRow{
			ID:            a.id,
			Name:          a.name,
			ProjectID:     a.projectID,
			PhaseID:       phaseID,
			BaselineQty:   a.baselineQty,
			ActualQty:     a.actualQty,
			ProducedQty:   a.producedQty,
			BaselineHours: a.baselineHours,
			ActualHours:   a.actualHours,
		}
		fillRatios(&row)
		return row
	}

	for _, id := range phaseOrder {
		if a := phaseAggs[id]; a.baselineQty > 0 {
			phaseRows = append(phaseRows, rowFromAgg(a, id))
		}
	}
	for _, id := range projectOrder {
		if a := projectAggs[id]; a.baselineQty > 0 {
			projectRows = append(projectRows, rowFromAgg(a, ""))
		}
	}

	return taskRows, phaseRows, projectRows
}

func fillRatios(row *ProductivityRow) {
	if row.BaselineQty > 0 && row.BaselineHours > 0 {
		expected := row.BaselineQty / row.BaselineHours
		row.ExpectedUnitsPerHour = &expected

		hrsPerUnit := row.BaselineHours / row.BaselineQty
		row.HrsPerUnit = &hrsPerUnit
	}
	if row.ActualHours > 0 {
		units := row.ActualQty / row.ActualHours
		row.UnitsPerHour = &units
	}
	if row.ExpectedUnitsPerHour != nil && row.UnitsPerHour != nil {
		variance := *row.UnitsPerHour - *row.ExpectedUnitsPerHour
		row.ProductivityVariance = &variance
		if *row.ExpectedUnitsPerHour > 0 {
			performing := *row.UnitsPerHour / *row.ExpectedUnitsPerHour * 100
			row.PerformingMetric = &performing
		}
	}
}

package engine

import (
	"time"

	"github.com/tfournier/girder/internal/domain"
)

// Delta is the accumulated approved-change adjustment for one entity.
type Delta struct {
	Hours     float64
	Cost      float64
	StartDays float64
	EndDays   float64
	Qty       float64
}

func (d Delta) isZero() bool {
	return d.Hours == 0 && d.Cost == 0 && d.StartDays == 0 && d.EndDays == 0 && d.Qty == 0
}

// CostAgg splits non-labor cost transactions for one entity: non-accrual
// amounts are actual spend, accrual amounts are forecast.
type CostAgg struct {
	Actual   float64
	Forecast float64
}

// Adjusted carries change-control-adjusted copies of the schedule entities,
// in input order, plus the per-entity delta and cost aggregates the summary
// and budget views report from. The input dataset is never touched.
type Adjusted struct {
	Tasks    []*domain.Task
	SubTasks []*domain.SubTask
	Phases   []*domain.Phase
	Projects []*domain.Project

	TaskDeltas    map[string]Delta
	PhaseDeltas   map[string]Delta
	ProjectDeltas map[string]Delta

	TaskCosts    map[string]CostAgg
	PhaseCosts   map[string]CostAgg
	ProjectCosts map[string]CostAgg
}

// ApplyChangeControl folds approved baseline deltas and non-labor cost
// aggregates into adjusted entity copies. Each scope level reads only the
// deltas explicitly addressed to it — a task delta never bubbles into its
// phase, so there is no double counting. With zero approved impacts the
// output baselines are byte-identical to the input.
func ApplyChangeControl(ds *domain.Dataset) *Adjusted {
	adj := &Adjusted{
		TaskDeltas:    make(map[string]Delta),
		PhaseDeltas:   make(map[string]Delta),
		ProjectDeltas: make(map[string]Delta),
		TaskCosts:     make(map[string]CostAgg),
		PhaseCosts:    make(map[string]CostAgg),
		ProjectCosts:  make(map[string]CostAgg),
	}

	approved := make(map[string]bool, len(ds.ChangeRequests))
	for _, cr := range ds.ChangeRequests {
		if cr.Status.ContributesDeltas() {
			approved[cr.ID] = true
		}
	}

	for _, imp := range ds.ChangeImpacts {
		if !approved[imp.ChangeRequestID] {
			continue
		}
		d := Delta{
			Hours:     imp.DeltaHours,
			Cost:      imp.DeltaCost,
			StartDays: imp.DeltaStartDays,
			EndDays:   imp.DeltaEndDays,
			Qty:       imp.DeltaQty,
		}
		switch {
		case imp.TaskID != "":
			adj.TaskDeltas[imp.TaskID] = addDelta(adj.TaskDeltas[imp.TaskID], d)
		case imp.PhaseID != "":
			adj.PhaseDeltas[imp.PhaseID] = addDelta(adj.PhaseDeltas[imp.PhaseID], d)
		case imp.ProjectID != "":
			adj.ProjectDeltas[imp.ProjectID] = addDelta(adj.ProjectDeltas[imp.ProjectID], d)
		}
	}

	for _, tx := range ds.CostTransactions {
		agg := CostAgg{}
		if tx.IsAccrual {
			agg.Forecast = tx.Amount
		} else {
			agg.Actual = tx.Amount
		}
		switch {
		case tx.TaskID != "":
			adj.TaskCosts[tx.TaskID] = addCost(adj.TaskCosts[tx.TaskID], agg)
		case tx.PhaseID != "":
			adj.PhaseCosts[tx.PhaseID] = addCost(adj.PhaseCosts[tx.PhaseID], agg)
		case tx.ProjectID != "":
			adj.ProjectCosts[tx.ProjectID] = addCost(adj.ProjectCosts[tx.ProjectID], agg)
		}
	}

	for _, t := range ds.Tasks {
		adj.Tasks = append(adj.Tasks, adjustTask(t, adj.TaskDeltas[t.ID], adj.TaskCosts[t.ID]))
	}
	for _, st := range ds.SubTasks {
		adj.SubTasks = append(adj.SubTasks, adjustSubTask(st, adj.TaskDeltas[st.ID]))
	}
	for _, ph := range ds.Phases {
		adj.Phases = append(adj.Phases, adjustPhase(ph, adj.PhaseDeltas[ph.ID]))
	}
	for _, p := range ds.Projects {
		adj.Projects = append(adj.Projects, adjustProject(p, adj.ProjectDeltas[p.ID], adj.ProjectCosts[p.ID]))
	}

	return adj
}

func adjustTask(t *domain.Task, d Delta, cost CostAgg) *domain.Task {
	out := *t
	out.BaselineHours = applyDelta(out.BaselineHours, d.Hours)
	out.BaselineCost = applyDelta(out.BaselineCost, d.Cost)
	out.BaselineQty = applyDelta(out.BaselineQty, d.Qty)
	out.StartDate = shiftDate(out.StartDate, d.StartDays)
	out.EndDate = shiftDate(out.EndDate, d.EndDays)
	if cost.Actual != 0 {
		out.ActualCost = applyDelta(out.ActualCost, cost.Actual)
	}
	return &out
}

func adjustSubTask(st *domain.SubTask, d Delta) *domain.SubTask {
	out := *st
	out.BaselineHours = applyDelta(out.BaselineHours, d.Hours)
	out.BaselineCost = applyDelta(out.BaselineCost, d.Cost)
	out.StartDate = shiftDate(out.StartDate, d.StartDays)
	out.EndDate = shiftDate(out.EndDate, d.EndDays)
	return &out
}

func adjustPhase(ph *domain.Phase, d Delta) *domain.Phase {
	out := *ph
	out.BaselineHours = applyDelta(out.BaselineHours, d.Hours)
	out.StartDate = shiftDate(out.StartDate, d.StartDays)
	out.EndDate = shiftDate(out.EndDate, d.EndDays)
	return &out
}

func adjustProject(p *domain.Project, d Delta, cost CostAgg) *domain.Project {
	out := *p
	out.BaselineHours = applyDelta(out.BaselineHours, d.Hours)
	out.BaselineCost = applyDelta(out.BaselineCost, d.Cost)
	out.StartDate = shiftDate(out.StartDate, d.StartDays)
	out.EndDate = shiftDate(out.EndDate, d.EndDays)
	if cost.Actual != 0 {
		out.ActualCost = applyDelta(out.ActualCost, cost.Actual)
	}
	return &out
}

// applyDelta adds a delta onto an optional baseline. A zero delta leaves the
// pointer untouched (including nil), so an idle change-control pass is a
// strict no-op.
func applyDelta(base *float64, delta float64) *float64 {
	if delta == 0 {
		return base
	}
	v := delta
	if base != nil {
		v += *base
	}
	return &v
}

func shiftDate(t *time.Time, days float64) *time.Time {
	if t == nil || days == 0 {
		return t
	}
	shifted := t.AddDate(0, 0, int(days))
	return &shifted
}

func addDelta(a, b Delta) Delta {
	a.Hours += b.Hours
	a.Cost += b.Cost
	a.StartDays += b.StartDays
	a.EndDays += b.EndDays
	a.Qty += b.Qty
	return a
}

func addCost(a, b CostAgg) CostAgg {
	a.Actual += b.Actual
	a.Forecast += b.Forecast
	return a
}

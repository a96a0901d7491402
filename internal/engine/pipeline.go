package engine

import (
	"log/slog"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

// Engine runs the full derivation pipeline. It owns the memo caches but is
// otherwise stateless: every call derives purely from the dataset it is
// handed. Not safe for concurrent use; callers run one derivation at a
// time.
type Engine struct {
	logger *slog.Logger
	weeks  *WeekCache
	memo   deriveMemo
}

func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, weeks: NewWeekCache()}
}

// Derive produces the complete output for one dataset: change-control
// adjustment, hour matching, progress, the rolled-up tree, and every series
// section. A repeat call whose structural counts match the previous one is
// served from the memo.
func (e *Engine) Derive(ds *domain.Dataset) *contract.DeriveResult {
	key := fingerprint(ds.Counts())
	if cached, ok := e.memo.get(key); ok {
		e.logger.Debug("derivation served from memo")
		return cached
	}

	result := e.derive(ds)
	e.memo.put(key, result)
	return result
}

func (e *Engine) derive(ds *domain.Dataset) *contract.DeriveResult {
	adjusted := ApplyChangeControl(ds)
	dsAdj := *ds
	dsAdj.Tasks = adjusted.Tasks
	dsAdj.SubTasks = adjusted.SubTasks
	dsAdj.Phases = adjusted.Phases
	dsAdj.Projects = adjusted.Projects

	idx := BuildIndex(&dsAdj)
	matched, decisions := MatchHours(ds.HourEntries, idx, e.logger)

	visibleTasks := make([]*domain.Task, 0, len(dsAdj.Tasks))
	for _, t := range dsAdj.Tasks {
		if idx.TasksByID[t.ID] != nil {
			visibleTasks = append(visibleTasks, t)
		}
	}

	progress := ComputeProgress(visibleTasks, idx)
	tree := BuildWBS(idx, progress)
	taskRows, phaseRows, projectRows := ComputeProductivity(visibleTasks, idx, progress)

	result := contract.NewDeriveResult()
	asOf := LatestDate(ds)
	result.AsOf = contract.FormatDatePtr(asOf)

	result.WBSData.Items = treeToItems(tree)
	result.Hierarchy = buildHierarchyItems(tree)

	result.TaskProductivity = productivityItems(taskRows, "task")
	result.PhaseProductivity = productivityItems(phaseRows, "phase")
	result.ProjectProductivity = productivityItems(projectRows, "project")

	result.ChangeControlSummary = SummarizeChangeControl(ds, idx)
	result.ScheduleHealth = BuildScheduleHealth(visibleTasks)

	result.SCurve = BuildSCurve(visibleTasks, matched, e.weeks)
	result.LaborBreakdown = BuildLaborBreakdown(matched)
	result.ResourceHeatmap = BuildResourceHeatmap(matched, idx)

	totals := treeTotals(tree)
	result.EVM = evmSummary(ComputeEVM(totals.baselineCost, totals.actualCost, totals.percent))
	result.Forecast = BuildForecast(totals.remainingHours, totals.actualHoursValue(), matched, asOf)
	result.Forecast.ProjectedCost = result.EVM.EAC

	result.Milestones, result.MilestoneStatus = BuildMilestones(ds.Milestones)
	result.QualityMetrics = BuildQualityMetrics(ds, matched, 0)
	result.MatchReport = matchReport(decisions)

	return result
}

// BuildSnapshot derives the point-in-time payload for one scope. Chart
// sections outside the requested view keep their empty defaults.
func (e *Engine) BuildSnapshot(ds *domain.Dataset, scope domain.SnapshotScope, scopeID string, view domain.SnapshotView) *contract.SnapshotPayload {
	scoped := filterToScope(ds, scope, scopeID)
	full := e.derive(scoped)

	payload := &contract.SnapshotPayload{
		Scope:        string(scope),
		ScopeID:      scopeID,
		ScopeName:    scopeName(ds, scope, scopeID),
		View:         string(view),
		SnapshotDate: full.AsOf,
		Metrics:      full.EVM,
		Charts:       contract.NewSnapshotCharts(),
	}

	wants := func(v domain.SnapshotView) bool { return view == domain.ViewAll || view == v }
	if wants(domain.ViewSCurve) {
		payload.Charts.SCurve = full.SCurve
	}
	if wants(domain.ViewLabor) {
		payload.Charts.LaborBreakdown = full.LaborBreakdown
	}
	if wants(domain.ViewHeatmap) {
		payload.Charts.ResourceHeatmap = full.ResourceHeatmap
	}
	if wants(domain.ViewForecast) {
		payload.Charts.Forecast = full.Forecast
	}
	if wants(domain.ViewMilestones) {
		payload.Charts.MilestoneStatus = full.MilestoneStatus
	}
	if wants(domain.ViewBudget) {
		payload.Charts.Budget = BuildBudget(&full.EVM.BAC, &full.EVM.AC, full.EVM.EAC)
	}
	if wants(domain.ViewQuality) {
		payload.Charts.QualityMetrics = full.QualityMetrics
	}
	return payload
}

// filterToScope restricts the dataset to the projects under one scope node.
// Scope "all" passes the dataset through untouched.
func filterToScope(ds *domain.Dataset, scope domain.SnapshotScope, scopeID string) *domain.Dataset {
	if scope == domain.ScopeAll || scopeID == "" {
		return ds
	}

	idx := BuildIndex(ds)
	keep := scopeProjectIDs(idx, scope, scopeID)

	out := &domain.Dataset{
		Portfolios:     ds.Portfolios,
		Customers:      ds.Customers,
		Sites:          ds.Sites,
		Units:          ds.Units,
		HierarchyNodes: ds.HierarchyNodes,
		Employees:      ds.Employees,
	}
	taskIDs := make(map[string]bool)
	crIDs := make(map[string]bool)

	for _, p := range ds.Projects {
		if keep[p.ID] {
			out.Projects = append(out.Projects, p)
		}
	}
	for _, ph := range ds.Phases {
		if keep[ph.ProjectID] {
			out.Phases = append(out.Phases, ph)
		}
	}
	for _, t := range ds.Tasks {
		if keep[t.ProjectID] {
			out.Tasks = append(out.Tasks, t)
			taskIDs[t.ID] = true
		}
	}
	for _, st := range ds.SubTasks {
		if taskIDs[st.TaskID] {
			out.SubTasks = append(out.SubTasks, st)
		}
	}
	for _, q := range ds.QuantityEntries {
		if taskIDs[q.TaskID] {
			out.QuantityEntries = append(out.QuantityEntries, q)
		}
	}
	for _, h := range ds.HourEntries {
		if keep[h.ProjectID] || taskIDs[h.TaskID] {
			out.HourEntries = append(out.HourEntries, h)
		}
	}
	for _, cr := range ds.ChangeRequests {
		if keep[cr.ProjectID] {
			out.ChangeRequests = append(out.ChangeRequests, cr)
			crIDs[cr.ID] = true
		}
	}
	for _, imp := range ds.ChangeImpacts {
		if crIDs[imp.ChangeRequestID] || keep[imp.ProjectID] || taskIDs[imp.TaskID] {
			out.ChangeImpacts = append(out.ChangeImpacts, imp)
		}
	}
	for _, ct := range ds.CostTransactions {
		if keep[ct.ProjectID] || taskIDs[ct.TaskID] {
			out.CostTransactions = append(out.CostTransactions, ct)
		}
	}
	for _, m := range ds.Milestones {
		if keep[m.ProjectID] {
			out.Milestones = append(out.Milestones, m)
		}
	}
	return out
}

// scopeProjectIDs resolves which visible projects sit under the scope node,
// walking the hierarchy downward for portfolio/customer/site scopes.
func scopeProjectIDs(idx *Index, scope domain.SnapshotScope, scopeID string) map[string]bool {
	keep := make(map[string]bool)
	addSite := func(siteID string) {
		for _, p := range idx.ProjectsBySite[siteID] {
			keep[p.ID] = true
		}
		for _, u := range idx.UnitsBySite[siteID] {
			for _, p := range idx.ProjectsByUnit[u.ID] {
				keep[p.ID] = true
			}
		}
	}
	addCustomer := func(customerID string) {
		for _, p := range idx.ProjectsByCustomer[customerID] {
			keep[p.ID] = true
		}
		for _, s := range idx.SitesByCustomer[customerID] {
			addSite(s.ID)
		}
	}

	switch scope {
	case domain.ScopeProject:
		if p := idx.ProjectsByID[scopeID]; p != nil && p.HasSchedule {
			keep[scopeID] = true
		}
	case domain.ScopeSite:
		addSite(scopeID)
	case domain.ScopeCustomer:
		addCustomer(scopeID)
	case domain.ScopePortfolio:
		for _, p := range idx.ProjectsByPortfolio[scopeID] {
			keep[p.ID] = true
		}
		for _, c := range idx.CustomersByPortfolio[scopeID] {
			addCustomer(c.ID)
		}
	}
	return keep
}

func scopeName(ds *domain.Dataset, scope domain.SnapshotScope, scopeID string) string {
	switch scope {
	case domain.ScopeProject:
		for _, p := range ds.Projects {
			if p.ID == scopeID {
				return p.Name
			}
		}
	case domain.ScopePortfolio, domain.ScopeCustomer, domain.ScopeSite:
		idx := BuildIndex(ds)
		for _, arr := range [][]*domain.HierarchyNode{idx.Portfolios, idx.Customers, idx.Sites} {
			for _, n := range arr {
				if n.ID == scopeID {
					return n.Name
				}
			}
		}
	}
	return ""
}

type rootTotals struct {
	baselineCost   *float64
	actualCost     *float64
	actualHours    *float64
	remainingHours float64
	percent        float64
}

func (t rootTotals) actualHoursValue() float64 {
	return domain.Float64FromPtrWithDefault(0, t.actualHours)
}

// treeTotals aggregates the rolled-up roots into one synthetic scope total.
// Percent is the unweighted mean of root percents, matching the rollup
// rule one level down.
func treeTotals(tree *WBSTree) rootTotals {
	var totals rootTotals
	var baseCost, actCost, actHours float64
	var haveBaseCost, haveActCost, haveActHours bool
	var pctSum float64
	var pctCount int

	for _, r := range tree.Roots {
		node := &tree.Nodes[r]
		if node.BaselineCost != nil {
			baseCost += *node.BaselineCost
			haveBaseCost = true
		}
		if node.ActualCost != nil {
			actCost += *node.ActualCost
			haveActCost = true
		}
		if node.ActualHours != nil {
			actHours += *node.ActualHours
			haveActHours = true
		}
		if node.PercentComplete != nil {
			pctSum += *node.PercentComplete
			pctCount++
		}
		totals.remainingHours += node.RemainingHours
	}
	if haveBaseCost {
		totals.baselineCost = &baseCost
	}
	if haveActCost {
		totals.actualCost = &actCost
	}
	if haveActHours {
		totals.actualHours = &actHours
	}
	if pctCount > 0 {
		totals.percent = pctSum / float64(pctCount)
	}
	return totals
}

func treeToItems(tree *WBSTree) []contract.WBSItem {
	items := make([]contract.WBSItem, 0, len(tree.Roots))
	for _, r := range tree.Roots {
		items = append(items, nodeToItem(tree, r))
	}
	return items
}

func nodeToItem(tree *WBSTree, id int) contract.WBSItem {
	n := &tree.Nodes[id]
	item := contract.WBSItem{
		ID:              n.EntityID,
		WBSCode:         n.WBSCode,
		Kind:            string(n.Kind),
		Name:            n.Name,
		StartDate:       contract.FormatDatePtr(n.StartDate),
		EndDate:         contract.FormatDatePtr(n.EndDate),
		BaselineHours:   n.BaselineHours,
		ActualHours:     n.ActualHours,
		BaselineCost:    n.BaselineCost,
		ActualCost:      n.ActualCost,
		PercentComplete: n.PercentComplete,
		RemainingHours:  n.RemainingHours,
		DaysRequired:    n.DaysRequired,
		TaskCount:       n.TaskCount,
		Method:          string(n.Method),
		Efficiency:      n.Efficiency,
		IsCritical:      n.IsCritical,
		IsMilestone:     n.IsMilestone,
		Children:        make([]contract.WBSItem, 0, len(n.Children)),
	}
	for _, cid := range n.Children {
		item.Children = append(item.Children, nodeToItem(tree, cid))
	}
	return item
}

// buildHierarchyItems reduces the tree to the id/name/kind filter view the
// scope pickers consume. Task-level nodes are omitted.
func buildHierarchyItems(tree *WBSTree) []contract.HierarchyItem {
	items := make([]contract.HierarchyItem, 0, len(tree.Roots))
	for _, r := range tree.Roots {
		if item, ok := nodeToHierarchyItem(tree, r); ok {
			items = append(items, item)
		}
	}
	return items
}

func nodeToHierarchyItem(tree *WBSTree, id int) (contract.HierarchyItem, bool) {
	n := &tree.Nodes[id]
	if n.Kind == KindTask {
		return contract.HierarchyItem{}, false
	}
	item := contract.HierarchyItem{
		ID:       n.EntityID,
		Name:     n.Name,
		Kind:     string(n.Kind),
		Children: []contract.HierarchyItem{},
	}
	for _, cid := range n.Children {
		if child, ok := nodeToHierarchyItem(tree, cid); ok {
			item.Children = append(item.Children, child)
		}
	}
	return item, true
}

func productivityItems(rows []ProductivityRow, grain string) []contract.ProductivityItem {
	items := make([]contract.ProductivityItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, contract.ProductivityItem{
			ID:                   r.ID,
			Name:                 r.Name,
			Grain:                grain,
			BaselineQty:          r.BaselineQty,
			CompletedQty:         r.ActualQty,
			ProducedQty:          r.ProducedQty,
			BaselineHours:        r.BaselineHours,
			ActualHours:          r.ActualHours,
			ExpectedUnitsPerHour: r.ExpectedUnitsPerHour,
			UnitsPerHour:         r.UnitsPerHour,
			HoursPerUnit:         r.HrsPerUnit,
			Variance:             r.ProductivityVariance,
			PerformingMetric:     r.PerformingMetric,
		})
	}
	return items
}

func matchReport(decisions []MatchDecision) contract.MatchReport {
	report := contract.MatchReport{Decisions: make([]contract.MatchDecision, 0, len(decisions))}
	for _, d := range decisions {
		report.Total++
		switch d.Method {
		case MatchExact:
			report.Exact++
		case MatchRelaxed:
			report.Relaxed++
		case MatchContainment:
			report.Contained++
		default:
			report.Unmatched++
		}
		report.Decisions = append(report.Decisions, contract.MatchDecision{
			EntryID:    d.EntryID,
			TaskID:     d.TaskID,
			Method:     string(d.Method),
			Candidates: d.Candidates,
		})
	}
	return report
}

func evmSummary(m EVMetrics) contract.EVMSummary {
	return contract.EVMSummary{
		BAC:              m.BAC,
		PV:               m.PV,
		EV:               m.EV,
		AC:               m.AC,
		CPI:              m.CPI,
		SPI:              m.SPI,
		EAC:              m.EAC,
		ETC:              m.ETC,
		VAC:              m.VAC,
		TCPI:             m.TCPI,
		CostVariance:     m.CostVariance,
		ScheduleVariance: m.ScheduleVariance,
		PercentComplete:  m.PercentComplete,
		PercentSpent:     m.PercentSpent,
	}
}

package engine

import (
	"sort"
	"time"

	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	labelLayout = "Jan 02"
)

// weekKey normalizes any timestamp to the canonical day string of its
// week's Monday. Entries from heterogeneous date sources land in the same
// bucket as long as they fall in the same ISO week.
func weekKey(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset).Format(dayLayout)
}

func monthKey(t time.Time) string {
	return t.Format(monthLayout)
}

func weekLabel(key string) string {
	t, err := time.Parse(dayLayout, key)
	if err != nil {
		return key
	}
	return t.Format(labelLayout)
}

// LatestDate scans every dated record and returns the maximum date present.
// This is the dataset's deterministic "as of" point; the engine never reads
// the wall clock.
func LatestDate(ds *domain.Dataset) *time.Time {
	var latest *time.Time
	consider := func(t *time.Time) {
		if t == nil {
			return
		}
		if latest == nil || t.After(*latest) {
			latest = t
		}
	}
	for _, e := range ds.HourEntries {
		consider(e.Date)
	}
	for _, t := range ds.Tasks {
		consider(t.StartDate)
		consider(t.EndDate)
	}
	for _, p := range ds.Projects {
		consider(p.StartDate)
		consider(p.EndDate)
	}
	for _, c := range ds.CostTransactions {
		consider(c.Date)
	}
	for _, m := range ds.Milestones {
		consider(m.Date)
	}
	return latest
}

// BuildSCurve produces the cumulative planned-vs-actual hours series.
// Planned hours spread each task's baseline evenly across the weeks of its
// date span; actual hours bucket matched entries by entry date. Tasks or
// entries without usable dates contribute nothing here but keep their
// numeric share in the rollups.
func BuildSCurve(tasks []*domain.Task, entries []*domain.HourEntry, cache *WeekCache) contract.SCurve {
	planned := make(map[string]float64)
	actual := make(map[string]float64)

	for _, t := range tasks {
		if t.BaselineHours == nil || t.StartDate == nil || t.EndDate == nil {
			continue
		}
		weeks := cache.WeeksBetween(*t.StartDate, *t.EndDate)
		if len(weeks) == 0 {
			continue
		}
		share := *t.BaselineHours / float64(len(weeks))
		for _, w := range weeks {
			planned[w] += share
		}
	}
	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		actual[weekKey(*e.Date)] += e.Hours
	}

	keys := mergedWeekKeys(planned, actual)
	curve := contract.SCurve{Points: make([]contract.SCurvePoint, 0, len(keys))}
	var cumP, cumA float64
	for _, k := range keys {
		cumP += planned[k]
		cumA += actual[k]
		curve.Points = append(curve.Points, contract.SCurvePoint{
			Week:              k,
			Label:             weekLabel(k),
			PlannedHours:      planned[k],
			ActualHours:       actual[k],
			CumulativePlanned: cumP,
			CumulativeActual:  cumA,
		})
	}
	return curve
}

// BuildLaborBreakdown buckets hours by charge code per week. Entries with
// no charge code fall under "uncoded".
func BuildLaborBreakdown(entries []*domain.HourEntry) contract.LaborBreakdown {
	byCode := make(map[string]map[string]float64)
	weekSet := make(map[string]bool)
	var codeOrder []string

	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		code := e.ChargeCode
		if code == "" {
			code = "uncoded"
		}
		if byCode[code] == nil {
			byCode[code] = make(map[string]float64)
			codeOrder = append(codeOrder, code)
		}
		w := weekKey(*e.Date)
		byCode[code][w] += e.Hours
		weekSet[w] = true
	}

	out := contract.LaborBreakdown{
		Weeks: sortedKeys(weekSet),
		Rows:  make([]contract.LaborBreakdownRow, 0, len(codeOrder)),
		Total: make(map[string]float64),
	}
	sort.Strings(codeOrder)
	for _, code := range codeOrder {
		row := contract.LaborBreakdownRow{ChargeCode: code, Hours: byCode[code]}
		for w, h := range byCode[code] {
			row.TotalHours += h
			out.Total[w] += h
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// BuildResourceHeatmap buckets hours per employee per week. The employee
// name resolves through the index; unknown ids keep the raw id, blank ids
// group under "unassigned".
func BuildResourceHeatmap(entries []*domain.HourEntry, idx *Index) contract.ResourceHeatmap {
	byResource := make(map[string]map[string]float64)
	weekSet := make(map[string]bool)
	var order []string

	for _, e := range entries {
		if e.Date == nil {
			continue
		}
		name := "unassigned"
		if e.EmployeeID != "" {
			name = e.EmployeeID
			if emp := idx.EmployeesByID[e.EmployeeID]; emp != nil && emp.Name != "" {
				name = emp.Name
			}
		}
		if byResource[name] == nil {
			byResource[name] = make(map[string]float64)
			order = append(order, name)
		}
		w := weekKey(*e.Date)
		byResource[name][w] += e.Hours
		weekSet[w] = true
	}

	out := contract.ResourceHeatmap{
		Weeks: sortedKeys(weekSet),
		Rows:  make([]contract.ResourceHeatmapRow, 0, len(order)),
	}
	sort.Strings(order)
	for _, name := range order {
		row := contract.ResourceHeatmapRow{Resource: name, Hours: byResource[name]}
		for _, h := range byResource[name] {
			row.TotalHours += h
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// BuildForecast projects the remaining-hours burn-down from the dataset's
// latest date forward at the recent run rate (mean weekly actual over the
// last four observed weeks). With no observed burn the whole remainder sits
// in a single bucket one week out.
func BuildForecast(remainingHours, actualHours float64, entries []*domain.HourEntry, asOf *time.Time) contract.Forecast {
	out := contract.Forecast{
		ProjectedHours: actualHours + remainingHours,
		Points:         []contract.ForecastPoint{},
	}
	if remainingHours <= 0 || asOf == nil {
		return out
	}

	rate := recentWeeklyRate(entries, *asOf)
	start, err := time.Parse(dayLayout, weekKey(*asOf))
	if err != nil {
		return out
	}

	if rate <= 0 {
		w := start.AddDate(0, 0, 7)
		out.Points = append(out.Points, contract.ForecastPoint{
			Week:           w.Format(dayLayout),
			Label:          w.Format(labelLayout),
			RemainingHours: remainingHours,
		})
		return out
	}

	remaining := remainingHours
	for i := 1; remaining > 0 && i <= 52; i++ {
		remaining -= rate
		if remaining < 0 {
			remaining = 0
		}
		w := start.AddDate(0, 0, 7*i)
		out.Points = append(out.Points, contract.ForecastPoint{
			Week:           w.Format(dayLayout),
			Label:          w.Format(labelLayout),
			RemainingHours: remaining,
		})
	}
	return out
}

func recentWeeklyRate(entries []*domain.HourEntry, asOf time.Time) float64 {
	cutoff := asOf.AddDate(0, 0, -28)
	byWeek := make(map[string]float64)
	for _, e := range entries {
		if e.Date == nil || e.Date.Before(cutoff) || e.Date.After(asOf) {
			continue
		}
		byWeek[weekKey(*e.Date)] += e.Hours
	}
	if len(byWeek) == 0 {
		return 0
	}
	var total float64
	for _, h := range byWeek {
		total += h
	}
	return total / float64(len(byWeek))
}

// BuildMilestones renders the milestone list and the per-status counts.
func BuildMilestones(milestones []*domain.Milestone) ([]contract.MilestoneItem, contract.MilestoneStatus) {
	items := make([]contract.MilestoneItem, 0, len(milestones))
	status := contract.MilestoneStatus{Counts: make(map[string]int)}
	for _, m := range milestones {
		items = append(items, contract.MilestoneItem{
			ID:              m.ID,
			Name:            m.Name,
			Status:          m.Status,
			DueDate:         contract.FormatDatePtr(m.Date),
			PercentComplete: m.PercentComplete,
		})
		status.Counts[normalizeStatus(m.Status)]++
		status.Total++
	}
	return items, status
}

// BuildQualityMetrics measures how complete and linkable the dataset is:
// baseline and date coverage over tasks, hour-entry linkage after matching.
func BuildQualityMetrics(ds *domain.Dataset, matched []*domain.HourEntry, validationIssues int) contract.QualityMetrics {
	m := contract.QualityMetrics{
		TasksTotal:       len(ds.Tasks),
		HourEntriesTotal: len(matched),
		ValidationIssues: validationIssues,
	}
	for _, t := range ds.Tasks {
		if t.BaselineHours != nil {
			m.TasksWithBaseline++
		}
		if t.StartDate != nil && t.EndDate != nil {
			m.TasksWithDates++
		}
	}
	for _, e := range matched {
		if e.TaskID != "" {
			m.HourEntriesLinked++
		} else {
			m.HourEntriesUnmatched++
		}
	}
	if m.TasksTotal > 0 {
		m.BaselineCoverage = clampPercent(float64(m.TasksWithBaseline) / float64(m.TasksTotal) * 100)
		m.DateCoverage = clampPercent(float64(m.TasksWithDates) / float64(m.TasksTotal) * 100)
	}
	if m.HourEntriesTotal > 0 {
		m.HourLinkage = clampPercent(float64(m.HourEntriesLinked) / float64(m.HourEntriesTotal) * 100)
	}
	return m
}

// BuildBudget compares the scope's budget against spend and forecast cost.
func BuildBudget(baselineCost, actualCost *float64, forecastCost float64) contract.BudgetView {
	bc := domain.Float64FromPtrWithDefault(0, baselineCost)
	ac := domain.Float64FromPtrWithDefault(0, actualCost)
	v := contract.BudgetView{
		BaselineCost:  bc,
		ActualCost:    ac,
		ForecastCost:  forecastCost,
		RemainingCost: bc - ac,
	}
	if v.RemainingCost < 0 {
		v.RemainingCost = 0
	}
	if bc > 0 {
		v.PercentSpent = clampPercent(ac / bc * 100)
	}
	return v
}

// SummarizeChangeControl groups approved deltas by project and by approval
// month. The month falls back from approvedDate to updatedAt, else
// "unknown".
func SummarizeChangeControl(ds *domain.Dataset, idx *Index) contract.ChangeControlSummary {
	out := contract.ChangeControlSummary{
		TotalRequests: len(ds.ChangeRequests),
		ByProject:     []contract.ChangeControlGroup{},
		ByMonth:       []contract.ChangeControlGroup{},
	}

	approved := make(map[string]*domain.ChangeRequest)
	for _, cr := range ds.ChangeRequests {
		if cr.Status.ContributesDeltas() {
			approved[cr.ID] = cr
			out.ApprovedRequests++
		}
	}

	type agg struct {
		requests map[string]bool
		hours    float64
		cost     float64
	}
	byProject := make(map[string]*agg)
	byMonth := make(map[string]*agg)
	var projectOrder, monthOrder []string
	bump := func(m map[string]*agg, order *[]string, key, crID string, imp *domain.ChangeImpact) {
		a := m[key]
		if a == nil {
			a = &agg{requests: make(map[string]bool)}
			m[key] = a
			*order = append(*order, key)
		}
		a.requests[crID] = true
		a.hours += imp.DeltaHours
		a.cost += imp.DeltaCost
	}

	for _, imp := range ds.ChangeImpacts {
		cr := approved[imp.ChangeRequestID]
		if cr == nil {
			continue
		}
		out.TotalDeltaHours += imp.DeltaHours
		out.TotalDeltaCost += imp.DeltaCost

		projectID := imp.ProjectID
		if projectID == "" {
			if t := idx.TasksByID[imp.TaskID]; t != nil {
				projectID = t.ProjectID
			} else if ph := idx.PhasesByID[imp.PhaseID]; ph != nil {
				projectID = ph.ProjectID
			}
		}
		if projectID == "" {
			projectID = cr.ProjectID
		}
		if projectID != "" {
			bump(byProject, &projectOrder, projectID, cr.ID, imp)
		}

		month := "unknown"
		if cr.ApprovedDate != nil {
			month = monthKey(*cr.ApprovedDate)
		} else if cr.UpdatedAt != nil {
			month = monthKey(*cr.UpdatedAt)
		}
		bump(byMonth, &monthOrder, month, cr.ID, imp)
	}

	sort.Strings(projectOrder)
	for _, key := range projectOrder {
		a := byProject[key]
		g := contract.ChangeControlGroup{
			Key:        key,
			Requests:   len(a.requests),
			DeltaHours: a.hours,
			DeltaCost:  a.cost,
		}
		if p := idx.ProjectsByID[key]; p != nil {
			g.Name = p.Name
		}
		out.ByProject = append(out.ByProject, g)
	}
	sort.Strings(monthOrder)
	for _, key := range monthOrder {
		a := byMonth[key]
		out.ByMonth = append(out.ByMonth, contract.ChangeControlGroup{
			Key:        key,
			Requests:   len(a.requests),
			DeltaHours: a.hours,
			DeltaCost:  a.cost,
		})
	}
	return out
}

func mergedWeekKeys(maps ...map[string]float64) []string {
	set := make(map[string]bool)
	for _, m := range maps {
		for k := range m {
			set[k] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

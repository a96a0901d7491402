// Package contract defines the serialized shapes the engine produces and the
// CLI, snapshot store, and any downstream consumer read. Every collection
// field is always present and non-nil: empty sections marshal as [] or {} so
// consumers never see null for a missing prerequisite.
package contract

import "time"

// DeriveResult is the complete derivation output for one dataset.
type DeriveResult struct {
	AsOf string `json:"asOf"`

	WBSData   WBSData         `json:"wbsData"`
	Hierarchy []HierarchyItem `json:"hierarchy"`

	TaskProductivity    []ProductivityItem `json:"taskProductivity"`
	PhaseProductivity   []ProductivityItem `json:"phaseProductivity"`
	ProjectProductivity []ProductivityItem `json:"projectProductivity"`

	ChangeControlSummary ChangeControlSummary `json:"changeControlSummary"`
	ScheduleHealth       ScheduleHealth       `json:"scheduleHealth"`

	LaborBreakdown  LaborBreakdown  `json:"laborBreakdown"`
	ResourceHeatmap ResourceHeatmap `json:"resourceHeatmap"`
	SCurve          SCurve          `json:"sCurve"`
	Forecast        Forecast        `json:"forecast"`

	Milestones      []MilestoneItem `json:"milestones"`
	MilestoneStatus MilestoneStatus `json:"milestoneStatus"`

	QualityMetrics QualityMetrics `json:"qualityMetrics"`
	MatchReport    MatchReport    `json:"matchReport"`

	EVM EVMSummary `json:"evm"`
}

type WBSData struct {
	Items []WBSItem `json:"items"`
}

// WBSItem is one rolled-up tree node. Codes are derived per run and must not
// be persisted as identifiers.
type WBSItem struct {
	ID      string `json:"id"`
	WBSCode string `json:"wbsCode"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`

	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	BaselineHours   *float64 `json:"baselineHours"`
	ActualHours     *float64 `json:"actualHours"`
	BaselineCost    *float64 `json:"baselineCost"`
	ActualCost      *float64 `json:"actualCost"`
	PercentComplete *float64 `json:"percentComplete"`
	RemainingHours  float64  `json:"remainingHours"`
	DaysRequired    int      `json:"daysRequired"`
	TaskCount       int      `json:"taskCount"`

	Method      string   `json:"method,omitempty"`
	Efficiency  *float64 `json:"efficiency,omitempty"`
	IsCritical  bool     `json:"isCritical,omitempty"`
	IsMilestone bool     `json:"isMilestone,omitempty"`

	Children []WBSItem `json:"children"`
}

// HierarchyItem is the lightweight filter-tree view: ids, names, and levels
// only, for scope pickers.
type HierarchyItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Children []HierarchyItem `json:"children"`
}

type ProductivityItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grain string `json:"grain"`

	BaselineQty   float64 `json:"baselineQty"`
	CompletedQty  float64 `json:"completedQty"`
	ProducedQty   float64 `json:"producedQty"`
	BaselineHours float64 `json:"baselineHours"`
	ActualHours   float64 `json:"actualHours"`

	ExpectedUnitsPerHour *float64 `json:"expectedUnitsPerHour"`
	UnitsPerHour         *float64 `json:"unitsPerHour"`
	HoursPerUnit         *float64 `json:"hoursPerUnit"`
	Variance             *float64 `json:"variance"`
	PerformingMetric     *float64 `json:"performingMetric"`
}

type ChangeControlSummary struct {
	TotalRequests    int     `json:"totalRequests"`
	ApprovedRequests int     `json:"approvedRequests"`
	TotalDeltaHours  float64 `json:"totalDeltaHours"`
	TotalDeltaCost   float64 `json:"totalDeltaCost"`

	ByProject []ChangeControlGroup `json:"byProject"`
	ByMonth   []ChangeControlGroup `json:"byMonth"`
}

// ChangeControlGroup aggregates approved deltas under one key: a project id
// for ByProject, a YYYY-MM approval month (or "unknown") for ByMonth.
type ChangeControlGroup struct {
	Key        string  `json:"key"`
	Name       string  `json:"name,omitempty"`
	Requests   int     `json:"requests"`
	DeltaHours float64 `json:"deltaHours"`
	DeltaCost  float64 `json:"deltaCost"`
}

type ScheduleHealth struct {
	Findings           []HealthFinding    `json:"findings"`
	DependencyCoverage DependencyCoverage `json:"dependencyCoverage"`
}

type HealthFinding struct {
	TaskID   string `json:"taskId"`
	TaskName string `json:"taskName"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
}

type DependencyCoverage struct {
	LeafTasks       int     `json:"leafTasks"`
	LinkedTasks     int     `json:"linkedTasks"`
	IsolatedTasks   int     `json:"isolatedTasks"`
	CoveragePercent float64 `json:"coveragePercent"`
}

// LaborBreakdown buckets matched hours by charge code per week.
type LaborBreakdown struct {
	Weeks []string            `json:"weeks"`
	Rows  []LaborBreakdownRow `json:"rows"`
	Total map[string]float64  `json:"total"`
}

type LaborBreakdownRow struct {
	ChargeCode string             `json:"chargeCode"`
	Hours      map[string]float64 `json:"hours"`
	TotalHours float64            `json:"totalHours"`
}

type ResourceHeatmap struct {
	Weeks []string             `json:"weeks"`
	Rows  []ResourceHeatmapRow `json:"rows"`
}

type ResourceHeatmapRow struct {
	Resource   string             `json:"resource"`
	Hours      map[string]float64 `json:"hours"`
	TotalHours float64            `json:"totalHours"`
}

// SCurve is the cumulative planned-vs-actual hours series per week bucket.
type SCurve struct {
	Points []SCurvePoint `json:"points"`
}

type SCurvePoint struct {
	Week              string  `json:"week"`
	Label             string  `json:"label"`
	PlannedHours      float64 `json:"plannedHours"`
	ActualHours       float64 `json:"actualHours"`
	CumulativePlanned float64 `json:"cumulativePlanned"`
	CumulativeActual  float64 `json:"cumulativeActual"`
}

type Forecast struct {
	ProjectedHours float64         `json:"projectedHours"`
	ProjectedCost  float64         `json:"projectedCost"`
	Points         []ForecastPoint `json:"points"`
}

type ForecastPoint struct {
	Week           string  `json:"week"`
	Label          string  `json:"label"`
	RemainingHours float64 `json:"remainingHours"`
}

type MilestoneItem struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Status          string   `json:"status"`
	DueDate         string   `json:"dueDate,omitempty"`
	PercentComplete *float64 `json:"percentComplete"`
}

// MilestoneStatus counts milestones per normalized status value.
type MilestoneStatus struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// QualityMetrics reports data-quality measures over the input arrays, not
// workmanship QC: how complete and linkable the snapshot is.
type QualityMetrics struct {
	TasksTotal           int     `json:"tasksTotal"`
	TasksWithBaseline    int     `json:"tasksWithBaseline"`
	TasksWithDates       int     `json:"tasksWithDates"`
	HourEntriesTotal     int     `json:"hourEntriesTotal"`
	HourEntriesLinked    int     `json:"hourEntriesLinked"`
	HourEntriesUnmatched int     `json:"hourEntriesUnmatched"`
	BaselineCoverage     float64 `json:"baselineCoverage"`
	DateCoverage         float64 `json:"dateCoverage"`
	HourLinkage          float64 `json:"hourLinkage"`
	ValidationIssues     int     `json:"validationIssues"`
}

type MatchReport struct {
	Total     int             `json:"total"`
	Exact     int             `json:"exact"`
	Relaxed   int             `json:"relaxed"`
	Contained int             `json:"contained"`
	Unmatched int             `json:"unmatched"`
	Decisions []MatchDecision `json:"decisions"`
}

type MatchDecision struct {
	EntryID    string `json:"entryId"`
	TaskID     string `json:"taskId"`
	Method     string `json:"method"`
	Candidates int    `json:"candidates"`
}

type EVMSummary struct {
	BAC  float64 `json:"bac"`
	PV   float64 `json:"pv"`
	EV   float64 `json:"ev"`
	AC   float64 `json:"ac"`
	CPI  float64 `json:"cpi"`
	SPI  float64 `json:"spi"`
	EAC  float64 `json:"eac"`
	ETC  float64 `json:"etc"`
	VAC  float64 `json:"vac"`
	TCPI float64 `json:"tcpi"`

	CostVariance     float64 `json:"costVariance"`
	ScheduleVariance float64 `json:"scheduleVariance"`
	PercentComplete  float64 `json:"percentComplete"`
	PercentSpent     float64 `json:"percentSpent"`
}

// NewDeriveResult returns a result with every collection initialized, so an
// empty dataset still marshals with a stable schema.
func NewDeriveResult() *DeriveResult {
	return &DeriveResult{
		WBSData:             WBSData{Items: []WBSItem{}},
		Hierarchy:           []HierarchyItem{},
		TaskProductivity:    []ProductivityItem{},
		PhaseProductivity:   []ProductivityItem{},
		ProjectProductivity: []ProductivityItem{},
		ChangeControlSummary: ChangeControlSummary{
			ByProject: []ChangeControlGroup{},
			ByMonth:   []ChangeControlGroup{},
		},
		ScheduleHealth: ScheduleHealth{Findings: []HealthFinding{}},
		LaborBreakdown: LaborBreakdown{
			Weeks: []string{},
			Rows:  []LaborBreakdownRow{},
			Total: map[string]float64{},
		},
		ResourceHeatmap: ResourceHeatmap{
			Weeks: []string{},
			Rows:  []ResourceHeatmapRow{},
		},
		SCurve:          SCurve{Points: []SCurvePoint{}},
		Forecast:        Forecast{Points: []ForecastPoint{}},
		Milestones:      []MilestoneItem{},
		MilestoneStatus: MilestoneStatus{Counts: map[string]int{}},
		MatchReport:     MatchReport{Decisions: []MatchDecision{}},
	}
}

// FormatDatePtr renders an optional date for output; blank when unset.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

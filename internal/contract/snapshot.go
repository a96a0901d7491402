package contract

// SnapshotPayload is the point-in-time extract for one (scope, scopeId,
// view). Chart sections outside the requested view stay present with empty
// defaults so the stored JSON keeps one schema across views.
type SnapshotPayload struct {
	Scope        string `json:"scope"`
	ScopeID      string `json:"scopeId"`
	ScopeName    string `json:"scopeName,omitempty"`
	View         string `json:"view"`
	SnapshotDate string `json:"snapshotDate"`

	Metrics EVMSummary     `json:"metrics"`
	Charts  SnapshotCharts `json:"charts"`
}

type SnapshotCharts struct {
	SCurve          SCurve          `json:"sCurve"`
	LaborBreakdown  LaborBreakdown  `json:"laborBreakdown"`
	ResourceHeatmap ResourceHeatmap `json:"resourceHeatmap"`
	Forecast        Forecast        `json:"forecast"`
	MilestoneStatus MilestoneStatus `json:"milestoneStatus"`
	Budget          BudgetView      `json:"budget"`
	QualityMetrics  QualityMetrics  `json:"qualityMetrics"`
}

// BudgetView compares budgeted against spent and committed cost for the
// scope.
type BudgetView struct {
	BaselineCost  float64 `json:"baselineCost"`
	ActualCost    float64 `json:"actualCost"`
	ForecastCost  float64 `json:"forecastCost"`
	RemainingCost float64 `json:"remainingCost"`
	PercentSpent  float64 `json:"percentSpent"`
}

// TrendPoint is one stored snapshot's headline metrics, for plotting a
// scope's performance over time.
type TrendPoint struct {
	SnapshotDate    string  `json:"snapshotDate"`
	Label           string  `json:"label,omitempty"`
	CPI             float64 `json:"cpi"`
	SPI             float64 `json:"spi"`
	PercentComplete float64 `json:"percentComplete"`
	EAC             float64 `json:"eac"`
}

// NewSnapshotCharts returns a chart block with every section initialized.
func NewSnapshotCharts() SnapshotCharts {
	return SnapshotCharts{
		SCurve: SCurve{Points: []SCurvePoint{}},
		LaborBreakdown: LaborBreakdown{
			Weeks: []string{},
			Rows:  []LaborBreakdownRow{},
			Total: map[string]float64{},
		},
		ResourceHeatmap: ResourceHeatmap{
			Weeks: []string{},
			Rows:  []ResourceHeatmapRow{},
		},
		Forecast:        Forecast{Points: []ForecastPoint{}},
		MilestoneStatus: MilestoneStatus{Counts: map[string]int{}},
	}
}

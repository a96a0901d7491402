package domain

type NodeType string

const (
	NodePortfolio NodeType = "portfolio"
	NodeCustomer  NodeType = "customer"
	NodeSite      NodeType = "site"
	NodeUnit      NodeType = "unit"
)

type ProgressMethod string

const (
	MethodHours     ProgressMethod = "hours"
	MethodQuantity  ProgressMethod = "quantity"
	MethodMilestone ProgressMethod = "milestone"
)

type ChangeStatus string

const (
	ChangeDraft       ChangeStatus = "draft"
	ChangeSubmitted   ChangeStatus = "submitted"
	ChangeApproved    ChangeStatus = "approved"
	ChangeImplemented ChangeStatus = "implemented"
	ChangeRejected    ChangeStatus = "rejected"
)

// ContributesDeltas reports whether a change request in this status
// feeds baseline adjustments. Draft and rejected requests never do.
func (s ChangeStatus) ContributesDeltas() bool {
	return s == ChangeApproved || s == ChangeImplemented
}

type QtyType string

const (
	QtyCompleted QtyType = "completed"
	QtyProduced  QtyType = "produced"
)

type SnapshotScope string

const (
	ScopeAll       SnapshotScope = "all"
	ScopePortfolio SnapshotScope = "portfolio"
	ScopeCustomer  SnapshotScope = "customer"
	ScopeSite      SnapshotScope = "site"
	ScopeProject   SnapshotScope = "project"
)

// SnapshotView selects which chart sections a snapshot populates; the
// rest stay present as empty defaults.
type SnapshotView string

const (
	ViewAll        SnapshotView = "all"
	ViewSCurve     SnapshotView = "scurve"
	ViewLabor      SnapshotView = "labor"
	ViewHeatmap    SnapshotView = "heatmap"
	ViewForecast   SnapshotView = "forecast"
	ViewMilestones SnapshotView = "milestones"
	ViewBudget     SnapshotView = "budget"
	ViewQuality    SnapshotView = "quality"
)

// AllSnapshotViews lists every view in presentation order.
var AllSnapshotViews = []SnapshotView{
	ViewAll, ViewSCurve, ViewLabor, ViewHeatmap,
	ViewForecast, ViewMilestones, ViewBudget, ViewQuality,
}

// ParseSnapshotScope validates a user-supplied scope string.
func ParseSnapshotScope(s string) (SnapshotScope, bool) {
	switch SnapshotScope(s) {
	case ScopeAll, ScopePortfolio, ScopeCustomer, ScopeSite, ScopeProject:
		return SnapshotScope(s), true
	}
	return "", false
}

// ParseSnapshotView validates a user-supplied view string.
func ParseSnapshotView(s string) (SnapshotView, bool) {
	for _, v := range AllSnapshotViews {
		if SnapshotView(s) == v {
			return v, true
		}
	}
	return "", false
}

type RelationType string

const (
	RelationFS RelationType = "FS"
	RelationSS RelationType = "SS"
	RelationFF RelationType = "FF"
	RelationSF RelationType = "SF"
)

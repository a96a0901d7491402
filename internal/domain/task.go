package domain

import "time"

type Task struct {
	ID        string
	PhaseID   string // falls back to direct project attach when blank
	ProjectID string
	UnitID    string
	Name      string

	BaselineHours *float64
	ActualHours   *float64
	// RemainingHours comes verbatim from the schedule import; nil means
	// "derive from adjusted baseline minus actuals".
	RemainingHours *float64
	ProjectedHours *float64

	BaselineCost  *float64
	ActualCost    *float64
	RemainingCost *float64

	BaselineQty  *float64
	CompletedQty *float64

	ProgressMethod ProgressMethod
	MilestoneID    string

	ConstraintType string
	ConstraintDate *time.Time

	StartDate       *time.Time
	EndDate         *time.Time
	PercentComplete *float64

	IsCritical  bool
	IsMilestone bool
	IsSummary   bool
	TotalSlack  *float64

	AssignedResource string

	Predecessors []TaskLink
	Successors   []TaskLink
}

// TaskLink is a schedule dependency edge as produced by the schedule import.
type TaskLink struct {
	TaskID       string
	Name         string
	Relationship RelationType
	LagDays      float64
	External     bool
}

type SubTask struct {
	ID     string
	TaskID string
	Name   string

	BaselineHours *float64
	ActualHours   *float64
	BaselineCost  *float64
	ActualCost    *float64

	StartDate       *time.Time
	EndDate         *time.Time
	PercentComplete *float64
}

type TaskQuantityEntry struct {
	ID     string
	TaskID string
	Type   QtyType
	Qty    float64
}

package domain

import "time"

type ChangeRequest struct {
	ID        string
	ProjectID string
	Title     string
	Status    ChangeStatus

	ApprovedDate *time.Time
	UpdatedAt    *time.Time
}

// ChangeImpact carries the baseline deltas of one change request, scoped to
// exactly one of project, phase, or task. Each scope level is applied
// independently; a task delta does not bubble into its phase.
type ChangeImpact struct {
	ID              string
	ChangeRequestID string
	ProjectID       string
	PhaseID         string
	TaskID          string

	DeltaHours     float64
	DeltaCost      float64
	DeltaStartDays float64
	DeltaEndDays   float64
	DeltaQty       float64
}

// CostTransaction is a non-labor cost row. Accrual amounts are forecast
// cost, not actual.
type CostTransaction struct {
	ID          string
	ProjectID   string
	PhaseID     string
	TaskID      string
	Amount      float64
	IsAccrual   bool
	Date        *time.Time
	Description string
}

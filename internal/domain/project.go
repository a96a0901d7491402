package domain

import "time"

type Project struct {
	ID          string
	UnitID      string
	SiteID      string
	CustomerID  string
	PortfolioID string
	Name        string
	Manager     string

	// Projects without an imported schedule never enter rollups.
	HasSchedule bool

	BaselineHours *float64
	ActualHours   *float64
	BaselineCost  *float64
	ActualCost    *float64

	StartDate       *time.Time
	EndDate         *time.Time
	PercentComplete *float64
}

// Phase attaches to a unit (preferred) or directly to a project (legacy).
type Phase struct {
	ID        string
	UnitID    string
	ProjectID string
	Name      string

	BaselineHours *float64
	ActualHours   *float64

	StartDate *time.Time
	EndDate   *time.Time
}

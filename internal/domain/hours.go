package domain

import "time"

// HourEntry is a single logged time row. TaskID may be blank; in that case
// WorkdayPhase/WorkdayTask carry the free-text labels the matcher resolves.
type HourEntry struct {
	ID         string
	EmployeeID string
	ProjectID  string
	TaskID     string
	Date       *time.Time
	Hours      float64
	ChargeCode string

	WorkdayPhase string
	WorkdayTask  string
}

type Employee struct {
	ID       string
	Name     string
	Role     string
	CostRate *float64
}

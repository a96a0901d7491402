package domain

import "time"

type Milestone struct {
	ID        string
	ProjectID string
	Name      string
	Status    string
	Date      *time.Time

	// Explicit percent wins over the status weight table when present.
	PercentComplete *float64
}

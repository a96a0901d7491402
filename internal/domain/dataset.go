package domain

// Dataset is the full flat snapshot the engine derives from. Absent arrays
// are simply nil; the engine treats every field as optional.
type Dataset struct {
	Portfolios []*HierarchyNode
	Customers  []*HierarchyNode
	Sites      []*HierarchyNode
	Units      []*HierarchyNode

	// HierarchyNodes is the pre-flattened alternate representation. When
	// non-empty it takes precedence over the four arrays above.
	HierarchyNodes []*HierarchyNode

	Projects []*Project
	Phases   []*Phase
	Tasks    []*Task
	SubTasks []*SubTask

	HourEntries     []*HourEntry
	Employees       []*Employee
	QuantityEntries []*TaskQuantityEntry

	ChangeRequests   []*ChangeRequest
	ChangeImpacts    []*ChangeImpact
	CostTransactions []*CostTransaction

	Milestones []*Milestone
}

// DatasetCounts is the structural fingerprint source for memoization: if no
// array changed size, a repeated derivation is served from cache.
type DatasetCounts struct {
	Portfolios       int
	Customers        int
	Sites            int
	Units            int
	HierarchyNodes   int
	Projects         int
	Phases           int
	Tasks            int
	SubTasks         int
	HourEntries      int
	Employees        int
	QuantityEntries  int
	ChangeRequests   int
	ChangeImpacts    int
	CostTransactions int
	Milestones       int
}

func (d *Dataset) Counts() DatasetCounts {
	return DatasetCounts{
		Portfolios:       len(d.Portfolios),
		Customers:        len(d.Customers),
		Sites:            len(d.Sites),
		Units:            len(d.Units),
		HierarchyNodes:   len(d.HierarchyNodes),
		Projects:         len(d.Projects),
		Phases:           len(d.Phases),
		Tasks:            len(d.Tasks),
		SubTasks:         len(d.SubTasks),
		HourEntries:      len(d.HourEntries),
		Employees:        len(d.Employees),
		QuantityEntries:  len(d.QuantityEntries),
		ChangeRequests:   len(d.ChangeRequests),
		ChangeImpacts:    len(d.ChangeImpacts),
		CostTransactions: len(d.CostTransactions),
		Milestones:       len(d.Milestones),
	}
}

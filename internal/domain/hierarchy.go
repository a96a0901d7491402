package domain

// HierarchyNode is a portfolio, customer, site, or unit row. The four levels
// share one shape; Type distinguishes them when the upstream system hands the
// hierarchy over as a single pre-flattened array.
type HierarchyNode struct {
	ID       string
	ParentID string
	Name     string
	Type     NodeType
	OwnerID  string

	BaselineHours *float64
	ActualHours   *float64
	BaselineCost  *float64
	ActualCost    *float64
}

// Package importer decodes the flat project-controls snapshot and converts
// it into canonical domain records. Upstream exporters disagree on field
// casing, so every foreign key and metric field exists in a camelCase and a
// snake_case form (the Alt variants); Convert resolves each pair once so the
// engine never sees an alias.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// RawDataset is the top-level JSON object of a snapshot file. Absent arrays
// default to empty.
type RawDataset struct {
	Portfolios []RawHierarchyNode `json:"portfolios"`
	Customers  []RawHierarchyNode `json:"customers"`
	Sites      []RawHierarchyNode `json:"sites"`
	Units      []RawHierarchyNode `json:"units"`

	HierarchyNodes    []RawHierarchyNode `json:"hierarchyNodes"`
	HierarchyNodesAlt []RawHierarchyNode `json:"hierarchy_nodes"`

	Projects []RawProject `json:"projects"`
	Phases   []RawPhase   `json:"phases"`
	Tasks    []RawTask    `json:"tasks"`

	SubTasks    []RawSubTask `json:"subTasks"`
	SubTasksAlt []RawSubTask `json:"sub_tasks"`

	HourEntries    []RawHourEntry `json:"hourEntries"`
	HourEntriesAlt []RawHourEntry `json:"hour_entries"`
	Hours          []RawHourEntry `json:"hours"`

	Employees []RawEmployee `json:"employees"`

	QuantityEntries    []RawQuantityEntry `json:"quantityEntries"`
	QuantityEntriesAlt []RawQuantityEntry `json:"quantity_entries"`

	ChangeRequests    []RawChangeRequest `json:"changeRequests"`
	ChangeRequestsAlt []RawChangeRequest `json:"change_requests"`

	ChangeImpacts    []RawChangeImpact `json:"changeImpacts"`
	ChangeImpactsAlt []RawChangeImpact `json:"change_impacts"`

	CostTransactions    []RawCostTransaction `json:"costTransactions"`
	CostTransactionsAlt []RawCostTransaction `json:"cost_transactions"`

	Milestones []RawMilestone `json:"milestones"`
}

type RawHierarchyNode struct {
	ID          string  `json:"id"`
	ParentID    string  `json:"parentId"`
	ParentIDAlt string  `json:"parent_id"`
	Name        string  `json:"name"`
	NodeType    string  `json:"nodeType"`
	NodeTypeAlt string  `json:"node_type"`
	OwnerID     string  `json:"ownerId"`
	OwnerIDAlt  string  `json:"owner_id"`

	BaselineHours    *float64 `json:"baselineHours"`
	BaselineHoursAlt *float64 `json:"baseline_hours"`
	ActualHours      *float64 `json:"actualHours"`
	ActualHoursAlt   *float64 `json:"actual_hours"`
	BaselineCost     *float64 `json:"baselineCost"`
	BaselineCostAlt  *float64 `json:"baseline_cost"`
	ActualCost       *float64 `json:"actualCost"`
	ActualCostAlt    *float64 `json:"actual_cost"`
}

type RawProject struct {
	ID             string `json:"id"`
	UnitID         string `json:"unitId"`
	UnitIDAlt      string `json:"unit_id"`
	SiteID         string `json:"siteId"`
	SiteIDAlt      string `json:"site_id"`
	CustomerID     string `json:"customerId"`
	CustomerIDAlt  string `json:"customer_id"`
	PortfolioID    string `json:"portfolioId"`
	PortfolioIDAlt string `json:"portfolio_id"`
	Name           string `json:"name"`
	Manager        string `json:"manager"`

	HasSchedule    *bool `json:"hasSchedule"`
	HasScheduleAlt *bool `json:"has_schedule"`

	BaselineHours    *float64 `json:"baselineHours"`
	BaselineHoursAlt *float64 `json:"baseline_hours"`
	ActualHours      *float64 `json:"actualHours"`
	ActualHoursAlt   *float64 `json:"actual_hours"`
	BaselineCost     *float64 `json:"baselineCost"`
	BaselineCostAlt  *float64 `json:"baseline_cost"`
	ActualCost       *float64 `json:"actualCost"`
	ActualCostAlt    *float64 `json:"actual_cost"`

	StartDate    FlexDate `json:"startDate"`
	StartDateAlt FlexDate `json:"start_date"`
	EndDate      FlexDate `json:"endDate"`
	EndDateAlt   FlexDate `json:"end_date"`

	PercentComplete    *float64 `json:"percentComplete"`
	PercentCompleteAlt *float64 `json:"percent_complete"`
}

type RawPhase struct {
	ID           string `json:"id"`
	UnitID       string `json:"unitId"`
	UnitIDAlt    string `json:"unit_id"`
	ProjectID    string `json:"projectId"`
	ProjectIDAlt string `json:"project_id"`
	Name         string `json:"name"`

	BaselineHours    *float64 `json:"baselineHours"`
	BaselineHoursAlt *float64 `json:"baseline_hours"`
	ActualHours      *float64 `json:"actualHours"`
	ActualHoursAlt   *float64 `json:"actual_hours"`

	StartDate    FlexDate `json:"startDate"`
	StartDateAlt FlexDate `json:"start_date"`
	EndDate      FlexDate `json:"endDate"`
	EndDateAlt   FlexDate `json:"end_date"`
}

type RawTask struct {
	ID           string `json:"id"`
	PhaseID      string `json:"phaseId"`
	PhaseIDAlt   string `json:"phase_id"`
	ProjectID    string `json:"projectId"`
	ProjectIDAlt string `json:"project_id"`
	UnitID       string `json:"unitId"`
	UnitIDAlt    string `json:"unit_id"`
	Name         string `json:"name"`

	BaselineHours     *float64 `json:"baselineHours"`
	BaselineHoursAlt  *float64 `json:"baseline_hours"`
	ActualHours       *float64 `json:"actualHours"`
	ActualHoursAlt    *float64 `json:"actual_hours"`
	RemainingHours    *float64 `json:"remainingHours"`
	RemainingHoursAlt *float64 `json:"remaining_hours"`
	ProjectedHours    *float64 `json:"projectedHours"`
	ProjectedHoursAlt *float64 `json:"projected_hours"`

	BaselineCost     *float64 `json:"baselineCost"`
	BaselineCostAlt  *float64 `json:"baseline_cost"`
	ActualCost       *float64 `json:"actualCost"`
	ActualCostAlt    *float64 `json:"actual_cost"`
	RemainingCost    *float64 `json:"remainingCost"`
	RemainingCostAlt *float64 `json:"remaining_cost"`

	BaselineQty     *float64 `json:"baselineQty"`
	BaselineQtyAlt  *float64 `json:"baseline_qty"`
	CompletedQty    *float64 `json:"completedQty"`
	CompletedQtyAlt *float64 `json:"completed_qty"`

	ProgressMethod    string `json:"progressMethod"`
	ProgressMethodAlt string `json:"progress_method"`
	MilestoneID       string `json:"milestoneId"`
	MilestoneIDAlt    string `json:"milestone_id"`

	ConstraintType    string   `json:"constraintType"`
	ConstraintTypeAlt string   `json:"constraint_type"`
	ConstraintDate    FlexDate `json:"constraintDate"`
	ConstraintDateAlt FlexDate `json:"constraint_date"`

	StartDate    FlexDate `json:"startDate"`
	StartDateAlt FlexDate `json:"start_date"`
	EndDate      FlexDate `json:"endDate"`
	EndDateAlt   FlexDate `json:"end_date"`

	PercentComplete    *float64 `json:"percentComplete"`
	PercentCompleteAlt *float64 `json:"percent_complete"`

	IsCritical     *bool `json:"isCritical"`
	IsCriticalAlt  *bool `json:"is_critical"`
	IsMilestone    *bool `json:"isMilestone"`
	IsMilestoneAlt *bool `json:"is_milestone"`
	IsSummary      *bool `json:"isSummary"`
	IsSummaryAlt   *bool `json:"is_summary"`

	TotalSlack    *float64 `json:"totalSlack"`
	TotalSlackAlt *float64 `json:"total_slack"`

	AssignedResource    string `json:"assignedResource"`
	AssignedResourceAlt string `json:"assigned_resource"`

	Predecessors []RawTaskLink `json:"predecessors"`
	Successors   []RawTaskLink `json:"successors"`
}

type RawTaskLink struct {
	PredecessorTaskID string  `json:"predecessorTaskId"`
	SuccessorTaskID   string  `json:"successorTaskId"`
	TaskID            string  `json:"taskId"`
	Name              string  `json:"predecessorName"`
	NameAlt           string  `json:"successorName"`
	Relationship      string  `json:"relationship"`
	LagDays           float64 `json:"lagDays"`
	External          bool    `json:"isExternal"`
}

type RawSubTask struct {
	ID         string `json:"id"`
	TaskID     string `json:"taskId"`
	TaskIDAlt  string `json:"task_id"`
	Name       string `json:"name"`

	BaselineHours    *float64 `json:"baselineHours"`
	BaselineHoursAlt *float64 `json:"baseline_hours"`
	ActualHours      *float64 `json:"actualHours"`
	ActualHoursAlt   *float64 `json:"actual_hours"`
	BaselineCost     *float64 `json:"baselineCost"`
	BaselineCostAlt  *float64 `json:"baseline_cost"`
	ActualCost       *float64 `json:"actualCost"`
	ActualCostAlt    *float64 `json:"actual_cost"`

	StartDate    FlexDate `json:"startDate"`
	StartDateAlt FlexDate `json:"start_date"`
	EndDate      FlexDate `json:"endDate"`
	EndDateAlt   FlexDate `json:"end_date"`

	PercentComplete    *float64 `json:"percentComplete"`
	PercentCompleteAlt *float64 `json:"percent_complete"`
}

type RawHourEntry struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	EmployeeIDAlt string `json:"employee_id"`
	ProjectID     string `json:"projectId"`
	ProjectIDAlt  string `json:"project_id"`
	TaskID        string `json:"taskId"`
	TaskIDAlt     string `json:"task_id"`

	Date    FlexDate `json:"date"`
	DateAlt FlexDate `json:"entry_date"`
	Hours   *float64 `json:"hours"`

	ChargeCode    string `json:"chargeCode"`
	ChargeCodeAlt string `json:"charge_code"`

	WorkdayPhase    string `json:"workdayPhase"`
	WorkdayPhaseAlt string `json:"workday_phase"`
	WorkdayTask     string `json:"workdayTask"`
	WorkdayTaskAlt  string `json:"workday_task"`
}

type RawEmployee struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	CostRate    *float64 `json:"costRate"`
	CostRateAlt *float64 `json:"cost_rate"`
}

type RawQuantityEntry struct {
	ID         string   `json:"id"`
	TaskID     string   `json:"taskId"`
	TaskIDAlt  string   `json:"task_id"`
	QtyType    string   `json:"qtyType"`
	QtyTypeAlt string   `json:"qty_type"`
	Qty        *float64 `json:"qty"`
	QtyAlt     *float64 `json:"quantity"`
}

type RawChangeRequest struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	ProjectIDAlt string `json:"project_id"`
	Title        string `json:"title"`
	Status       string `json:"status"`

	ApprovedDate    FlexDate `json:"approvedDate"`
	ApprovedDateAlt FlexDate `json:"approved_date"`
	UpdatedAt       FlexDate `json:"updatedAt"`
	UpdatedAtAlt    FlexDate `json:"updated_at"`
}

type RawChangeImpact struct {
	ID                 string `json:"id"`
	ChangeRequestID    string `json:"changeRequestId"`
	ChangeRequestIDAlt string `json:"change_request_id"`
	ProjectID          string `json:"projectId"`
	ProjectIDAlt       string `json:"project_id"`
	PhaseID            string `json:"phaseId"`
	PhaseIDAlt         string `json:"phase_id"`
	TaskID             string `json:"taskId"`
	TaskIDAlt          string `json:"task_id"`

	DeltaHours        *float64 `json:"deltaHours"`
	DeltaHoursAlt     *float64 `json:"delta_hours"`
	DeltaBaselineHrs  *float64 `json:"deltaBaselineHours"`
	DeltaCost         *float64 `json:"deltaCost"`
	DeltaCostAlt      *float64 `json:"delta_cost"`
	DeltaStartDays    *float64 `json:"deltaStartDays"`
	DeltaStartDaysAlt *float64 `json:"delta_start_days"`
	DeltaEndDays      *float64 `json:"deltaEndDays"`
	DeltaEndDaysAlt   *float64 `json:"delta_end_days"`
	DeltaQty          *float64 `json:"deltaQty"`
	DeltaQtyAlt       *float64 `json:"delta_qty"`
}

type RawCostTransaction struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	ProjectIDAlt string `json:"project_id"`
	PhaseID      string `json:"phaseId"`
	PhaseIDAlt   string `json:"phase_id"`
	TaskID       string `json:"taskId"`
	TaskIDAlt    string `json:"task_id"`

	Amount       *float64 `json:"amount"`
	IsAccrual    *bool    `json:"isAccrual"`
	IsAccrualAlt *bool    `json:"is_accrual"`
	Date         FlexDate `json:"date"`
	DateAlt      FlexDate `json:"transaction_date"`
	Description  string   `json:"description"`
}

type RawMilestone struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	ProjectIDAlt string `json:"project_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`

	Date    FlexDate `json:"date"`
	DateAlt FlexDate `json:"milestone_date"`

	PercentComplete    *float64 `json:"percentComplete"`
	PercentCompleteAlt *float64 `json:"percent_complete"`
}

// LoadFile reads and parses a snapshot file from disk.
func LoadFile(path string) (*RawDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a raw snapshot from JSON bytes.
func Parse(data []byte) (*RawDataset, error) {
	var raw RawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing snapshot JSON: %w", err)
	}
	return &raw, nil
}

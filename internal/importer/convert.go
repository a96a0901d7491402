package importer

import (
	"strings"
	"time"

	"github.com/tfournier/girder/internal/domain"
)

// Convert canonicalizes a raw snapshot into domain records: every
// camelCase/snake_case alias pair collapses to one field, enum-ish strings
// are normalized, and dates are already parsed by FlexDate. Records with a
// blank id are dropped; everything else is tolerated.
func Convert(raw *RawDataset) *domain.Dataset {
	ds := &domain.Dataset{}

	ds.Portfolios = convertNodes(raw.Portfolios, domain.NodePortfolio)
	ds.Customers = convertNodes(raw.Customers, domain.NodeCustomer)
	ds.Sites = convertNodes(raw.Sites, domain.NodeSite)
	ds.Units = convertNodes(raw.Units, domain.NodeUnit)
	ds.HierarchyNodes = convertNodes(append(raw.HierarchyNodes, raw.HierarchyNodesAlt...), "")

	for _, r := range raw.Projects {
		if r.ID == "" {
			continue
		}
		ds.Projects = append(ds.Projects, &domain.Project{
			ID:              r.ID,
			UnitID:          domain.CoalesceStr(r.UnitID, r.UnitIDAlt),
			SiteID:          domain.CoalesceStr(r.SiteID, r.SiteIDAlt),
			CustomerID:      domain.CoalesceStr(r.CustomerID, r.CustomerIDAlt),
			PortfolioID:     domain.CoalesceStr(r.PortfolioID, r.PortfolioIDAlt),
			Name:            r.Name,
			Manager:         r.Manager,
			HasSchedule:     domain.BoolFromPtrWithDefault(false, r.HasSchedule, r.HasScheduleAlt),
			BaselineHours:   domain.FirstFloat(r.BaselineHours, r.BaselineHoursAlt),
			ActualHours:     domain.FirstFloat(r.ActualHours, r.ActualHoursAlt),
			BaselineCost:    domain.FirstFloat(r.BaselineCost, r.BaselineCostAlt),
			ActualCost:      domain.FirstFloat(r.ActualCost, r.ActualCostAlt),
			StartDate:       firstTime(r.StartDate, r.StartDateAlt),
			EndDate:         firstTime(r.EndDate, r.EndDateAlt),
			PercentComplete: domain.FirstFloat(r.PercentComplete, r.PercentCompleteAlt),
		})
	}

	for _, r := range raw.Phases {
		if r.ID == "" {
			continue
		}
		ds.Phases = append(ds.Phases, &domain.Phase{
			ID:            r.ID,
			UnitID:        domain.CoalesceStr(r.UnitID, r.UnitIDAlt),
			ProjectID:     domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
			Name:          r.Name,
			BaselineHours: domain.FirstFloat(r.BaselineHours, r.BaselineHoursAlt),
			ActualHours:   domain.FirstFloat(r.ActualHours, r.ActualHoursAlt),
			StartDate:     firstTime(r.StartDate, r.StartDateAlt),
			EndDate:       firstTime(r.EndDate, r.EndDateAlt),
		})
	}

	for _, r := range raw.Tasks {
		if r.ID == "" {
			continue
		}
		ds.Tasks = append(ds.Tasks, convertTask(r))
	}

	for _, r := range append(raw.SubTasks, raw.SubTasksAlt...) {
		if r.ID == "" {
			continue
		}
		ds.SubTasks = append(ds.SubTasks, &domain.SubTask{
			ID:              r.ID,
			TaskID:          domain.CoalesceStr(r.TaskID, r.TaskIDAlt),
			Name:            r.Name,
			BaselineHours:   domain.FirstFloat(r.BaselineHours, r.BaselineHoursAlt),
			ActualHours:     domain.FirstFloat(r.ActualHours, r.ActualHoursAlt),
			BaselineCost:    domain.FirstFloat(r.BaselineCost, r.BaselineCostAlt),
			ActualCost:      domain.FirstFloat(r.ActualCost, r.ActualCostAlt),
			StartDate:       firstTime(r.StartDate, r.StartDateAlt),
			EndDate:         firstTime(r.EndDate, r.EndDateAlt),
			PercentComplete: domain.FirstFloat(r.PercentComplete, r.PercentCompleteAlt),
		})
	}

	hourRows := append(append(raw.HourEntries, raw.HourEntriesAlt...), raw.Hours...)
	for _, r := range hourRows {
		if r.ID == "" {
			continue
		}
		ds.HourEntries = append(ds.HourEntries, &domain.HourEntry{
			ID:           r.ID,
			EmployeeID:   domain.CoalesceStr(r.EmployeeID, r.EmployeeIDAlt),
			ProjectID:    domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
			TaskID:       domain.CoalesceStr(r.TaskID, r.TaskIDAlt),
			Date:         firstTime(r.Date, r.DateAlt),
			Hours:        domain.Float64FromPtrWithDefault(0, r.Hours),
			ChargeCode:   domain.CoalesceStr(r.ChargeCode, r.ChargeCodeAlt),
			WorkdayPhase: domain.CoalesceStr(r.WorkdayPhase, r.WorkdayPhaseAlt),
			WorkdayTask:  domain.CoalesceStr(r.WorkdayTask, r.WorkdayTaskAlt),
		})
	}

	for _, r := range raw.Employees {
		if r.ID == "" {
			continue
		}
		ds.Employees = append(ds.Employees, &domain.Employee{
			ID:       r.ID,
			Name:     r.Name,
			Role:     r.Role,
			CostRate: domain.FirstFloat(r.CostRate, r.CostRateAlt),
		})
	}

	for _, r := range append(raw.QuantityEntries, raw.QuantityEntriesAlt...) {
		taskID := domain.CoalesceStr(r.TaskID, r.TaskIDAlt)
		if taskID == "" {
			continue
		}
		qtyType := normalizeEnum(domain.CoalesceStr(r.QtyType, r.QtyTypeAlt))
		if qtyType == "" {
			qtyType = string(domain.QtyCompleted)
		}
		ds.QuantityEntries = append(ds.QuantityEntries, &domain.TaskQuantityEntry{
			ID:     r.ID,
			TaskID: taskID,
			Type:   domain.QtyType(qtyType),
			Qty:    domain.Float64FromPtrWithDefault(0, r.Qty, r.QtyAlt),
		})
	}

	for _, r := range append(raw.ChangeRequests, raw.ChangeRequestsAlt...) {
		if r.ID == "" {
			continue
		}
		ds.ChangeRequests = append(ds.ChangeRequests, &domain.ChangeRequest{
			ID:           r.ID,
			ProjectID:    domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
			Title:        r.Title,
			Status:       domain.ChangeStatus(normalizeEnum(r.Status)),
			ApprovedDate: firstTime(r.ApprovedDate, r.ApprovedDateAlt),
			UpdatedAt:    firstTime(r.UpdatedAt, r.UpdatedAtAlt),
		})
	}

	for _, r := range append(raw.ChangeImpacts, raw.ChangeImpactsAlt...) {
		crID := domain.CoalesceStr(r.ChangeRequestID, r.ChangeRequestIDAlt)
		if crID == "" {
			continue
		}
		ds.ChangeImpacts = append(ds.ChangeImpacts, &domain.ChangeImpact{
			ID:              r.ID,
			ChangeRequestID: crID,
			ProjectID:       domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
			PhaseID:         domain.CoalesceStr(r.PhaseID, r.PhaseIDAlt),
			TaskID:          domain.CoalesceStr(r.TaskID, r.TaskIDAlt),
			DeltaHours:      domain.Float64FromPtrWithDefault(0, r.DeltaHours, r.DeltaHoursAlt, r.DeltaBaselineHrs),
			DeltaCost:       domain.Float64FromPtrWithDefault(0, r.DeltaCost, r.DeltaCostAlt),
			DeltaStartDays:  domain.Float64FromPtrWithDefault(0, r.DeltaStartDays, r.DeltaStartDaysAlt),
			DeltaEndDays:    domain.Float64FromPtrWithDefault(0, r.DeltaEndDays, r.DeltaEndDaysAlt),
			DeltaQty:        domain.Float64FromPtrWithDefault(0, r.DeltaQty, r.DeltaQtyAlt),
		})
	}

	for _, r := range append(raw.CostTransactions, raw.CostTransactionsAlt...) {
		projectID := domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt)
		phaseID := domain.CoalesceStr(r.PhaseID, r.PhaseIDAlt)
		taskID := domain.CoalesceStr(r.TaskID, r.TaskIDAlt)
		if projectID == "" && phaseID == "" && taskID == "" {
			continue
		}
		ds.CostTransactions = append(ds.CostTransactions, &domain.CostTransaction{
			ID:          r.ID,
			ProjectID:   projectID,
			PhaseID:     phaseID,
			TaskID:      taskID,
			Amount:      domain.Float64FromPtrWithDefault(0, r.Amount),
			IsAccrual:   domain.BoolFromPtrWithDefault(false, r.IsAccrual, r.IsAccrualAlt),
			Date:        firstTime(r.Date, r.DateAlt),
			Description: r.Description,
		})
	}

	for _, r := range raw.Milestones {
		if r.ID == "" {
			continue
		}
		ds.Milestones = append(ds.Milestones, &domain.Milestone{
			ID:              r.ID,
			ProjectID:       domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
			Name:            r.Name,
			Status:          r.Status,
			Date:            firstTime(r.Date, r.DateAlt),
			PercentComplete: domain.FirstFloat(r.PercentComplete, r.PercentCompleteAlt),
		})
	}

	return ds
}

func convertTask(r RawTask) *domain.Task {
	t := &domain.Task{
		ID:               r.ID,
		PhaseID:          domain.CoalesceStr(r.PhaseID, r.PhaseIDAlt),
		ProjectID:        domain.CoalesceStr(r.ProjectID, r.ProjectIDAlt),
		UnitID:           domain.CoalesceStr(r.UnitID, r.UnitIDAlt),
		Name:             r.Name,
		BaselineHours:    domain.FirstFloat(r.BaselineHours, r.BaselineHoursAlt),
		ActualHours:      domain.FirstFloat(r.ActualHours, r.ActualHoursAlt),
		RemainingHours:   domain.FirstFloat(r.RemainingHours, r.RemainingHoursAlt),
		ProjectedHours:   domain.FirstFloat(r.ProjectedHours, r.ProjectedHoursAlt),
		BaselineCost:     domain.FirstFloat(r.BaselineCost, r.BaselineCostAlt),
		ActualCost:       domain.FirstFloat(r.ActualCost, r.ActualCostAlt),
		RemainingCost:    domain.FirstFloat(r.RemainingCost, r.RemainingCostAlt),
		BaselineQty:      domain.FirstFloat(r.BaselineQty, r.BaselineQtyAlt),
		CompletedQty:     domain.FirstFloat(r.CompletedQty, r.CompletedQtyAlt),
		ProgressMethod:   domain.ProgressMethod(normalizeEnum(domain.CoalesceStr(r.ProgressMethod, r.ProgressMethodAlt))),
		MilestoneID:      domain.CoalesceStr(r.MilestoneID, r.MilestoneIDAlt),
		ConstraintType:   normalizeEnum(domain.CoalesceStr(r.ConstraintType, r.ConstraintTypeAlt)),
		ConstraintDate:   firstTime(r.ConstraintDate, r.ConstraintDateAlt),
		StartDate:        firstTime(r.StartDate, r.StartDateAlt),
		EndDate:          firstTime(r.EndDate, r.EndDateAlt),
		PercentComplete:  domain.FirstFloat(r.PercentComplete, r.PercentCompleteAlt),
		IsCritical:       domain.BoolFromPtrWithDefault(false, r.IsCritical, r.IsCriticalAlt),
		IsMilestone:      domain.BoolFromPtrWithDefault(false, r.IsMilestone, r.IsMilestoneAlt),
		IsSummary:        domain.BoolFromPtrWithDefault(false, r.IsSummary, r.IsSummaryAlt),
		TotalSlack:       domain.FirstFloat(r.TotalSlack, r.TotalSlackAlt),
		AssignedResource: domain.CoalesceStr(r.AssignedResource, r.AssignedResourceAlt),
	}
	for _, l := range r.Predecessors {
		t.Predecessors = append(t.Predecessors, convertLink(l))
	}
	for _, l := range r.Successors {
		t.Successors = append(t.Successors, convertLink(l))
	}
	return t
}

func convertLink(r RawTaskLink) domain.TaskLink {
	rel := strings.ToUpper(strings.TrimSpace(r.Relationship))
	switch domain.RelationType(rel) {
	case domain.RelationFS, domain.RelationSS, domain.RelationFF, domain.RelationSF:
	default:
		rel = string(domain.RelationFS)
	}
	return domain.TaskLink{
		TaskID:       domain.CoalesceStr(r.PredecessorTaskID, r.SuccessorTaskID, r.TaskID),
		Name:         domain.CoalesceStr(r.Name, r.NameAlt),
		Relationship: domain.RelationType(rel),
		LagDays:      r.LagDays,
		External:     r.External,
	}
}

func convertNodes(rows []RawHierarchyNode, fallbackType domain.NodeType) []*domain.HierarchyNode {
	var nodes []*domain.HierarchyNode
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		nodeType := domain.NodeType(normalizeEnum(domain.CoalesceStr(r.NodeType, r.NodeTypeAlt)))
		if nodeType == "" {
			nodeType = fallbackType
		}
		nodes = append(nodes, &domain.HierarchyNode{
			ID:            r.ID,
			ParentID:      domain.CoalesceStr(r.ParentID, r.ParentIDAlt),
			Name:          r.Name,
			Type:          nodeType,
			OwnerID:       domain.CoalesceStr(r.OwnerID, r.OwnerIDAlt),
			BaselineHours: domain.FirstFloat(r.BaselineHours, r.BaselineHoursAlt),
			ActualHours:   domain.FirstFloat(r.ActualHours, r.ActualHoursAlt),
			BaselineCost:  domain.FirstFloat(r.BaselineCost, r.BaselineCostAlt),
			ActualCost:    domain.FirstFloat(r.ActualCost, r.ActualCostAlt),
		})
	}
	return nodes
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstTime(dates ...FlexDate) *time.Time {
	for _, d := range dates {
		if t := d.Time(); t != nil {
			return t
		}
	}
	return nil
}

// Package engine derives every computed view of a project-controls dataset:
// the rolled-up WBS tree, earned-value and productivity metrics,
// change-control-adjusted baselines, and point-in-time snapshot payloads.
// Every component is a pure function over its input; the engine performs no
// I/O and never mutates the dataset it is handed.
package engine

import (
	"github.com/tfournier/girder/internal/domain"
)

// Index holds the parent→children lookup maps every higher component leans
// on. Each map is built in one pass over its source array; records with a
// blank or unusable parent id are simply absent from that map.
type Index struct {
	Portfolios []*domain.HierarchyNode
	Customers  []*domain.HierarchyNode
	Sites      []*domain.HierarchyNode
	Units      []*domain.HierarchyNode

	CustomersByPortfolio map[string][]*domain.HierarchyNode
	SitesByCustomer      map[string][]*domain.HierarchyNode
	UnitsByProject       map[string][]*domain.HierarchyNode
	UnitsBySite          map[string][]*domain.HierarchyNode

	ProjectsByUnit      map[string][]*domain.Project
	ProjectsBySite      map[string][]*domain.Project
	ProjectsByCustomer  map[string][]*domain.Project
	ProjectsByPortfolio map[string][]*domain.Project

	PhasesByUnit    map[string][]*domain.Phase
	PhasesByProject map[string][]*domain.Phase

	TasksByPhase   map[string][]*domain.Task
	TasksByProject map[string][]*domain.Task
	SubTasksByTask map[string][]*domain.SubTask

	QuantitiesByTask map[string][]*domain.TaskQuantityEntry

	ProjectsByID  map[string]*domain.Project
	PhasesByID    map[string]*domain.Phase
	TasksByID     map[string]*domain.Task
	EmployeesByID map[string]*domain.Employee
	MilestonesByID map[string]*domain.Milestone

	// Projects visible to rollups: hasSchedule true. Tasks and phases that
	// reference an existing project outside this set are excluded from
	// every map; references to projects we have no record of stay in (the
	// record surfaces as an orphan, never dropped).
	VisibleProjects []*domain.Project
}

// BuildIndex assembles all lookup maps for one dataset. When the dataset
// carries a pre-flattened hierarchyNodes array it wins over the four
// separate hierarchy arrays.
func BuildIndex(ds *domain.Dataset) *Index {
	idx := &Index{
		CustomersByPortfolio: make(map[string][]*domain.HierarchyNode),
		SitesByCustomer:      make(map[string][]*domain.HierarchyNode),
		UnitsByProject:       make(map[string][]*domain.HierarchyNode),
		UnitsBySite:          make(map[string][]*domain.HierarchyNode),
		ProjectsByUnit:       make(map[string][]*domain.Project),
		ProjectsBySite:       make(map[string][]*domain.Project),
		ProjectsByCustomer:   make(map[string][]*domain.Project),
		ProjectsByPortfolio:  make(map[string][]*domain.Project),
		PhasesByUnit:         make(map[string][]*domain.Phase),
		PhasesByProject:      make(map[string][]*domain.Phase),
		TasksByPhase:         make(map[string][]*domain.Task),
		TasksByProject:       make(map[string][]*domain.Task),
		SubTasksByTask:       make(map[string][]*domain.SubTask),
		QuantitiesByTask:     make(map[string][]*domain.TaskQuantityEntry),
		ProjectsByID:         make(map[string]*domain.Project),
		PhasesByID:           make(map[string]*domain.Phase),
		TasksByID:            make(map[string]*domain.Task),
		EmployeesByID:        make(map[string]*domain.Employee),
		MilestonesByID:       make(map[string]*domain.Milestone),
	}

	idx.Portfolios, idx.Customers, idx.Sites, idx.Units = resolveHierarchy(ds)

	for _, c := range idx.Customers {
		if c.ParentID != "" {
			idx.CustomersByPortfolio[c.ParentID] = append(idx.CustomersByPortfolio[c.ParentID], c)
		}
	}
	for _, s := range idx.Sites {
		if s.ParentID != "" {
			idx.SitesByCustomer[s.ParentID] = append(idx.SitesByCustomer[s.ParentID], s)
		}
	}

	// A project with no schedule import is invisible to every rollup.
	hidden := make(map[string]bool)
	for _, p := range ds.Projects {
		idx.ProjectsByID[p.ID] = p
		if !p.HasSchedule {
			hidden[p.ID] = true
			continue
		}
		idx.VisibleProjects = append(idx.VisibleProjects, p)
		if p.UnitID != "" {
			idx.ProjectsByUnit[p.UnitID] = append(idx.ProjectsByUnit[p.UnitID], p)
		}
		if p.SiteID != "" {
			idx.ProjectsBySite[p.SiteID] = append(idx.ProjectsBySite[p.SiteID], p)
		}
		if p.CustomerID != "" {
			idx.ProjectsByCustomer[p.CustomerID] = append(idx.ProjectsByCustomer[p.CustomerID], p)
		}
		if p.PortfolioID != "" {
			idx.ProjectsByPortfolio[p.PortfolioID] = append(idx.ProjectsByPortfolio[p.PortfolioID], p)
		}
	}

	// Units hang off a project (primary) or a site (legacy); the single
	// parent id is classified against what it resolves to.
	siteIDs := make(map[string]bool, len(idx.Sites))
	for _, s := range idx.Sites {
		siteIDs[s.ID] = true
	}
	for _, u := range idx.Units {
		if u.ParentID == "" {
			continue
		}
		switch {
		case hidden[u.ParentID]:
			// parent project excluded from rollups
		case idx.ProjectsByID[u.ParentID] != nil:
			idx.UnitsByProject[u.ParentID] = append(idx.UnitsByProject[u.ParentID], u)
		case siteIDs[u.ParentID]:
			idx.UnitsBySite[u.ParentID] = append(idx.UnitsBySite[u.ParentID], u)
		}
	}

	for _, ph := range ds.Phases {
		if hidden[ph.ProjectID] {
			continue
		}
		idx.PhasesByID[ph.ID] = ph
		if ph.UnitID != "" {
			idx.PhasesByUnit[ph.UnitID] = append(idx.PhasesByUnit[ph.UnitID], ph)
		} else if ph.ProjectID != "" {
			idx.PhasesByProject[ph.ProjectID] = append(idx.PhasesByProject[ph.ProjectID], ph)
		}
	}

	for _, t := range ds.Tasks {
		if hidden[t.ProjectID] {
			continue
		}
		idx.TasksByID[t.ID] = t
		if t.PhaseID != "" {
			idx.TasksByPhase[t.PhaseID] = append(idx.TasksByPhase[t.PhaseID], t)
		}
		if t.ProjectID != "" {
			idx.TasksByProject[t.ProjectID] = append(idx.TasksByProject[t.ProjectID], t)
		}
	}

	for _, st := range ds.SubTasks {
		if st.TaskID != "" {
			idx.SubTasksByTask[st.TaskID] = append(idx.SubTasksByTask[st.TaskID], st)
		}
	}

	for _, q := range ds.QuantityEntries {
		idx.QuantitiesByTask[q.TaskID] = append(idx.QuantitiesByTask[q.TaskID], q)
	}

	for _, e := range ds.Employees {
		idx.EmployeesByID[e.ID] = e
	}
	for _, m := range ds.Milestones {
		idx.MilestonesByID[m.ID] = m
	}

	return idx
}

// resolveHierarchy picks the hierarchy source: the pre-flattened tagged
// array when present, else the four separate arrays.
func resolveHierarchy(ds *domain.Dataset) (portfolios, customers, sites, units []*domain.HierarchyNode) {
	if len(ds.HierarchyNodes) == 0 {
		return ds.Portfolios, ds.Customers, ds.Sites, ds.Units
	}
	for _, n := range ds.HierarchyNodes {
		switch n.Type {
		case domain.NodePortfolio:
			portfolios = append(portfolios, n)
		case domain.NodeCustomer:
			customers = append(customers, n)
		case domain.NodeSite:
			sites = append(sites, n)
		case domain.NodeUnit:
			units = append(units, n)
		}
	}
	return portfolios, customers, sites, units
}

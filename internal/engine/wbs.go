package engine

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tfournier/girder/internal/domain"
)

type WBSKind string

const (
	KindPortfolio WBSKind = "portfolio"
	KindCustomer  WBSKind = "customer"
	KindSite      WBSKind = "site"
	KindUnit      WBSKind = "unit"
	KindProject   WBSKind = "project"
	KindPhase     WBSKind = "phase"
	KindTask      WBSKind = "task"
)

// WBSNode is one arena entry. Children hold arena indices, never pointers,
// so the tree serializes cleanly and the rollup pass is an explicit
// post-order walk with no chance of a reference cycle.
type WBSNode struct {
	ID       int
	EntityID string
	Kind     WBSKind
	Name     string
	WBSCode  string

	StartDate *time.Time
	EndDate   *time.Time

	BaselineHours *float64
	ActualHours   *float64
	BaselineCost  *float64
	ActualCost    *float64

	PercentComplete *float64
	RemainingHours  float64
	DaysRequired    int
	TaskCount       int

	// Task-only attributes.
	Method      domain.ProgressMethod
	Efficiency  *float64
	IsCritical  bool
	IsMilestone bool

	Children []int
}

// WBSTree is the arena plus its root indices, already rolled up and coded.
type WBSTree struct {
	Nodes []WBSNode
	Roots []int
}

type wbsBuilder struct {
	idx      *Index
	progress map[string]TaskProgress
	nodes    []WBSNode
	// claimed marks tasks attached under any unit's phases; they must not
	// be re-attached under a bare project or phase, or their hours would
	// roll up twice.
	claimed map[string]bool
	// placed de-duplicates project/unit/phase/task placement by entity id
	// within one parent list.
	attachedProjects map[string]bool
}

// BuildWBS assembles the portfolio→customer→site→project→unit→phase→task
// tree from the index maps, attaches the derived task metrics, rolls up
// dates, hours, cost, and percent complete bottom-up, then sorts top-level
// items by descendant task count and re-derives every WBS code. Codes are
// derived identifiers: any change in input cardinality renumbers them.
func BuildWBS(idx *Index, progress map[string]TaskProgress) *WBSTree {
	b := &wbsBuilder{
		idx:              idx,
		progress:         progress,
		claimed:          make(map[string]bool),
		attachedProjects: make(map[string]bool),
	}

	b.markClaimedTasks()

	var roots []int
	for _, pf := range idx.Portfolios {
		roots = append(roots, b.addPortfolio(pf))
	}
	// Entities whose parent id resolves to nothing surface at the next
	// visible level up instead of being dropped.
	portfolioIDs := idSet(idx.Portfolios)
	for _, c := range idx.Customers {
		if c.ParentID == "" || !portfolioIDs[c.ParentID] {
			roots = append(roots, b.addCustomer(c))
		}
	}
	customerIDs := idSet(idx.Customers)
	for _, s := range idx.Sites {
		if s.ParentID == "" || !customerIDs[s.ParentID] {
			roots = append(roots, b.addSite(s))
		}
	}
	for _, p := range idx.VisibleProjects {
		if b.attachedProjects[p.ID] {
			continue
		}
		if b.projectParentResolves(p) {
			continue
		}
		roots = append(roots, b.addProject(p))
	}

	tree := &WBSTree{Nodes: b.nodes, Roots: roots}
	for _, r := range roots {
		rollup(tree, r)
	}

	sort.SliceStable(tree.Roots, func(i, j int) bool {
		return tree.Nodes[tree.Roots[i]].TaskCount > tree.Nodes[tree.Roots[j]].TaskCount
	})
	for i, r := range tree.Roots {
		assignCodes(tree, r, fmt.Sprintf("%d", i+1))
	}

	return tree
}

func (b *wbsBuilder) markClaimedTasks() {
	for _, p := range b.idx.VisibleProjects {
		for _, u := range b.idx.UnitsByProject[p.ID] {
			for _, ph := range b.idx.PhasesByUnit[u.ID] {
				for _, t := range b.idx.TasksByPhase[ph.ID] {
					b.claimed[t.ID] = true
				}
			}
		}
	}
}

func (b *wbsBuilder) alloc(n WBSNode) int {
	n.ID = len(b.nodes)
	b.nodes = append(b.nodes, n)
	return n.ID
}

func (b *wbsBuilder) setChildren(id int, children []int) {
	b.nodes[id].Children = children
}

func (b *wbsBuilder) addPortfolio(pf *domain.HierarchyNode) int {
	id := b.alloc(hierarchyNodeShell(pf, KindPortfolio))
	var children []int
	for _, c := range b.idx.CustomersByPortfolio[pf.ID] {
		children = append(children, b.addCustomer(c))
	}
	for _, p := range b.idx.ProjectsByPortfolio[pf.ID] {
		// Straight children-by-direct-id bucket when no customer level
		// exists between the project and the portfolio.
		if p.CustomerID == "" && p.SiteID == "" && !b.attachedProjects[p.ID] {
			children = append(children, b.addProject(p))
		}
	}
	b.setChildren(id, children)
	return id
}

func (b *wbsBuilder) addCustomer(c *domain.HierarchyNode) int {
	id := b.alloc(hierarchyNodeShell(c, KindCustomer))
	var children []int
	for _, s := range b.idx.SitesByCustomer[c.ID] {
		children = append(children, b.addSite(s))
	}
	for _, p := range b.idx.ProjectsByCustomer[c.ID] {
		if p.SiteID == "" && !b.attachedProjects[p.ID] {
			children = append(children, b.addProject(p))
		}
	}
	b.setChildren(id, children)
	return id
}

func (b *wbsBuilder) addSite(s *domain.HierarchyNode) int {
	id := b.alloc(hierarchyNodeShell(s, KindSite))
	var children []int
	for _, p := range b.idx.ProjectsBySite[s.ID] {
		if !b.attachedProjects[p.ID] {
			children = append(children, b.addProject(p))
		}
	}
	// Legacy: units parented straight to a site.
	for _, u := range b.idx.UnitsBySite[s.ID] {
		children = append(children, b.addUnit(u, true))
	}
	b.setChildren(id, children)
	return id
}

// addProject attaches children by priority: units, else direct phases, else
// orphan tasks, each de-duplicated by entity id.
func (b *wbsBuilder) addProject(p *domain.Project) int {
	b.attachedProjects[p.ID] = true
	id := b.alloc(WBSNode{
		EntityID:        p.ID,
		Kind:            KindProject,
		Name:            p.Name,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		BaselineHours:   p.BaselineHours,
		ActualHours:     p.ActualHours,
		BaselineCost:    p.BaselineCost,
		ActualCost:      p.ActualCost,
		PercentComplete: p.PercentComplete,
	})

	var children []int
	if units := b.idx.UnitsByProject[p.ID]; len(units) > 0 {
		seen := make(map[string]bool, len(units))
		for _, u := range units {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			children = append(children, b.addUnit(u, false))
		}
	} else if phases := b.idx.PhasesByProject[p.ID]; len(phases) > 0 {
		seen := make(map[string]bool, len(phases))
		for _, ph := range phases {
			if seen[ph.ID] {
				continue
			}
			seen[ph.ID] = true
			children = append(children, b.addPhase(ph, true))
		}
	} else {
		seen := make(map[string]bool)
		for _, t := range b.idx.TasksByProject[p.ID] {
			if seen[t.ID] || b.claimed[t.ID] {
				continue
			}
			seen[t.ID] = true
			children = append(children, b.addTask(t))
		}
	}
	b.setChildren(id, children)
	return id
}

func (b *wbsBuilder) addUnit(u *domain.HierarchyNode, legacySiteAttach bool) int {
	id := b.alloc(hierarchyNodeShell(u, KindUnit))
	var children []int
	for _, ph := range b.idx.PhasesByUnit[u.ID] {
		children = append(children, b.addPhase(ph, false))
	}
	if legacySiteAttach {
		// Site-attached units may own projects of their own.
		for _, p := range b.idx.ProjectsByUnit[u.ID] {
			if !b.attachedProjects[p.ID] {
				children = append(children, b.addProject(p))
			}
		}
	}
	b.setChildren(id, children)
	return id
}

// addPhase attaches the phase's tasks. Under a bare project
// (excludeClaimed) tasks already claimed by a unit are skipped so the same
// task never rolls up twice.
func (b *wbsBuilder) addPhase(ph *domain.Phase, excludeClaimed bool) int {
	id := b.alloc(WBSNode{
		EntityID:      ph.ID,
		Kind:          KindPhase,
		Name:          ph.Name,
		StartDate:     ph.StartDate,
		EndDate:       ph.EndDate,
		BaselineHours: ph.BaselineHours,
		ActualHours:   ph.ActualHours,
	})
	var children []int
	seen := make(map[string]bool)
	for _, t := range b.idx.TasksByPhase[ph.ID] {
		if seen[t.ID] {
			continue
		}
		if excludeClaimed && b.claimed[t.ID] {
			continue
		}
		seen[t.ID] = true
		children = append(children, b.addTask(t))
	}
	b.setChildren(id, children)
	return id
}

func (b *wbsBuilder) addTask(t *domain.Task) int {
	p := b.progress[t.ID]
	pct := p.PercentComplete
	return b.alloc(WBSNode{
		EntityID:        t.ID,
		Kind:            KindTask,
		Name:            t.Name,
		StartDate:       t.StartDate,
		EndDate:         t.EndDate,
		BaselineHours:   t.BaselineHours,
		ActualHours:     t.ActualHours,
		BaselineCost:    t.BaselineCost,
		ActualCost:      t.ActualCost,
		PercentComplete: &pct,
		RemainingHours:  p.RemainingHours,
		Method:          p.Method,
		Efficiency:      p.Efficiency,
		IsCritical:      t.IsCritical,
		IsMilestone:     t.IsMilestone,
		TaskCount:       1,
	})
}

func (b *wbsBuilder) projectParentResolves(p *domain.Project) bool {
	if p.SiteID != "" {
		for _, s := range b.idx.Sites {
			if s.ID == p.SiteID {
				return true
			}
		}
	}
	if p.CustomerID != "" {
		for _, c := range b.idx.Customers {
			if c.ID == p.CustomerID {
				return true
			}
		}
	}
	if p.PortfolioID != "" {
		for _, pf := range b.idx.Portfolios {
			if pf.ID == p.PortfolioID {
				return true
			}
		}
	}
	return false
}

func hierarchyNodeShell(n *domain.HierarchyNode, kind WBSKind) WBSNode {
	return WBSNode{
		EntityID:      n.ID,
		Kind:          kind,
		Name:          n.Name,
		BaselineHours: n.BaselineHours,
		ActualHours:   n.ActualHours,
		BaselineCost:  n.BaselineCost,
		ActualCost:    n.ActualCost,
	}
}

// rollup runs the post-order pass: dates become the min/max of children,
// hour and cost fields fill from child sums only when the node's own value
// was unset, and percent complete becomes the unweighted mean of children
// when unset. daysRequired derives from the resolved date span.
func rollup(tree *WBSTree, id int) {
	node := &tree.Nodes[id]

	if len(node.Children) > 0 {
		var start, end *time.Time
		var sumBaseline, sumActual, sumBaseCost, sumActualCost float64
		var haveBaseline, haveActual, haveBaseCost, haveActualCost bool
		var pctSum float64
		var pctCount int
		taskCount := 0
		remaining := 0.0

		for _, cid := range node.Children {
			rollup(tree, cid)
			child := &tree.Nodes[cid]

			if child.StartDate != nil && (start == nil || child.StartDate.Before(*start)) {
				start = child.StartDate
			}
			if child.EndDate != nil && (end == nil || child.EndDate.After(*end)) {
				end = child.EndDate
			}
			if child.BaselineHours != nil {
				sumBaseline += *child.BaselineHours
				haveBaseline = true
			}
			if child.ActualHours != nil {
				sumActual += *child.ActualHours
				haveActual = true
			}
			if child.BaselineCost != nil {
				sumBaseCost += *child.BaselineCost
				haveBaseCost = true
			}
			if child.ActualCost != nil {
				sumActualCost += *child.ActualCost
				haveActualCost = true
			}
			if child.PercentComplete != nil {
				pctSum += *child.PercentComplete
				pctCount++
			}
			taskCount += child.TaskCount
			remaining += child.RemainingHours
		}

		node.StartDate = start
		node.EndDate = end
		if node.BaselineHours == nil && haveBaseline {
			node.BaselineHours = &sumBaseline
		}
		if node.ActualHours == nil && haveActual {
			node.ActualHours = &sumActual
		}
		if node.BaselineCost == nil && haveBaseCost {
			node.BaselineCost = &sumBaseCost
		}
		if node.ActualCost == nil && haveActualCost {
			node.ActualCost = &sumActualCost
		}
		if node.PercentComplete == nil && pctCount > 0 {
			mean := clampPercent(math.Round(pctSum / float64(pctCount)))
			node.PercentComplete = &mean
		}
		node.TaskCount = taskCount
		node.RemainingHours = remaining
	}

	if node.StartDate != nil && node.EndDate != nil {
		days := int(node.EndDate.Sub(*node.StartDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
		node.DaysRequired = days
	}
}

func assignCodes(tree *WBSTree, id int, code string) {
	tree.Nodes[id].WBSCode = code
	for i, cid := range tree.Nodes[id].Children {
		assignCodes(tree, cid, fmt.Sprintf("%s.%d", code, i+1))
	}
}

func idSet(nodes []*domain.HierarchyNode) map[string]bool {
	s := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		s[n.ID] = true
	}
	return s
}

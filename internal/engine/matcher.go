package engine

import (
	"log/slog"
	"strings"

	"github.com/tfournier/girder/internal/domain"
)

// MatchMethod records how an hour entry was bound to a task.
type MatchMethod string

const (
	MatchExact       MatchMethod = "exact"
	MatchRelaxed     MatchMethod = "relaxed"
	MatchContainment MatchMethod = "containment"
	MatchNone        MatchMethod = "none"
)

// MatchDecision is the audit row for one resolution attempt. First-match
// wins on ties; Candidates says how many tasks were in the running so that
// ambiguous bindings are observable instead of silent.
type MatchDecision struct {
	EntryID    string
	TaskID     string
	Method     MatchMethod
	Candidates int
}

type taskKeyTable struct {
	exact   map[string]*domain.Task
	relaxed map[string]*domain.Task
	// relaxedCount counts tasks sharing one relaxed key; >1 means the
	// chosen binding was ambiguous.
	relaxedCount map[string]int
}

// MatchHours attaches task ids to hour entries that lack one, using the
// entry's free-text phase/task labels against the schedule's task names.
// The input entries are never mutated; the returned slice holds copies in
// input order. Entries that cannot be resolved come back unchanged — that
// is the expected terminal state for thin labeling, not an error.
func MatchHours(entries []*domain.HourEntry, idx *Index, logger *slog.Logger) ([]*domain.HourEntry, []MatchDecision) {
	table := buildTaskKeyTable(idx)

	out := make([]*domain.HourEntry, 0, len(entries))
	var decisions []MatchDecision

	for _, entry := range entries {
		e := *entry
		out = append(out, &e)

		if e.TaskID != "" {
			continue
		}
		if e.WorkdayPhase == "" && e.WorkdayTask == "" {
			continue
		}

		decision := resolveEntry(&e, idx, table)
		decisions = append(decisions, decision)

		if decision.TaskID != "" {
			e.TaskID = decision.TaskID
		}
		if logger != nil && decision.Method != MatchNone {
			logger.Debug("hour entry matched",
				"entry_id", decision.EntryID,
				"task_id", decision.TaskID,
				"method", string(decision.Method),
				"candidates", decision.Candidates,
			)
		}
	}

	return out, decisions
}

func resolveEntry(e *domain.HourEntry, idx *Index, table *taskKeyTable) MatchDecision {
	exactKey := matchKey(e.ProjectID, normalizeName(e.WorkdayPhase), normalizeName(e.WorkdayTask))
	if t, ok := table.exact[exactKey]; ok {
		return MatchDecision{EntryID: e.ID, TaskID: t.ID, Method: MatchExact, Candidates: 1}
	}

	relaxedKey := matchKey(e.ProjectID, relaxName(e.WorkdayPhase), relaxName(e.WorkdayTask))
	if t, ok := table.relaxed[relaxedKey]; ok {
		return MatchDecision{EntryID: e.ID, TaskID: t.ID, Method: MatchRelaxed, Candidates: table.relaxedCount[relaxedKey]}
	}

	// Last resort: containment scan within the project, first hit wins.
	// Array order decides ties — a known precision limit for duplicate
	// phase+task name pairs.
	phaseLabel := relaxName(e.WorkdayPhase)
	taskLabel := relaxName(e.WorkdayTask)
	if taskLabel == "" {
		return MatchDecision{EntryID: e.ID, Method: MatchNone}
	}

	candidates := 0
	var chosen *domain.Task
	for _, t := range idx.TasksByProject[e.ProjectID] {
		taskName := relaxName(t.Name)
		if taskName == "" || !containsEither(taskName, taskLabel) {
			continue
		}
		if phaseLabel != "" {
			phaseName := ""
			if ph := idx.PhasesByID[t.PhaseID]; ph != nil {
				phaseName = relaxName(ph.Name)
			}
			if phaseName != "" && !containsEither(phaseName, phaseLabel) {
				continue
			}
		}
		candidates++
		if chosen == nil {
			chosen = t
		}
	}

	if chosen == nil {
		return MatchDecision{EntryID: e.ID, Method: MatchNone}
	}
	return MatchDecision{EntryID: e.ID, TaskID: chosen.ID, Method: MatchContainment, Candidates: candidates}
}

func buildTaskKeyTable(idx *Index) *taskKeyTable {
	table := &taskKeyTable{
		exact:        make(map[string]*domain.Task),
		relaxed:      make(map[string]*domain.Task),
		relaxedCount: make(map[string]int),
	}

	for _, p := range idx.VisibleProjects {
		for _, t := range idx.TasksByProject[p.ID] {
			phaseName := ""
			if ph := idx.PhasesByID[t.PhaseID]; ph != nil {
				phaseName = ph.Name
			}

			ek := matchKey(p.ID, normalizeName(phaseName), normalizeName(t.Name))
			if _, exists := table.exact[ek]; !exists {
				table.exact[ek] = t
			}

			rk := matchKey(p.ID, relaxName(phaseName), relaxName(t.Name))
			if _, exists := table.relaxed[rk]; !exists {
				table.relaxed[rk] = t
			}
			table.relaxedCount[rk]++
		}
	}
	return table
}

func matchKey(projectID, phase, task string) string {
	return projectID + "\x00" + phase + "\x00" + task
}

// normalizeName lowercases, trims, and collapses internal whitespace.
func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// relaxName additionally strips punctuation and separators, keeping only
// letters and digits split by single spaces.
func relaxName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

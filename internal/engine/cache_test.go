package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfournier/girder/internal/domain"
)

func TestWeekCache_ExpandsSpan(t *testing.T) {
	c := NewWeekCache()

	weeks := c.WeeksBetween(
		time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16"}, weeks)
}

func TestWeekCache_ReversedSpanEmpty(t *testing.T) {
	c := NewWeekCache()

	weeks := c.WeeksBetween(
		time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
	)

	assert.Empty(t, weeks)
}

func TestWeekCache_EvictsOldestPastCap(t *testing.T) {
	c := NewWeekCache()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxWeekCacheEntries+10; i++ {
		s := start.AddDate(0, 0, 7*i)
		c.WeeksBetween(s, s.AddDate(0, 0, 14))
	}

	assert.LessOrEqual(t, len(c.entries), maxWeekCacheEntries)
	assert.Len(t, c.order, len(c.entries))
}

func TestDeriveMemo_HitOnSameCounts(t *testing.T) {
	e := New(nil)
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks:    []*domain.Task{task("t1", "p1", "", "Work")},
	}

	first := e.Derive(ds)
	second := e.Derive(ds)

	assert.Same(t, first, second, "unchanged structural counts serve the memoized result")
}

func TestDeriveMemo_MissOnCountChange(t *testing.T) {
	e := New(nil)
	ds := &domain.Dataset{
		Projects: []*domain.Project{scheduledProject("p1", "Alpha")},
		Tasks:    []*domain.Task{task("t1", "p1", "", "Work")},
	}

	first := e.Derive(ds)

	ds.Tasks = append(ds.Tasks, task("t2", "p1", "", "More work"))
	second := e.Derive(ds)

	require.NotSame(t, first, second)
	assert.Equal(t, 2, second.WBSData.Items[0].TaskCount)
}

func TestFingerprint_DistinguishesCounts(t *testing.T) {
	a := fingerprint(domain.DatasetCounts{Tasks: 1})
	b := fingerprint(domain.DatasetCounts{Tasks: 2})
	c := fingerprint(domain.DatasetCounts{Tasks: 1})

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

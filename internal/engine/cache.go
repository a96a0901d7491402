package engine

import (
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/tfournier/girder/internal/contract"
	"github.com/tfournier/girder/internal/domain"
)

// maxWeekCacheEntries bounds the week-mapping memo; the oldest key is
// evicted once the cap is exceeded.
const maxWeekCacheEntries = 50

// WeekCache memoizes date-span→week-key expansions. Spreading baselines
// over a tree's worth of tasks hits the same handful of spans over and
// over.
type WeekCache struct {
	entries map[weekSpan][]string
	order   []weekSpan
}

type weekSpan struct {
	start string
	end   string
}

func NewWeekCache() *WeekCache {
	return &WeekCache{entries: make(map[weekSpan][]string)}
}

// WeeksBetween returns the canonical week keys covering [start, end].
// A reversed span yields nil.
func (c *WeekCache) WeeksBetween(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	span := weekSpan{start: weekKey(start), end: weekKey(end)}
	if weeks, ok := c.entries[span]; ok {
		return weeks
	}

	first, err := time.Parse(dayLayout, span.start)
	if err != nil {
		return nil
	}
	last, err := time.Parse(dayLayout, span.end)
	if err != nil {
		return nil
	}
	var weeks []string
	for w := first; !w.After(last); w = w.AddDate(0, 0, 7) {
		weeks = append(weeks, w.Format(dayLayout))
	}

	if len(c.order) >= maxWeekCacheEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[span] = weeks
	c.order = append(c.order, span)
	return weeks
}

// deriveMemo caches the last full derivation keyed by a structural
// fingerprint of the input. A repeat call over a dataset whose array counts
// did not change is served without recomputation; any count change misses
// and replaces the entry.
type deriveMemo struct {
	key    uint64
	result *contract.DeriveResult
}

func (m *deriveMemo) get(key uint64) (*contract.DeriveResult, bool) {
	if m.result == nil || m.key != key {
		return nil, false
	}
	return m.result, true
}

func (m *deriveMemo) put(key uint64, result *contract.DeriveResult) {
	m.key = key
	m.result = result
}

// fingerprint hashes the dataset's per-array counts. Hash failure (it
// cannot happen for a plain struct of ints, but the API returns an error)
// degrades to an always-miss key.
func fingerprint(counts domain.DatasetCounts) uint64 {
	h, err := hashstructure.Hash(counts, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

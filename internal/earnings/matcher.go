// Package earnings matches trading days to trailing-twelve-month earnings
// figures reported by calendar quarter.
package earnings

import (
	"sort"
	"time"

	"stock-strategy-lab/internal/dates"
)

// Matcher resolves a date to the trailing earnings figure of its calendar
// quarter, with a most-recent-available fallback.
type Matcher struct {
	byQuarter map[string]float64
	// fallback is the quarter keys in descending string order. This is not
	// a true chronological sort; it reproduces the upstream fallback
	// behavior and callers tolerate the imprecision.
	fallback []string
}

// NewMatcher creates a matcher over a map keyed by "{year}-Q{quarter}".
func NewMatcher(byQuarter map[string]float64) *Matcher {
	keys := make([]string, 0, len(byQuarter))
	for k := range byQuarter {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return &Matcher{byQuarter: byQuarter, fallback: keys}
}

// Empty reports whether the matcher has no earnings data at all.
func (m *Matcher) Empty() bool {
	return len(m.byQuarter) == 0
}

// At returns the earnings figure for the quarter containing t. When the
// quarter is absent it falls back to the largest known quarter key; when no
// data exists at all it returns (0, false).
func (m *Matcher) At(t time.Time) (float64, bool) {
	if m.Empty() {
		return 0, false
	}
	if v, ok := m.byQuarter[dates.QuarterKey(t)]; ok {
		return v, true
	}
	return m.byQuarter[m.fallback[0]], true
}

// Package quantile computes expanding-window percentile ranks for a
// valuation-ratio series.
package quantile

import (
	"sort"

	"stock-strategy-lab/internal/domain"
)

const (
	// minSeriesLen is the minimum series length before any rank is emitted.
	minSeriesLen = 21
	// minValidValues is the minimum count of positive values required to
	// rank the current one.
	minValidValues = 5
)

// Ranks returns, for each index i, the percentile rank (0-100) of values[i]
// among all valid values seen in values[0..i]. A value is valid iff it is
// strictly positive; invalid values are excluded from the ranking set and
// receive rank 0 themselves. Rank 0 is also emitted while the whole series
// is shorter than 21 values or fewer than 5 valid values have occurred.
// Never errors: malformed values are simply invalid.
func Ranks(values []float64) []float64 {
	ranks := make([]float64, len(values))
	if len(values) < minSeriesLen {
		return ranks
	}

	// history holds the valid values seen so far, kept sorted so the
	// percentile ladder can be rebuilt cheaply at every index.
	history := make([]float64, 0, len(values))
	for i, v := range values {
		if v > 0 {
			at := sort.SearchFloat64s(history, v)
			history = append(history, 0)
			copy(history[at+1:], history[at:])
			history[at] = v
		}

		// The first 20 indexes carry no rank regardless of validity.
		if i < minSeriesLen-1 {
			continue
		}
		if v <= 0 || len(history) < minValidValues {
			continue
		}
		ranks[i] = domain.Round2(rank(history, v))
	}
	return ranks
}

// rank locates v on a 101-point percentile ladder over the sorted history:
// the lowest ladder position whose cut-point is >= v, clamped to 100.
func rank(sorted []float64, v float64) float64 {
	for p := 0; p <= 100; p++ {
		if percentile(sorted, float64(p)/100) >= v {
			return float64(p)
		}
	}
	return 100
}

// percentile computes the p-th quantile (p in [0,1]) of a sorted slice
// using linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

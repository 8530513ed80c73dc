// Package enrich annotates a raw daily quote series with valuation
// percentiles and trailing earnings, producing the records the strategy
// simulation consumes.
package enrich

import (
	"fmt"

	"stock-strategy-lab/internal/dates"
	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/earnings"
	"stock-strategy-lab/internal/marketdata"
	"stock-strategy-lab/internal/quantile"
)

// Annotation notes attached to records.
const (
	NoteEarningsUnavailable = "trailing earnings unavailable for this market"
	NoteEarningsEstimated   = "trailing earnings estimated from close price and valuation ratio"
)

// Annotate converts raw quotes into annotated daily records: every record
// gets a valuation percentile, and, when a matcher is given, a trailing
// earnings figure. A nil matcher marks earnings as unavailable (markets the
// provider has no statements for).
//
// Degraded inputs never fail: short series yield zero percentiles and a
// fully unmatched earnings map falls back to estimating earnings from
// close/valuationRatio. Both degradations are reported in the returned log
// lines. The only error condition is an unparseable quote date.
func Annotate(quotes []*marketdata.Quote, matcher *earnings.Matcher) ([]*domain.DailyRecord, []string, error) {
	var logs []string

	ratios := make([]float64, len(quotes))
	for i, q := range quotes {
		ratios[i] = q.ValuationRatio
	}
	if len(ratios) < 21 {
		logs = append(logs, fmt.Sprintf("valuation history too short (%d points), percentiles zeroed", len(ratios)))
	}
	ranks := quantile.Ranks(ratios)

	records := make([]*domain.DailyRecord, len(quotes))
	for i, q := range quotes {
		records[i] = &domain.DailyRecord{
			Date:                q.Date,
			Close:               domain.Round2(q.Close),
			ValuationRatio:      domain.Round2(q.ValuationRatio),
			ValuationPercentile: ranks[i],
		}
	}

	if matcher == nil {
		for _, r := range records {
			r.Note = NoteEarningsUnavailable
		}
		return records, logs, nil
	}

	unmatched := 0
	for _, r := range records {
		day, err := dates.Parse(r.Date)
		if err != nil {
			return nil, logs, err
		}
		eps, _ := matcher.At(day)
		eps = domain.Round4(eps)
		r.TrailingEarnings = &eps
		if eps == 0 {
			unmatched++
		}
	}

	// When no day matched any reported figure, backfill an estimate from
	// price and valuation ratio wherever both are positive. This is a
	// shared data-preparation step, not a per-strategy decision.
	if unmatched == len(records) && len(records) > 0 {
		logs = append(logs, "no trailing earnings matched any trading day, estimating from valuation ratios")
		for _, r := range records {
			if r.ValuationRatio > 0 && r.Close > 0 {
				eps := domain.Round4(r.Close / r.ValuationRatio)
				r.TrailingEarnings = &eps
				r.Note = NoteEarningsEstimated
			}
		}
	}

	return records, logs, nil
}

// Package marketdata defines the daily-quote provider boundary and its
// HTTP, CSV and stub implementations.
package marketdata

import (
	"context"
	"errors"
)

// Source errors.
var (
	ErrNoData          = errors.New("no quote data available")
	ErrProviderFailure = errors.New("provider request failed")
)

// Quote is one raw provider bar: a trading day's close and valuation ratio.
// A non-positive valuation ratio means the provider had none for that day.
type Quote struct {
	Date           string  `json:"date"`
	Close          float64 `json:"close"`
	ValuationRatio float64 `json:"valuationRatio"`
}

// Source supplies clean, validated market data: daily bars deduplicated by
// date and sorted ascending, and trailing earnings keyed by
// "{year}-Q{quarter}".
type Source interface {
	// DailyBars returns bars for code within [start, end] (ISO dates, inclusive).
	DailyBars(ctx context.Context, code, start, end string) ([]*Quote, error)

	// QuarterlyEarnings returns trailing earnings figures reported between
	// startYear and endYear inclusive. A missing quarter is simply absent.
	QuarterlyEarnings(ctx context.Context, code string, startYear, endYear int) (map[string]float64, error)
}

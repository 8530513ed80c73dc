// Package stub provides a deterministic in-memory market-data source for
// tests and for running the server without a provider.
package stub

import (
	"context"
	"fmt"
	"math"
	"time"

	"stock-strategy-lab/internal/marketdata"
)

// Source serves synthetic daily bars: a slow price wave with a matching
// valuation-ratio wave, one bar per weekday.
type Source struct {
	basePrice float64
	earnings  map[string]float64
}

// NewSource creates a stub source.
func NewSource() *Source {
	return &Source{
		basePrice: 100,
		earnings: map[string]float64{
			"2022-Q1": 4.1, "2022-Q2": 4.3, "2022-Q3": 4.2, "2022-Q4": 4.5,
			"2023-Q1": 4.6, "2023-Q2": 4.8, "2023-Q3": 4.7, "2023-Q4": 5.0,
		},
	}
}

// DailyBars implements marketdata.Source.
func (s *Source) DailyBars(_ context.Context, code, start, end string) ([]*marketdata.Quote, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("stub: bad start date %q", start)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("stub: bad end date %q", end)
	}
	if to.Before(from) {
		return nil, marketdata.ErrNoData
	}

	var quotes []*marketdata.Quote
	for day, i := from, 0; !day.After(to); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		wave := math.Sin(float64(i) / 17)
		price := s.basePrice * (1 + 0.2*wave)
		quotes = append(quotes, &marketdata.Quote{
			Date:           day.Format("2006-01-02"),
			Close:          price,
			ValuationRatio: 20 * (1 + 0.3*wave),
		})
		i++
	}
	if len(quotes) == 0 {
		return nil, marketdata.ErrNoData
	}
	return quotes, nil
}

// QuarterlyEarnings implements marketdata.Source.
func (s *Source) QuarterlyEarnings(_ context.Context, code string, startYear, endYear int) (map[string]float64, error) {
	out := make(map[string]float64)
	for k, v := range s.earnings {
		var year int
		if _, err := fmt.Sscanf(k, "%d-Q", &year); err == nil && year >= startYear && year <= endYear {
			out[k] = v
		}
	}
	return out, nil
}

var _ marketdata.Source = (*Source)(nil)

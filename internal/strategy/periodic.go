package strategy

import (
	"math"

	"stock-strategy-lab/internal/domain"
)

// PeriodicInvest buys a fixed amount at most once per calendar week, funded
// entirely from initial capital. When cash drops below the invest amount,
// investing stops; the strategy never goes below a zero cash floor. Unlike
// the other strategies, return is measured against cumulative invested
// amount rather than initial capital.
type PeriodicInvest struct {
	capital float64
	fee     float64
	amount  float64

	shares   float64
	cash     float64
	invested float64
	weeks    weekSet
}

// NewPeriodicInvest creates a periodic-invest reducer.
func NewPeriodicInvest(p domain.StrategyParameters) *PeriodicInvest {
	return &PeriodicInvest{
		capital: p.InitialCapital,
		fee:     p.FeeRate,
		amount:  p.InvestAmount,
		cash:    p.InitialCapital,
		weeks:   make(weekSet),
	}
}

// Step advances one trading day. skipped reports that a new week's buy was
// passed over for lack of cash, so the runner can log it.
func (s *PeriodicInvest) Step(rec *domain.DailyRecord, week string) (entry domain.LedgerEntry, skipped bool) {
	if !s.weeks.has(week) {
		if s.cash >= s.amount {
			buy := math.Min(s.amount, s.cash)
			s.shares += buy * (1 - s.fee) / rec.Close
			s.invested += buy
			s.cash -= buy
			s.weeks.add(week)
		} else {
			skipped = true
		}
	}

	assets := s.shares*rec.Close + s.cash
	profit := assets - s.capital
	returnPct := 0.0
	if s.invested > 0 {
		returnPct = profit / s.invested * 100
	}
	entry = domain.LedgerEntry{
		Date:      rec.Date,
		Shares:    domain.Round4(s.shares),
		Cash:      domain.Round2(s.cash),
		Assets:    domain.Round2(assets),
		Invested:  domain.Round2(s.invested),
		Profit:    domain.Round2(profit),
		ReturnPct: domain.Round2(returnPct),
	}
	return entry, skipped
}

// Totals returns invested amount, remaining cash and shares, for run logs.
func (s *PeriodicInvest) Totals() (invested, cash, shares float64) {
	return s.invested, s.cash, s.shares
}

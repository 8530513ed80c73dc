package strategy

import "stock-strategy-lab/internal/domain"

// BasePlusPeriodic opens a static base position on day 0 sized by the base
// ratio, then invests the periodic amount weekly from the remaining cash
// pool into a separate float position until cash is depleted. Return is
// measured against initial capital.
type BasePlusPeriodic struct {
	capital   float64
	fee       float64
	amount    float64
	baseRatio float64

	baseShares  float64
	floatShares float64
	cash        float64
	invested    float64
	started     bool
	weeks       weekSet
}

// NewBasePlusPeriodic creates a base-plus-periodic reducer.
func NewBasePlusPeriodic(p domain.StrategyParameters) *BasePlusPeriodic {
	return &BasePlusPeriodic{
		capital:   p.InitialCapital,
		fee:       p.FeeRate,
		amount:    p.InvestAmount,
		baseRatio: p.BaseRatio,
		cash:      p.InitialCapital,
		weeks:     make(weekSet),
	}
}

// Step advances one trading day and returns the day's ledger entry.
func (s *BasePlusPeriodic) Step(rec *domain.DailyRecord, week string) domain.LedgerEntry {
	if !s.started {
		baseAmount := s.capital * s.baseRatio
		s.baseShares = baseAmount * (1 - s.fee) / rec.Close
		s.cash -= baseAmount
		s.invested = baseAmount
		s.started = true
	}

	if !s.weeks.has(week) && s.cash >= s.amount {
		s.invested += s.amount
		s.floatShares += s.amount * (1 - s.fee) / rec.Close
		s.cash -= s.amount
		s.weeks.add(week)
	}

	shares := s.baseShares + s.floatShares
	assets := shares*rec.Close + s.cash
	profit := assets - s.capital
	return domain.LedgerEntry{
		Date:      rec.Date,
		Shares:    domain.Round4(shares),
		Cash:      domain.Round2(s.cash),
		Assets:    domain.Round2(assets),
		Invested:  domain.Round2(s.invested),
		Profit:    domain.Round2(profit),
		ReturnPct: domain.Round2(profit / s.capital * 100),
	}
}

// BaseShares returns the static position size, for run logs.
func (s *BasePlusPeriodic) BaseShares() float64 { return s.baseShares }

package strategy

import "stock-strategy-lab/internal/domain"

// LumpSum buys all shares on day 0 net of one fee charge and never trades
// again. Return is measured against initial capital.
type LumpSum struct {
	capital float64
	fee     float64

	shares   float64
	buyPrice float64
	started  bool
}

// NewLumpSum creates a lump-sum reducer.
func NewLumpSum(p domain.StrategyParameters) *LumpSum {
	return &LumpSum{capital: p.InitialCapital, fee: p.FeeRate}
}

// Step advances one trading day and returns the day's ledger entry.
func (s *LumpSum) Step(rec *domain.DailyRecord) domain.LedgerEntry {
	if !s.started {
		s.shares = s.capital * (1 - s.fee) / rec.Close
		s.buyPrice = rec.Close
		s.started = true
	}

	assets := s.shares * rec.Close
	profit := assets - s.capital
	return domain.LedgerEntry{
		Date:      rec.Date,
		Shares:    domain.Round4(s.shares),
		Cash:      0,
		Assets:    domain.Round2(assets),
		Invested:  domain.Round2(s.capital),
		Profit:    domain.Round2(profit),
		ReturnPct: domain.Round2(profit / s.capital * 100),
	}
}

// Shares returns the position size, for run logs.
func (s *LumpSum) Shares() float64 { return s.shares }

// BuyPrice returns the day-0 execution price, for run logs.
func (s *LumpSum) BuyPrice() float64 { return s.buyPrice }

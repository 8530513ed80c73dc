// Package simulation runs the four capital-deployment strategies over an
// annotated daily series in a single forward pass.
package simulation

import (
	"errors"
	"fmt"
	"time"

	"stock-strategy-lab/internal/dates"
	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/strategy"
)

// ErrEmptyRange reports that no records fall inside the analysis range.
// Surfaced to the caller before any strategy runs.
var ErrEmptyRange = errors.New("no trading days in the requested range")

// Result holds the four per-day ledgers plus the trade-event log and
// human-readable run log produced by one simulation.
type Result struct {
	Days          []*domain.DailyRecord
	LumpSum       []domain.LedgerEntry
	Periodic      []domain.LedgerEntry
	BasePeriodic  []domain.LedgerEntry
	ValuationBand []domain.LedgerEntry
	Events        []domain.TradeEvent
	Logs          []string
}

// Runner executes strategy simulations. It is stateless; every run owns
// its reducers, ledgers and week sets, so concurrent runs never interact.
type Runner struct{}

// NewRunner creates a simulation runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run filters records to [params.StartDate, params.EndDate] and steps the
// four strategies through every remaining day.
func (r *Runner) Run(records []*domain.DailyRecord, params domain.StrategyParameters) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start, err := dates.Parse(params.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dates.Parse(params.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start %s after end %s", dates.ErrInvalidDate, params.StartDate, params.EndDate)
	}

	days, weeks, err := filterRange(records, start, end)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, ErrEmptyRange
	}

	res := &Result{
		Days:          days,
		LumpSum:       make([]domain.LedgerEntry, 0, len(days)),
		Periodic:      make([]domain.LedgerEntry, 0, len(days)),
		BasePeriodic:  make([]domain.LedgerEntry, 0, len(days)),
		ValuationBand: make([]domain.LedgerEntry, 0, len(days)),
	}
	res.logf("running strategy comparison from %s to %s: %d trading days",
		days[0].Date, days[len(days)-1].Date, len(days))

	lump := strategy.NewLumpSum(params)
	periodic := strategy.NewPeriodicInvest(params)
	basePeriodic := strategy.NewBasePlusPeriodic(params)
	band := strategy.NewValuationBand(params)

	for i, rec := range days {
		lumpEntry := lump.Step(rec)
		res.LumpSum = append(res.LumpSum, lumpEntry)

		periodicEntry, skipped := periodic.Step(rec, weeks[i])
		if skipped {
			res.logf("%s periodic invest: cash %.2f below invest amount, week skipped", rec.Date, periodicEntry.Cash)
		}
		res.Periodic = append(res.Periodic, periodicEntry)

		baseEntry := basePeriodic.Step(rec, weeks[i])
		res.BasePeriodic = append(res.BasePeriodic, baseEntry)

		bandEntry, trade := band.Step(rec)
		res.ValuationBand = append(res.ValuationBand, bandEntry)
		if trade != nil {
			res.Events = append(res.Events, domain.TradeEvent{
				Date:                   rec.Date,
				Direction:              trade.Direction,
				LumpSumReturnPct:       lumpEntry.ReturnPct,
				PeriodicReturnPct:      periodicEntry.ReturnPct,
				BasePeriodicReturnPct:  baseEntry.ReturnPct,
				ValuationBandReturnPct: bandEntry.ReturnPct,
			})
			switch trade.Direction {
			case domain.TradeBuy:
				res.logf("%s valuation band: percentile %.2f below %.2f, bought %.2f (cash left %.2f)",
					rec.Date, trade.Percentile, params.LowerQuantile, trade.Amount, trade.CashAfter)
			case domain.TradeSell:
				res.logf("%s valuation band: percentile %.2f above %.2f, sold float position for %.2f (cash now %.2f)",
					rec.Date, trade.Percentile, params.UpperQuantile, trade.Amount, trade.CashAfter)
			}
		}
	}

	res.logf("lump sum: bought %.2f shares at %.2f", domain.Round2(lump.Shares()), lump.BuyPrice())
	invested, cash, shares := periodic.Totals()
	res.logf("periodic invest: %.2f invested in total, %.2f cash left, %.2f shares held",
		invested, cash, domain.Round2(shares))
	res.logf("base plus periodic: opened base position of %.2f shares", domain.Round2(basePeriodic.BaseShares()))
	final := res.ValuationBand[len(res.ValuationBand)-1]
	res.logf("valuation band: final position %.2f%% of assets", final.PositionPct)

	return res, nil
}

// filterRange keeps records within [start, end] and precomputes each kept
// day's week key. Record order is preserved.
func filterRange(records []*domain.DailyRecord, start, end time.Time) ([]*domain.DailyRecord, []string, error) {
	var (
		days  []*domain.DailyRecord
		weeks []string
	)
	for _, rec := range records {
		day, err := dates.Parse(rec.Date)
		if err != nil {
			return nil, nil, err
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		days = append(days, rec)
		weeks = append(weeks, dates.WeekKey(day))
	}
	return days, weeks, nil
}

func (r *Result) logf(format string, args ...any) {
	r.Logs = append(r.Logs, fmt.Sprintf(format, args...))
}

// Package report assembles the presentation layer of a simulation run:
// per-strategy result summaries and chart payloads ready for a Plotly
// frontend.
package report

import (
	"fmt"
	"strconv"

	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/simulation"
)

// StrategySummary is the human-facing outcome of one strategy.
// PositionPct is only populated for the valuation-band strategy.
type StrategySummary struct {
	ReturnPct   string `json:"returnPct"`
	Profit      string `json:"profit"`
	PositionPct string `json:"positionPct,omitempty"`
}

// Summary maps strategy identifiers to their final-day outcomes.
type Summary map[string]StrategySummary

// Builder turns a simulation result into summaries and chart payloads.
type Builder struct{}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Summarize reads the final ledger entry of every strategy.
// The simulation guarantees at least one trading day, so the ledgers are
// never empty here.
func (b *Builder) Summarize(res *simulation.Result) Summary {
	lump := res.LumpSum[len(res.LumpSum)-1]
	periodic := res.Periodic[len(res.Periodic)-1]
	base := res.BasePeriodic[len(res.BasePeriodic)-1]
	band := res.ValuationBand[len(res.ValuationBand)-1]

	return Summary{
		domain.StrategyLumpSum: {
			ReturnPct: percentString(lump.ReturnPct),
			Profit:    amountString(lump.Profit),
		},
		domain.StrategyPeriodic: {
			ReturnPct: percentString(periodic.ReturnPct),
			Profit:    amountString(periodic.Profit),
		},
		domain.StrategyBasePeriodic: {
			ReturnPct: percentString(base.ReturnPct),
			Profit:    amountString(base.Profit),
		},
		domain.StrategyValuationBand: {
			ReturnPct:   percentString(band.ReturnPct),
			Profit:      amountString(band.Profit),
			PositionPct: percentString(band.PositionPct),
		},
	}
}

// percentString renders an already-rounded percentage without trailing
// zeros, matching how the frontend displays it.
func percentString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func amountString(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

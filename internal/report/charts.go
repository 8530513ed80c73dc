package report

import (
	"fmt"

	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/simulation"
)

// Trace is one Plotly trace. Line and Marker stay loosely typed; the
// frontend consumes them verbatim.
type Trace struct {
	X          []string       `json:"x"`
	Y          []float64      `json:"y"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Mode       string         `json:"mode"`
	Line       map[string]any `json:"line,omitempty"`
	Marker     map[string]any `json:"marker,omitempty"`
	YAxis      string         `json:"yaxis,omitempty"`
	ShowLegend bool           `json:"showlegend,omitempty"`
}

// Chart pairs traces with their Plotly layout.
type Chart struct {
	Traces []Trace        `json:"traces"`
	Layout map[string]any `json:"layout"`
}

// ChartSet holds the four charts of an analysis report.
type ChartSet struct {
	PriceAndPercentile Chart `json:"chart1"`
	Returns            Chart `json:"chart2"`
	InvestedAndProfit  Chart `json:"chart3"`
	ValuationRatio     Chart `json:"chart4"`
}

// Charts builds the four chart payloads from a simulation result.
func (b *Builder) Charts(res *simulation.Result, params domain.StrategyParameters) ChartSet {
	n := len(res.Days)
	dateAxis := make([]string, n)
	prices := make([]float64, n)
	percentiles := make([]float64, n)
	earnings := make([]float64, n)
	ratios := make([]float64, n)
	for i, rec := range res.Days {
		dateAxis[i] = rec.Date
		prices[i] = rec.Close
		percentiles[i] = rec.ValuationPercentile
		if rec.TrailingEarnings != nil {
			earnings[i] = *rec.TrailingEarnings
		}
		ratios[i] = rec.ValuationRatio
	}

	return ChartSet{
		PriceAndPercentile: priceChart(dateAxis, prices, percentiles, earnings, params),
		Returns:            returnsChart(dateAxis, res),
		InvestedAndProfit:  investedChart(dateAxis, res),
		ValuationRatio:     ratioChart(dateAxis, ratios),
	}
}

func priceChart(dateAxis []string, prices, percentiles, earnings []float64, params domain.StrategyParameters) Chart {
	return Chart{
		Traces: []Trace{
			{X: dateAxis, Y: prices, Name: "Close price", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#1f77b4", "width": 2}, YAxis: "y1"},
			{X: dateAxis, Y: percentiles, Name: "Valuation percentile (%)", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#d62728", "width": 2, "dash": "dash"}, YAxis: "y2"},
			{X: dateAxis, Y: earnings, Name: "Trailing EPS", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#2ca02c", "width": 2, "dash": "dot"}, YAxis: "y2"},
			{X: dateAxis, Y: constantSeries(params.LowerQuantile, len(dateAxis)), Name: "Lower band", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#2ca02c", "width": 1, "dash": "dot"}, YAxis: "y2"},
			{X: dateAxis, Y: constantSeries(params.UpperQuantile, len(dateAxis)), Name: "Upper band", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#ff7f0e", "width": 1, "dash": "dot"}, YAxis: "y2"},
		},
		Layout: map[string]any{
			"title":      "Price, valuation percentile and trailing EPS",
			"xaxis":      dateXAxis(),
			"yaxis":      map[string]any{"title": "Close price", "side": "left", "showgrid": true, "gridcolor": "#e0e0e0"},
			"yaxis2":     map[string]any{"title": "Valuation percentile (%) / trailing EPS", "overlaying": "y", "side": "right", "showgrid": false},
			"legend":     map[string]any{"x": 0, "y": 1},
			"hovermode":  "x unified",
			"height":     600,
		},
	}
}

func returnsChart(dateAxis []string, res *simulation.Result) Chart {
	traces := []Trace{
		{X: dateAxis, Y: ledgerSeries(res.LumpSum, returnOf), Name: "Lump sum (return %)", Type: "scatter", Mode: "lines",
			Line: map[string]any{"color": "#ff7f0e", "width": 2}},
		{X: dateAxis, Y: ledgerSeries(res.Periodic, returnOf), Name: "Periodic invest (return %)", Type: "scatter", Mode: "lines",
			Line: map[string]any{"color": "#9467bd", "width": 2}},
		{X: dateAxis, Y: ledgerSeries(res.BasePeriodic, returnOf), Name: "Base plus periodic (return %)", Type: "scatter", Mode: "lines",
			Line: map[string]any{"color": "#2ca02c", "width": 2}},
		{X: dateAxis, Y: ledgerSeries(res.ValuationBand, returnOf), Name: "Valuation band (return %)", Type: "scatter", Mode: "lines",
			Line: map[string]any{"color": "#d62728", "width": 2}},
	}

	if len(res.Events) > 0 {
		var buyDates, sellDates []string
		var buyVals, sellVals []float64
		for _, ev := range res.Events {
			switch ev.Direction {
			case domain.TradeBuy:
				buyDates = append(buyDates, ev.Date)
				buyVals = append(buyVals, ev.ValuationBandReturnPct)
			case domain.TradeSell:
				sellDates = append(sellDates, ev.Date)
				sellVals = append(sellVals, ev.ValuationBandReturnPct)
			}
		}
		traces = append(traces,
			Trace{X: buyDates, Y: buyVals, Name: "Valuation band buys", Type: "scatter", Mode: "markers",
				Marker: map[string]any{"color": "#d62728", "size": 12, "symbol": "triangle-up"}, ShowLegend: true},
			Trace{X: sellDates, Y: sellVals, Name: "Valuation band sells", Type: "scatter", Mode: "markers",
				Marker: map[string]any{"color": "#d62728", "size": 12, "symbol": "triangle-down"}, ShowLegend: true},
		)
	}

	return Chart{
		Traces: traces,
		Layout: map[string]any{
			"title":     "Strategy returns with trade markers",
			"xaxis":     dateXAxis(),
			"yaxis":     map[string]any{"title": "Return (%)", "showgrid": true, "gridcolor": "#e0e0e0"},
			"legend":    map[string]any{"x": 0, "y": 1},
			"hovermode": "x unified",
			"height":    600,
		},
	}
}

func investedChart(dateAxis []string, res *simulation.Result) Chart {
	solid := func(color string) map[string]any { return map[string]any{"color": color, "width": 2} }
	dashed := func(color string) map[string]any { return map[string]any{"color": color, "width": 2, "dash": "dash"} }

	return Chart{
		Traces: []Trace{
			{X: dateAxis, Y: ledgerSeries(res.LumpSum, investedOf), Name: "Lump sum invested", Type: "scatter", Mode: "lines", Line: solid("#ff7f0e"), YAxis: "y1"},
			{X: dateAxis, Y: ledgerSeries(res.Periodic, investedOf), Name: "Periodic invest invested", Type: "scatter", Mode: "lines", Line: solid("#9467bd"), YAxis: "y1"},
			{X: dateAxis, Y: ledgerSeries(res.BasePeriodic, investedOf), Name: "Base plus periodic invested", Type: "scatter", Mode: "lines", Line: solid("#2ca02c"), YAxis: "y1"},
			{X: dateAxis, Y: ledgerSeries(res.ValuationBand, investedOf), Name: "Valuation band invested", Type: "scatter", Mode: "lines", Line: solid("#d62728"), YAxis: "y1"},
			{X: dateAxis, Y: ledgerSeries(res.LumpSum, profitOf), Name: "Lump sum profit", Type: "scatter", Mode: "lines", Line: dashed("#ff7f0e"), YAxis: "y2"},
			{X: dateAxis, Y: ledgerSeries(res.Periodic, profitOf), Name: "Periodic invest profit", Type: "scatter", Mode: "lines", Line: dashed("#9467bd"), YAxis: "y2"},
			{X: dateAxis, Y: ledgerSeries(res.BasePeriodic, profitOf), Name: "Base plus periodic profit", Type: "scatter", Mode: "lines", Line: dashed("#2ca02c"), YAxis: "y2"},
			{X: dateAxis, Y: ledgerSeries(res.ValuationBand, profitOf), Name: "Valuation band profit", Type: "scatter", Mode: "lines", Line: dashed("#d62728"), YAxis: "y2"},
		},
		Layout: map[string]any{
			"title":     "Cumulative invested amount vs cumulative profit",
			"xaxis":     dateXAxis(),
			"yaxis":     map[string]any{"title": "Invested amount", "side": "left", "showgrid": true, "gridcolor": "#e0e0e0"},
			"yaxis2":    map[string]any{"title": "Profit", "overlaying": "y", "side": "right", "showgrid": false},
			"legend":    map[string]any{"x": 0, "y": 1},
			"hovermode": "x unified",
			"height":    600,
		},
	}
}

// ratioChart plots the raw valuation ratio with its mean over positive
// observations as a reference line.
func ratioChart(dateAxis []string, ratios []float64) Chart {
	var sum float64
	var count int
	for _, v := range ratios {
		if v > 0 {
			sum += v
			count++
		}
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}

	return Chart{
		Traces: []Trace{
			{X: dateAxis, Y: ratios, Name: "Valuation ratio", Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#1f77b4", "width": 2}},
			{X: dateAxis, Y: constantSeries(mean, len(dateAxis)), Name: fmt.Sprintf("Mean (%.2f)", domain.Round2(mean)), Type: "scatter", Mode: "lines",
				Line: map[string]any{"color": "#ff7f0e", "width": 1, "dash": "dot"}},
		},
		Layout: map[string]any{
			"title":     "Valuation ratio with mean reference",
			"xaxis":     dateXAxis(),
			"yaxis":     map[string]any{"title": "Valuation ratio"},
			"legend":    map[string]any{"x": 0, "y": 1},
			"hovermode": "x unified",
			"height":    600,
		},
	}
}

func dateXAxis() map[string]any {
	return map[string]any{
		"title":      "Date",
		"type":       "date",
		"tickformat": "%Y-%m-%d",
		"showgrid":   true,
		"gridcolor":  "#e0e0e0",
	}
}

func constantSeries(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ledgerSeries(entries []domain.LedgerEntry, pick func(domain.LedgerEntry) float64) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = pick(e)
	}
	return out
}

func returnOf(e domain.LedgerEntry) float64   { return e.ReturnPct }
func investedOf(e domain.LedgerEntry) float64 { return e.Invested }
func profitOf(e domain.LedgerEntry) float64   { return e.Profit }

package domain

// Trade directions.
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// TradeEvent marks a valuation-band trade, with a snapshot of all four
// strategies' return ratios at that date for cross-strategy comparison.
// Events are appended during simulation and never mutated afterward.
type TradeEvent struct {
	Date                   string  `json:"date"`
	Direction              string  `json:"type"`
	LumpSumReturnPct       float64 `json:"lumpSumReturn"`
	PeriodicReturnPct      float64 `json:"periodicReturn"`
	BasePeriodicReturnPct  float64 `json:"basePeriodicReturn"`
	ValuationBandReturnPct float64 `json:"valuationBandReturn"`
}

package domain

// Strategy identifiers.
const (
	StrategyLumpSum       = "LUMP_SUM"
	StrategyPeriodic      = "PERIODIC_INVEST"
	StrategyBasePeriodic  = "BASE_PLUS_PERIODIC"
	StrategyValuationBand = "VALUATION_BAND"
)

// LedgerEntry is one strategy's state at the close of one trading day.
// Money figures are rounded to 2 decimal places and shares to 4, so
// assets = shares*price + cash reconstructs from the entry alone; the
// strategies keep unrounded state internally.
type LedgerEntry struct {
	Date      string  `json:"date"`
	Shares    float64 `json:"shares"`    // total shares held (base + float for band strategies)
	Cash      float64 `json:"cash"`      // cash on hand
	Assets    float64 `json:"assets"`    // shares*price + cash
	Invested  float64 `json:"invested"`  // cumulative capital deployed, non-decreasing
	Profit    float64 `json:"profit"`    // assets - initial capital
	ReturnPct float64 `json:"returnPct"` // profit over the strategy's own denominator, in percent

	// Valuation band only.
	PositionPct float64 `json:"positionPct,omitempty"` // share value as percent of assets
	Signal      string  `json:"signal,omitempty"`      // human-readable decision annotation
	Marker      string  `json:"marker,omitempty"`      // "buy", "sell" or empty
}

package domain

// DailyRecord is one trading day of an annotated price/valuation series.
// Date is an ISO-8601 calendar date, unique and strictly increasing within
// a series. ValuationPercentile and TrailingEarnings are filled in by the
// enrichment step; everything else comes from the data provider.
type DailyRecord struct {
	Date                string   `json:"date"`
	Close               float64  `json:"close"`
	ValuationRatio      float64  `json:"valuationRatio"` // <= 0 means unavailable
	ValuationPercentile float64  `json:"valuationPercentile"`
	TrailingEarnings    *float64 `json:"trailingEarnings"` // nil when the market has none
	Note                string   `json:"note"`
}

// Clone returns a deep copy of the record.
func (r *DailyRecord) Clone() *DailyRecord {
	c := *r
	if r.TrailingEarnings != nil {
		v := *r.TrailingEarnings
		c.TrailingEarnings = &v
	}
	return &c
}

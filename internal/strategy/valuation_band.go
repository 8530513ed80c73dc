package strategy

import (
	"math"

	"stock-strategy-lab/internal/domain"
)

// Band decision annotations.
const (
	SignalBaseOpened    = "base position opened"
	SignalFullyInvested = "fully invested (capital cap reached)"
	SignalBuy           = "adding (valuation percentile below lower band)"
	SignalSell          = "trimming (valuation percentile above upper band)"
	SignalHold          = "holding (valuation percentile in band)"
	SignalNoData        = "no valuation data"
)

// BandTrade describes one executed valuation-band trade, for run logs and
// trade-event assembly.
type BandTrade struct {
	Direction  string  // domain.TradeBuy or domain.TradeSell
	Amount     float64 // gross buy amount or net sell proceeds
	CashAfter  float64
	Percentile float64
}

// ValuationBand opens a half-capital base position on day 0, then trades a
// float position on the daily valuation percentile: buying the remaining
// headroom when the percentile drops below the lower band, selling the
// whole float position when it rises above the upper band. Invested is a
// high-water mark of capital deployed; sells do not reduce it, which caps
// total buying at initial capital. Return is measured against invested.
type ValuationBand struct {
	capital float64
	fee     float64
	lower   float64
	upper   float64

	baseShares  float64
	floatShares float64
	cash        float64
	invested    float64
	started     bool
}

// NewValuationBand creates a valuation-band reducer.
func NewValuationBand(p domain.StrategyParameters) *ValuationBand {
	return &ValuationBand{
		capital: p.InitialCapital,
		fee:     p.FeeRate,
		lower:   p.LowerQuantile,
		upper:   p.UpperQuantile,
		cash:    p.InitialCapital,
	}
}

// Step advances one trading day. The returned trade is nil on days without
// a buy or sell.
func (s *ValuationBand) Step(rec *domain.DailyRecord) (domain.LedgerEntry, *BandTrade) {
	var (
		trade  *BandTrade
		signal string
		marker string
	)

	if !s.started {
		baseAmount := math.Min(s.capital*0.5, s.capital)
		s.baseShares = baseAmount * (1 - s.fee) / rec.Close
		s.cash -= baseAmount
		s.invested = baseAmount
		s.started = true
		signal = SignalBaseOpened
	} else {
		q := rec.ValuationPercentile
		switch {
		case q < s.lower && s.cash > 0:
			headroom := s.capital - s.invested
			if headroom <= 0 {
				signal = SignalFullyInvested
			} else {
				buy := math.Min(s.cash, headroom)
				s.floatShares += buy * (1 - s.fee) / rec.Close
				s.invested += buy
				s.cash -= buy
				signal = SignalBuy
				marker = domain.TradeBuy
				trade = &BandTrade{Direction: domain.TradeBuy, Amount: buy, CashAfter: s.cash, Percentile: q}
			}
		case q > s.upper && s.floatShares > 0:
			proceeds := s.floatShares * rec.Close * (1 - s.fee)
			s.cash += proceeds
			s.floatShares = 0
			signal = SignalSell
			marker = domain.TradeSell
			trade = &BandTrade{Direction: domain.TradeSell, Amount: proceeds, CashAfter: s.cash, Percentile: q}
		case q > 0:
			signal = SignalHold
		default:
			signal = SignalNoData
		}
	}

	shares := s.baseShares + s.floatShares
	positionValue := shares * rec.Close
	assets := positionValue + s.cash
	profit := assets - s.capital
	returnPct := 0.0
	if s.invested > 0 {
		returnPct = profit / s.invested * 100
	}
	positionPct := 0.0
	if assets > 0 {
		positionPct = positionValue / assets * 100
	}

	entry := domain.LedgerEntry{
		Date:        rec.Date,
		Shares:      domain.Round4(shares),
		Cash:        domain.Round2(s.cash),
		Assets:      domain.Round2(assets),
		Invested:    domain.Round2(s.invested),
		Profit:      domain.Round2(profit),
		ReturnPct:   domain.Round2(returnPct),
		PositionPct: domain.Round2(positionPct),
		Signal:      signal,
		Marker:      marker,
	}
	return entry, trade
}

// FloatShares returns the dynamic position size, for tests and run logs.
func (s *ValuationBand) FloatShares() float64 { return s.floatShares }

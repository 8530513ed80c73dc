package domain

import "fmt"

// Parameter defaults. BaseRatio and FeeRate are fractions here; the API
// layer converts from the percent units used on the wire.
const (
	DefaultInitialCapital = 10000.0
	DefaultStartDate      = "2023-01-01"
	DefaultInvestAmount   = 1000.0
	DefaultBaseRatio      = 0.5
	DefaultFeeRate        = 0.001
	DefaultLowerQuantile  = 30.0
	DefaultUpperQuantile  = 70.0
)

// StrategyParameters is the user-supplied configuration for one analysis run.
type StrategyParameters struct {
	InitialCapital float64 // starting cash, > 0
	StartDate      string  // analysis range start (inclusive)
	EndDate        string  // analysis range end (inclusive)
	InvestAmount   float64 // periodic buy amount, >= 0
	BaseRatio      float64 // fraction of capital held as the static base position, 0..1
	FeeRate        float64 // proportional fee charged on every buy and sell, 0..1
	LowerQuantile  float64 // valuation percentile below which the band strategy buys
	UpperQuantile  float64 // valuation percentile above which the band strategy sells
}

// DefaultParameters returns parameters with all defaults applied except the
// date range, which callers must set.
func DefaultParameters() StrategyParameters {
	return StrategyParameters{
		InitialCapital: DefaultInitialCapital,
		StartDate:      DefaultStartDate,
		InvestAmount:   DefaultInvestAmount,
		BaseRatio:      DefaultBaseRatio,
		FeeRate:        DefaultFeeRate,
		LowerQuantile:  DefaultLowerQuantile,
		UpperQuantile:  DefaultUpperQuantile,
	}
}

// Validate checks numeric bounds. Date ordering is checked by the
// simulation runner after parsing.
func (p StrategyParameters) Validate() error {
	if p.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %v", p.InitialCapital)
	}
	if p.InvestAmount < 0 {
		return fmt.Errorf("invest amount must not be negative, got %v", p.InvestAmount)
	}
	if p.BaseRatio < 0 || p.BaseRatio > 1 {
		return fmt.Errorf("base ratio must be in [0,1], got %v", p.BaseRatio)
	}
	if p.FeeRate < 0 || p.FeeRate > 1 {
		return fmt.Errorf("fee rate must be in [0,1], got %v", p.FeeRate)
	}
	if p.LowerQuantile < 0 || p.UpperQuantile > 100 || p.LowerQuantile >= p.UpperQuantile {
		return fmt.Errorf("quantile thresholds must satisfy 0 <= lower < upper <= 100, got %v/%v",
			p.LowerQuantile, p.UpperQuantile)
	}
	return nil
}

package domain

import "testing"

func TestRound_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{12.345, 12.35},
		{12.344, 12.34},
		{0.125, 0.13},
		{-0.125, -0.13},
		{100, 100},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if got := Round4(1.23456); got != 1.2346 {
		t.Errorf("Round4(1.23456) = %v, want 1.2346", got)
	}
	if got := Round4(1.23454); got != 1.2345 {
		t.Errorf("Round4(1.23454) = %v, want 1.2345", got)
	}
}

func TestParametersValidate(t *testing.T) {
	valid := DefaultParameters()
	valid.StartDate, valid.EndDate = "2023-01-01", "2023-06-30"
	if err := valid.Validate(); err != nil {
		t.Fatalf("default parameters must validate: %v", err)
	}

	cases := map[string]func(*StrategyParameters){
		"zero capital":     func(p *StrategyParameters) { p.InitialCapital = 0 },
		"negative amount":  func(p *StrategyParameters) { p.InvestAmount = -1 },
		"ratio above one":  func(p *StrategyParameters) { p.BaseRatio = 1.5 },
		"negative fee":     func(p *StrategyParameters) { p.FeeRate = -0.1 },
		"inverted bands":   func(p *StrategyParameters) { p.LowerQuantile = 80 },
		"band above range": func(p *StrategyParameters) { p.UpperQuantile = 120 },
	}
	for name, mutate := range cases {
		p := valid
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

package quantile

import "testing"

func allZero(ranks []float64) bool {
	for _, r := range ranks {
		if r != 0 {
			return false
		}
	}
	return true
}

func TestRanks_ShortSeriesAllZero(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i + 1)
	}
	if !allZero(Ranks(values)) {
		t.Error("series shorter than 21 values must rank everything 0")
	}
}

func TestRanks_WarmupIndexesAlwaysZero(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i + 1)
	}
	ranks := Ranks(values)
	for i := 0; i < 20; i++ {
		if ranks[i] != 0 {
			t.Errorf("rank[%d] = %v, want 0 during warmup", i, ranks[i])
		}
	}
}

func TestRanks_RisingSeriesHitsTop(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = float64(i + 1)
	}
	ranks := Ranks(values)
	// Every post-warmup value is a new maximum of its expanding window.
	for i := 20; i < 25; i++ {
		if ranks[i] != 100 {
			t.Errorf("rank[%d] = %v, want 100 for a running maximum", i, ranks[i])
		}
	}
}

func TestRanks_FlatSeriesRanksZero(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = 10
	}
	// Every ladder cut-point equals the value, so the lowest qualifying
	// position is 0.
	if !allZero(Ranks(values)) {
		t.Error("flat series must rank 0 everywhere")
	}
}

func TestRanks_NewMinimumRanksZero(t *testing.T) {
	values := make([]float64, 21)
	for i := 0; i < 20; i++ {
		values[i] = float64(i + 2)
	}
	values[20] = 1
	ranks := Ranks(values)
	if ranks[20] != 0 {
		t.Errorf("rank of a new minimum = %v, want 0", ranks[20])
	}
}

func TestRanks_MedianValue(t *testing.T) {
	values := make([]float64, 21)
	for i := 0; i < 20; i++ {
		values[i] = float64(i + 1)
	}
	values[20] = 10.5
	ranks := Ranks(values)
	if ranks[20] != 50 {
		t.Errorf("rank of the median = %v, want 50", ranks[20])
	}
}

func TestRanks_NonPositiveValuesExcluded(t *testing.T) {
	values := make([]float64, 25)
	for i := range values {
		values[i] = float64(i + 1)
	}
	values[22] = 0
	values[23] = -3
	ranks := Ranks(values)
	if ranks[22] != 0 || ranks[23] != 0 {
		t.Errorf("non-positive values must rank 0, got %v and %v", ranks[22], ranks[23])
	}
	// A later valid value still ranks against the valid history only.
	if ranks[24] != 100 {
		t.Errorf("rank[24] = %v, want 100", ranks[24])
	}
}

func TestRanks_TooFewValidValues(t *testing.T) {
	values := make([]float64, 21)
	// Only four positive values by index 20.
	values[17], values[18], values[19], values[20] = 5, 6, 7, 8
	ranks := Ranks(values)
	if ranks[20] != 0 {
		t.Errorf("rank with 4 valid values = %v, want 0", ranks[20])
	}
}

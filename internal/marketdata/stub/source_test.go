package stub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-strategy-lab/internal/marketdata"
)

func TestDailyBars_WeekdaysOnly(t *testing.T) {
	quotes, err := NewSource().DailyBars(context.Background(), "sh.600519", "2023-01-01", "2023-01-31")
	require.NoError(t, err)
	// January 2023 has 22 weekdays.
	assert.Len(t, quotes, 22)

	for _, q := range quotes {
		day, err := time.Parse("2006-01-02", q.Date)
		require.NoError(t, err)
		assert.NotEqual(t, time.Saturday, day.Weekday(), q.Date)
		assert.NotEqual(t, time.Sunday, day.Weekday(), q.Date)
		assert.Greater(t, q.Close, 0.0)
		assert.Greater(t, q.ValuationRatio, 0.0)
	}
}

func TestDailyBars_Deterministic(t *testing.T) {
	s := NewSource()
	first, err := s.DailyBars(context.Background(), "sh.600519", "2023-02-01", "2023-03-31")
	require.NoError(t, err)
	second, err := s.DailyBars(context.Background(), "sh.600519", "2023-02-01", "2023-03-31")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailyBars_EmptyAndInvertedRanges(t *testing.T) {
	s := NewSource()

	_, err := s.DailyBars(context.Background(), "sh.600519", "2023-01-07", "2023-01-08")
	require.ErrorIs(t, err, marketdata.ErrNoData) // weekend only

	_, err = s.DailyBars(context.Background(), "sh.600519", "2023-06-01", "2023-01-01")
	require.ErrorIs(t, err, marketdata.ErrNoData)
}

func TestQuarterlyEarnings_FiltersYears(t *testing.T) {
	earnings, err := NewSource().QuarterlyEarnings(context.Background(), "sh.600519", 2023, 2023)
	require.NoError(t, err)
	require.Len(t, earnings, 4)
	for quarter := range earnings {
		assert.Contains(t, quarter, "2023-Q")
	}
}

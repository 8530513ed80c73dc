package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-strategy-lab/internal/domain"
	"stock-strategy-lab/internal/enrich"
	"stock-strategy-lab/internal/lookup"
	"stock-strategy-lab/internal/marketdata/stub"
)

func testService() *Service {
	return NewService(stub.NewSource(), lookup.DefaultCatalog(), zerolog.Nop())
}

func TestStockData_ResolvesAndAnnotates(t *testing.T) {
	data, err := testService().StockData(context.Background(), "600519", "2023-01-01", "2023-06-30")
	require.NoError(t, err)

	assert.Equal(t, "sh.600519", data.StockCode)
	assert.Equal(t, "Kweichow Moutai", data.StockName)
	assert.False(t, data.HK)
	require.NotEmpty(t, data.Records)
	require.NotNil(t, data.Records[0].TrailingEarnings)
}

func TestStockData_HongKongSkipsEarnings(t *testing.T) {
	data, err := testService().StockData(context.Background(), "hk.00700", "2023-01-01", "2023-06-30")
	require.NoError(t, err)

	assert.True(t, data.HK)
	for _, r := range data.Records {
		assert.Nil(t, r.TrailingEarnings)
		assert.Equal(t, enrich.NoteEarningsUnavailable, r.Note)
	}
}

func TestStockData_UnknownInput(t *testing.T) {
	_, err := testService().StockData(context.Background(), "zzzzzz", "2023-01-01", "2023-06-30")
	require.ErrorIs(t, err, ErrUnknownStock)
}

func TestAnalyze_FullRun(t *testing.T) {
	req := AnalyzeRequest{
		StockCode:     "600519",
		StartDate:     "2023-02-01",
		EndDate:       "2023-06-30",
		DataStartDate: "2023-01-01",
		DataEndDate:   "2023-06-30",
	}
	res := testService().Analyze(context.Background(), req)

	require.True(t, res.Success, "logs: %v / error: %s", res.Logs, res.Error)
	assert.Empty(t, res.Error)
	assert.Equal(t, "sh.600519", res.StockCode)
	assert.NotEmpty(t, res.Logs)
	require.NotNil(t, res.ChartData)
	assert.Len(t, res.Summary, 4)
	assert.NotEmpty(t, res.Series)

	// The analysis window excludes the fetch-only warmup days.
	assert.Equal(t, "2023-02-01", res.Series[0].Date)

	// Every strategy's full ledger rides along with the day records.
	require.Len(t, res.Ledgers, 4)
	for _, id := range []string{
		domain.StrategyLumpSum,
		domain.StrategyPeriodic,
		domain.StrategyBasePeriodic,
		domain.StrategyValuationBand,
	} {
		ledger := res.Ledgers[id]
		require.Len(t, ledger, len(res.Series), "ledger %s", id)
		assert.Equal(t, res.Series[0].Date, ledger[0].Date)
		assert.NotZero(t, ledger[0].Assets)
	}
}

func TestAnalyze_UnknownStockFailsSoftly(t *testing.T) {
	res := testService().Analyze(context.Background(), AnalyzeRequest{StockCode: "zzzzzz"})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.NotEmpty(t, res.Logs)
}

func TestAnalyze_EmptyRangeFailsSoftly(t *testing.T) {
	req := AnalyzeRequest{
		StockCode:     "600519",
		StartDate:     "2024-01-01",
		EndDate:       "2024-06-30",
		DataStartDate: "2023-01-01",
		DataEndDate:   "2023-06-30",
	}
	res := testService().Analyze(context.Background(), req)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestParameters_DefaultsAndPercentConversion(t *testing.T) {
	now := time.Date(2023, 8, 1, 12, 0, 0, 0, time.UTC)

	p := AnalyzeRequest{}.Parameters(now)
	assert.Equal(t, domain.DefaultInitialCapital, p.InitialCapital)
	assert.Equal(t, domain.DefaultStartDate, p.StartDate)
	assert.Equal(t, "2023-08-01", p.EndDate)
	assert.Equal(t, domain.DefaultBaseRatio, p.BaseRatio)
	assert.Equal(t, domain.DefaultFeeRate, p.FeeRate)

	capital, ratio, fee := 50000.0, 40.0, 0.25
	p = AnalyzeRequest{
		InitialCapital: &capital,
		BaseRatio:      &ratio,
		FeeRate:        &fee,
	}.Parameters(now)
	assert.Equal(t, 50000.0, p.InitialCapital)
	assert.Equal(t, 0.4, p.BaseRatio)
	assert.Equal(t, 0.0025, p.FeeRate)
}

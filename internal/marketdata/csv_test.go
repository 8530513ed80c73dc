package marketdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestReadQuotesCSV(t *testing.T) {
	path := writeFile(t, "quotes.csv", `date,close,valuation_ratio
2023-01-02,100.5,20.1
2023-01-03,101.25,20.4
`)
	quotes, err := ReadQuotesCSV(path)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "2023-01-02", quotes[0].Date)
	assert.Equal(t, 100.5, quotes[0].Close)
	assert.Equal(t, 20.4, quotes[1].ValuationRatio)
}

func TestReadQuotesCSV_BadNumber(t *testing.T) {
	path := writeFile(t, "quotes.csv", `date,close,valuation_ratio
2023-01-02,abc,20.1
`)
	_, err := ReadQuotesCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadQuotesCSV_HeaderOnly(t *testing.T) {
	path := writeFile(t, "quotes.csv", "date,close,valuation_ratio\n")
	_, err := ReadQuotesCSV(path)
	require.ErrorIs(t, err, ErrNoData)
}

func TestReadEarningsCSV(t *testing.T) {
	path := writeFile(t, "earnings.csv", `quarter,earnings
2023-Q1,4.2500
2023-Q2,4.5100
`)
	earnings, err := ReadEarningsCSV(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"2023-Q1": 4.25, "2023-Q2": 4.51}, earnings)
}

func TestReadEarningsCSV_MissingFile(t *testing.T) {
	_, err := ReadEarningsCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

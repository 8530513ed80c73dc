package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadQuotesCSV loads daily bars from a CSV file with a header row and
// columns date,close,valuation_ratio. Rows must already be deduplicated and
// sorted by date ascending.
func ReadQuotesCSV(path string) ([]*Quote, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	// Header row.
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var quotes []*Quote
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		closePrice, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad close %q", line, row[1])
		}
		ratio, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad valuation ratio %q", line, row[2])
		}
		quotes = append(quotes, &Quote{Date: row[0], Close: closePrice, ValuationRatio: ratio})
	}

	if len(quotes) == 0 {
		return nil, ErrNoData
	}
	return quotes, nil
}

// ReadEarningsCSV loads quarterly trailing earnings from a CSV file with a
// header row and columns quarter,earnings, e.g. "2023-Q1,4.2500".
func ReadEarningsCSV(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	earnings := make(map[string]float64)
	for line := 2; ; line++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		eps, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad earnings %q", line, row[1])
		}
		earnings[row[0]] = eps
	}
	return earnings, nil
}

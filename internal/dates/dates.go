// Package dates parses calendar dates and buckets them into week and
// quarter keys used for investment timing.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate reports an unparseable date string. Fatal to a run.
var ErrInvalidDate = errors.New("invalid date")

// Permissive read format: single-digit month/day are accepted.
const readFormat = "2006-1-2"

// Format is the canonical ISO-8601 date representation.
const Format = "2006-01-02"

var cleaner = strings.NewReplacer("年", "-", "月", "-", "日", "", ".", "-", "/", "-")

// Parse converts a date string to a time.Time at midnight UTC.
// Accepts ISO dates plus "." and "/" separators and CJK year/month/day
// markers, matching what the analysis front-ends send.
func Parse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrInvalidDate)
	}
	t, err := time.Parse(readFormat, cleaner.Replace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// WeekKey maps a date to its weekly bucket. Two dates share a key iff they
// fall in the same ISO week of the same ISO year. Opaque, equality only.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d%02d", year, week)
}

// QuarterKey maps a date to its calendar quarter, e.g. "2023-Q2".
func QuarterKey(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
}

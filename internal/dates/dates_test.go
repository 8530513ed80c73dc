package dates

import (
	"errors"
	"testing"
	"time"
)

func TestParse_AcceptedFormats(t *testing.T) {
	want := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{
		"2023-01-05",
		"2023-1-5",
		"2023/1/5",
		"2023.1.5",
		"2023年1月5日",
	} {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "notadate", "2023-13-01", "05-01-2023x"} {
		_, err := Parse(input)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Parse(%q): got %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestWeekKey_ISOYearBoundary(t *testing.T) {
	// 2023-01-01 is a Sunday and belongs to ISO week 52 of 2022.
	sunday, _ := Parse("2023-01-01")
	if got := WeekKey(sunday); got != "202252" {
		t.Errorf("WeekKey(2023-01-01) = %q, want 202252", got)
	}

	monday, _ := Parse("2023-01-02")
	if got := WeekKey(monday); got != "202301" {
		t.Errorf("WeekKey(2023-01-02) = %q, want 202301", got)
	}
}

func TestWeekKey_SameWeekSharesKey(t *testing.T) {
	monday, _ := Parse("2023-03-06")
	sunday, _ := Parse("2023-03-12")
	nextMonday, _ := Parse("2023-03-13")

	if WeekKey(monday) != WeekKey(sunday) {
		t.Errorf("monday and sunday of the same ISO week got different keys: %q vs %q",
			WeekKey(monday), WeekKey(sunday))
	}
	if WeekKey(sunday) == WeekKey(nextMonday) {
		t.Errorf("adjacent weeks share key %q", WeekKey(sunday))
	}
}

func TestQuarterKey(t *testing.T) {
	cases := map[string]string{
		"2023-01-01": "2023-Q1",
		"2023-03-31": "2023-Q1",
		"2023-04-01": "2023-Q2",
		"2023-09-30": "2023-Q3",
		"2023-12-31": "2023-Q4",
	}
	for input, want := range cases {
		day, _ := Parse(input)
		if got := QuarterKey(day); got != want {
			t.Errorf("QuarterKey(%s) = %q, want %q", input, got, want)
		}
	}
}

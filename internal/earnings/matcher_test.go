package earnings

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAt_QuarterHit(t *testing.T) {
	m := NewMatcher(map[string]float64{"2023-Q1": 4.2, "2023-Q2": 4.5})

	got, ok := m.At(day(2023, time.February, 15))
	if !ok || got != 4.2 {
		t.Errorf("At(2023-02-15) = (%v, %v), want (4.2, true)", got, ok)
	}
	got, ok = m.At(day(2023, time.June, 30))
	if !ok || got != 4.5 {
		t.Errorf("At(2023-06-30) = (%v, %v), want (4.5, true)", got, ok)
	}
}

func TestAt_FallbackToLargestKey(t *testing.T) {
	m := NewMatcher(map[string]float64{"2022-Q4": 3.0, "2023-Q1": 4.2})

	// 2024-Q3 is absent; the fallback takes the largest key in string
	// order, here 2023-Q1.
	got, ok := m.At(day(2024, time.July, 1))
	if !ok || got != 4.2 {
		t.Errorf("fallback At = (%v, %v), want (4.2, true)", got, ok)
	}
}

func TestAt_Empty(t *testing.T) {
	m := NewMatcher(nil)
	if !m.Empty() {
		t.Error("matcher over nil map must be empty")
	}
	got, ok := m.At(day(2023, time.March, 1))
	if ok || got != 0 {
		t.Errorf("empty matcher At = (%v, %v), want (0, false)", got, ok)
	}
}

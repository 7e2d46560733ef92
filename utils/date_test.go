package utils

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	today := time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same day", time.Date(2026, 8, 1, 2, 0, 0, 0, time.UTC), 0},
		{"tomorrow early", time.Date(2026, 8, 2, 1, 0, 0, 0, time.UTC), 1},
		{"in ten days", time.Date(2026, 8, 11, 23, 0, 0, 0, time.UTC), 10},
		{"yesterday", time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC), -1},
		{"across month end", time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), 33},
	}
	for _, tc := range cases {
		if got := DaysUntil(today, tc.target); got != tc.want {
			t.Errorf("%s: DaysUntil = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 8, 1, 18, 45, 12, 999, time.UTC)
	got := DateOnly(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("DateOnly left time components: %v", got)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 1 {
		t.Errorf("DateOnly changed the date: %v", got)
	}
}

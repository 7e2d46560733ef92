package utils

import "time"

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the calendar-day distance from today to target
// (negative when target is in the past). Both sides are compared at
// midnight so the result is a whole number of days.
func DaysUntil(today, target time.Time) int {
	from := DateOnly(today)
	to := DateOnly(target)
	return int(to.Sub(from).Hours() / 24)
}

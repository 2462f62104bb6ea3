// Package stats derives windowed views from ledger snapshots. Everything is
// recomputed from its inputs on each call.
package stats

import (
	"fmt"
	"time"

	"example.com/fittrack/internal/domain"
)

// Window is the span a rollup covers around a reference day.
type Window string

const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow validates a window name.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case WindowDay, WindowWeek, WindowMonth:
		return w, nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// Bounds returns the first day of the window containing ref and the first
// day after it. Weeks are ISO weeks starting on Monday.
func Bounds(ref domain.Date, w Window) (start, end domain.Date) {
	switch w {
	case WindowWeek:
		offset := (int(ref.Weekday()) + 6) % 7
		start = ref.AddDays(-offset)
		return start, start.AddDays(7)
	case WindowMonth:
		start = domain.NewDate(ref.Year(), ref.Month(), 1)
		return start, domain.Date{Time: start.AddDate(0, 1, 0)}
	default:
		return ref, ref.AddDays(1)
	}
}

// Contains reports whether day falls inside the window around ref.
func Contains(day, ref domain.Date, w Window) bool {
	start, end := Bounds(ref, w)
	return !day.Before(start) && day.Before(end)
}

// Days lists every day of the window around ref in order.
func Days(ref domain.Date, w Window) []domain.Date {
	start, end := Bounds(ref, w)
	days := make([]domain.Date, 0, int(end.Sub(start.Time)/(24*time.Hour)))
	for d := start; d.Before(end); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

package timecalc

import (
	"fmt"
	"math"
	"time"
)

const (
	// DateLayout is the calendar date format stored on every entry.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format stored on every entry.
	ClockLayout = "15:04"
)

// clockLayouts are tried in order; form input may carry seconds.
var clockLayouts = []string{ClockLayout, "15:04:05"}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ParseClock parses a time of day and returns the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

// Combine returns the instant of clock on date. Instants are computed in UTC
// so that the span between two of them never depends on DST transitions.
func Combine(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	off, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(off), nil
}

// Span returns exit-entry on the given date.
func Span(date, entry, exit string) (time.Duration, error) {
	start, err := Combine(date, entry)
	if err != nil {
		return 0, err
	}
	end, err := Combine(date, exit)
	if err != nil {
		return 0, err
	}
	return end.Sub(start), nil
}

// CeilHours rounds d up to whole started hours.
func CeilHours(d time.Duration) int {
	return int(math.Ceil(d.Hours()))
}

// FormatHours formats whole hours like "1h" or "12h".
func FormatHours(h int) string {
	return fmt.Sprintf("%dh", h)
}

// Today returns the calendar date of t in DateLayout.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

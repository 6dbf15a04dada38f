package dateutil

import (
	"fmt"
	"regexp"
	"time"
)

const layout = "2006-01-02"

var reDateOnly = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD date into a UTC-midnight instant.
// The regexp gate rejects shapes time.Parse would accept loosely (e.g. 2024-1-2).
func ParseDate(s string) (time.Time, error) {
	if !reDateOnly.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(layout)
}

// DaysBetween returns b - a in whole days. Negative when b is before a.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AddDays shifts a date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DaysUntil returns the signed day count from now's calendar day to date:
// positive when date is in the future, negative when past, zero today.
func DaysUntil(date string, now time.Time) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(DateOnly(now)).Hours() / 24), nil
}

// DateOnly truncates an instant to UTC midnight of its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

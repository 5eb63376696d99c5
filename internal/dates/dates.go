package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical date form used for comparisons and storage.
const Layout = "2006-01-02"

const day = 24 * time.Hour

var ErrInvalidDate = errors.New("invalid date")

// Parse reads a canonical date as UTC midnight.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Format returns the canonical form of t's calendar date.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether s is a canonical calendar date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// civil drops the clock and location, keeping the calendar date of t.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = civil(t)
	wd := int(t.Weekday())
	if wd == 0 {
		return t.AddDate(0, 0, -6)
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// WeekDays returns the seven days of t's week, Monday first.
func WeekDays(t time.Time) [7]time.Time {
	var days [7]time.Time
	start := WeekStart(t)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// AddDays shifts a canonical date by n days.
func AddDays(s string, n int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysDifference returns floor((end-start)/day).
func DaysDifference(start, end string) (int, error) {
	s, err := Parse(start)
	if err != nil {
		return 0, err
	}
	e, err := Parse(end)
	if err != nil {
		return 0, err
	}
	diff := e.Sub(s)
	n := int(diff / day)
	if diff%day < 0 {
		n--
	}
	return n, nil
}

// Span is the inclusive number of days between start and end.
func Span(start, end string) (int, error) {
	n, err := DaysDifference(start, end)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

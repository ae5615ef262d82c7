package calendar

import (
	"fmt"
	"time"
)

// Canonical textual forms. TimestampLayout is the wire and storage format
// for reminder start/end times; DateLayout is the holiday date format.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Date is a calendar date without a time component. Equality and ordering
// are defined on the type itself, so no caller ever compares raw timestamp
// strings or substrings of them.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// ParseTimestamp parses a canonical "YYYY-MM-DD HH:mm:ss" timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatTimestamp renders a time in the canonical timestamp form.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// ordinal maps the date onto a single comparable integer. Days max out at
// 31 and months at 12, so the encoding is collision-free.
func (d Date) ordinal() int {
	return d.Year*512 + int(d.Month)*32 + d.Day
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return d.ordinal() < o.ordinal()
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	return d.ordinal() > o.ordinal()
}

// Time returns midnight local time on the date. Month/day overflow is
// normalized by the time package, so AddDays can lean on it.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// At returns the given time-of-day on this date.
func (d Date) At(hour, minute, second int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, second, 0, time.Local)
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddYears returns the date n years later.
func (d Date) AddYears(n int) Date {
	return DateOf(d.Time().AddDate(n, 0, 0))
}

// Window is the inclusive date range the UI permits browsing and editing
// within. Dates outside it are never editable.
type Window struct {
	Start Date
	End   Date
}

// WindowFrom derives the browsing window [today, today+years] at date
// granularity.
func WindowFrom(today Date, years int) Window {
	return Window{Start: today, End: today.AddYears(years)}
}

// Contains reports whether the date falls inside the window, inclusive on
// both edges.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

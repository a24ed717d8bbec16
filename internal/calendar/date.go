// Package calendar provides proleptic Gregorian date helpers shared by the
// symbolic calculators.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned when a date or clock value falls outside the
// supported proleptic Gregorian range.
var ErrOutOfRange = errors.New("input out of supported range")

// Date is a proleptic Gregorian calendar date with no time zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Clock is a local civil time of day.
type Clock struct {
	Hour   int
	Minute int
}

// NewDate builds a Date and checks that it names a real calendar day.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrOutOfRange, year, month, day)
	}
	return d, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Valid reports whether d is a real date with year 1 or later.
//
// time.Date normalizes overflowing fields (Feb 30 becomes Mar 2), so a
// round trip through it detects impossible days.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return false
	}
	t := d.Time()
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return JulianDayNumber(other) - JulianDayNumber(d)
}

// ISOWeekday returns the weekday index with Monday as 0 and Sunday as 6.
func (d Date) ISOWeekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// String formats c as HH:MM:SS with zero seconds.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:00", c.Hour, c.Minute)
}

// At combines d and c into a UTC instant.
func At(d Date, c Clock) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, c.Hour, c.Minute, 0, 0, time.UTC)
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseClock parses a time of day in HH:MM or HH:MM:SS format.
// Seconds are accepted and dropped.
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("parse time %q: want HH:MM or HH:MM:SS", s)
}

// DayName returns the English day of week name (Monday, Tuesday, etc.)
func DayName(d Date) string {
	return d.Time().Weekday().String()
}

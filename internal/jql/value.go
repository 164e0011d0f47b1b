package jql

import (
	"fmt"
	"time"
)

// dateLayout is the only date form JQL literals use.
const dateLayout = "2006-01-02"

// Value is a sealed interface over JQL literal kinds.
// Only Text and Date implement it.
//
// Numeric and boolean literals are not modelled; callers needing them pass
// the digits as Text, which JQL accepts quoted.
type Value interface {
	valueNode() // Sealed - only types in this package implement it
}

// Text is a free-text literal. It always renders through EscapeText.
type Text string

func (Text) valueNode() {}

// Date is a calendar date literal, rendered as a quoted "YYYY-MM-DD".
//
// The zero Date is 0001-01-01. Dates can only be built through NewDate,
// ParseDate or DateOf, which reject days that do not exist.
type Date struct {
	t time.Time // Always midnight UTC
}

func (Date) valueNode() {}

// NewDate creates a Date from its calendar components.
// Returns *ValidationError if the date does not exist (e.g. month 13,
// February 30) or the year does not fit in four digits.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, &ValidationError{
			Field:   "date.year",
			Message: fmt.Sprintf("year %d out of range [1, 9999]", year),
		}
	}
	if month < time.January || month > time.December {
		return Date{}, &ValidationError{
			Field:   "date.month",
			Message: fmt.Sprintf("month %d out of range [1, 12]", int(month)),
		}
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (Feb 30 → Mar 2); a mismatch means the
	// day does not exist in that month.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, &ValidationError{
			Field:   "date.day",
			Message: fmt.Sprintf("day %d out of range for %04d-%02d", day, year, int(month)),
		}
	}

	return Date{t: t}, nil
}

// MustDate is like NewDate but panics on error.
// Use only in tests or with constant inputs.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", s),
			Err:     err,
		}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) (Date, error) {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Year returns the date's year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the date's month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the date's day of month.
func (d Date) Day() int { return d.t.Day() }

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// String returns the unquoted "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

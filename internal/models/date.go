package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate matches every error returned by NewDate and ParseDate.
var ErrInvalidDate = errors.New("invalid date")

// DateError describes why a year/month/day triple is not a calendar day.
type DateError struct {
	Reason string
}

func (e *DateError) Error() string { return e.Reason }

// Is reports ErrInvalidDate as a match.
func (e *DateError) Is(target error) bool { return target == ErrInvalidDate }

// Date is a calendar day without a time component. It serialises as "YYYY-MM-DD".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the triple against the Gregorian calendar.
func NewDate(year, month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, &DateError{Reason: fmt.Sprintf("year %d is out of range", year)}
	}
	if month < 1 || month > 12 {
		return Date{}, &DateError{Reason: "month must be in 1..12"}
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return Date{}, &DateError{Reason: "day is out of range for month"}
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, &DateError{Reason: fmt.Sprintf("cannot parse %q as YYYY-MM-DD", s)}
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

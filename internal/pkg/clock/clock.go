// Package clock provides the wall-clock and calendar-date source used by ledger operations.
package clock

import (
	"time"
)

// Clock returns the current instant.
type Clock interface {
	Now() time.Time
}

// Real is the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Used in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Date truncates t to its calendar date in t's own location and returns it as
// midnight UTC, the representation Postgres DATE columns scan into.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the calendar date of c.Now() as observed in loc.
func Today(c Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Date(c.Now().In(loc))
}

// LoadLocation resolves an IANA zone name, falling back to fallback when name is empty or unknown.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}

// Package model defines domain types for pacewatch ledgers and summaries.
package model

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// MonthOf returns the key for the calendar month containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// ParseMonth validates and returns a MonthKey from its string form.
func ParseMonth(s string) (MonthKey, error) {
	if _, err := time.Parse("2006-01", s); err != nil {
		return "", fmt.Errorf("model: invalid month key %q: %w", s, err)
	}
	return MonthKey(s), nil
}

func (k MonthKey) String() string { return string(k) }

// Start returns midnight UTC on the first day of the month.
// A malformed key yields the zero time; callers that accept external
// input should go through ParseMonth first.
func (k MonthKey) Start() time.Time {
	t, _ := time.Parse("2006-01", string(k))
	return t
}

// End returns midnight UTC on the last day of the month.
func (k MonthKey) End() time.Time {
	s := k.Start()
	return s.AddDate(0, 1, -1)
}

// Days returns the number of days in the month (28-31, leap-year aware).
func (k MonthKey) Days() int {
	s := k.Start()
	return s.AddDate(0, 1, -1).Day()
}

// Contains reports whether the calendar date of t falls inside the month.
func (k MonthKey) Contains(t time.Time) bool {
	return MonthOf(t) == k
}

// Prev returns the key of the preceding calendar month.
func (k MonthKey) Prev() MonthKey {
	return MonthOf(k.Start().AddDate(0, -1, 0))
}

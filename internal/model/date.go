package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// dateLayout is the only accepted wire and storage form of an event date.
const dateLayout = "2006-01-02"

// ErrInvalidDate is returned by ParseDate for anything that is not a
// YYYY-MM-DD calendar day.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date is a calendar day in the venue's local sense.  It carries no time of
// day and no zone; two dates are equal when their strings are equal.
type Date string

// ParseDate validates s and returns it as a Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// DateOf returns the calendar day of t as observed in t's own location.
func DateOf(t time.Time) Date { return Date(t.Format(dateLayout)) }

// String implements fmt.Stringer.
func (d Date) String() string { return string(d) }

// Before reports whether d is an earlier day than o.  YYYY-MM-DD strings
// order lexically the same way they order chronologically.
func (d Date) Before(o Date) bool { return string(d) < string(o) }

// DateSet is a set of calendar days.
type DateSet map[Date]struct{}

// Has reports membership.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the members in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Package payweek implements the business pay-week calendar: a fixed
// Thursday-through-Wednesday week used for timesheet review and wage
// computation.
package payweek

import "time"

// Week is one Thursday-to-Wednesday pay period, date-only in UTC.
type Week struct {
	From time.Time // Thursday
	To   time.Time // the following Wednesday
}

// Truncate drops the time-of-day component of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Containing returns the pay week containing t, anchored on the most recent
// Thursday.
func Containing(t time.Time) Week {
	d := Truncate(t)
	offset := (int(d.Weekday()) - int(time.Thursday) + 7) % 7
	from := d.AddDate(0, 0, -offset)
	return Week{From: from, To: from.AddDate(0, 0, 6)}
}

// Contains reports whether d falls inside w, inclusive of both boundaries.
func (w Week) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(w.From) && !d.After(w.To)
}

// Equal reports whether two weeks cover the same date range.
func (w Week) Equal(other Week) bool {
	return w.From.Equal(other.From) && w.To.Equal(other.To)
}

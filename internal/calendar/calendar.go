// Package calendar holds the day arithmetic used to turn a picked date into
// the day offset the room backends are keyed on.
package calendar

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayOffset returns the signed number of calendar days from reference to
// requested. Both instants are reduced to the start of their day in the
// reference's location before the difference is rounded, so any instant on
// the reference's date yields 0 and DST transitions still land on whole days.
// Negative values mean the requested date is in the past.
func DayOffset(requested, reference time.Time) int {
	loc := reference.Location()
	from := StartOfDay(reference)
	to := StartOfDay(requested.In(loc))
	return int(math.Round(float64(to.Sub(from)) / float64(day)))
}

// DateKey returns the ledger key for t: its instant in epoch milliseconds.
func DateKey(t time.Time) int64 {
	return t.UnixMilli()
}

// FromKey converts a ledger key back into a local time.
func FromKey(key int64) time.Time {
	return time.UnixMilli(key).In(time.Local)
}

// Days returns count consecutive day starts beginning at the day containing
// first. AddDate is used so every entry is a local midnight.
func Days(first time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	start := StartOfDay(first)
	out := make([]time.Time, count)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

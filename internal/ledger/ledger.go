// Package ledger tracks which dates the user has toggled on and the lookup
// issued for each. A Ledger is never modified in place: every change returns
// a new Ledger, so holders of an old one keep seeing the old contents.
package ledger

import (
	"context"
	"slices"
	"time"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/source"
)

// Querier starts availability lookups and says which dates it refuses
// outright. *availability.Querier implements it.
type Querier interface {
	Query(ctx context.Context, src source.DataSource, date time.Time, groupSize int) *availability.Future
	InPast(date time.Time) bool
}

var _ Querier = (*availability.Querier)(nil)

// Ledger maps date keys to lookups. A present key with a nil Future means the
// date is booked but no lookup was started (crawler or disabled source).
// The zero value is an empty ledger.
type Ledger struct {
	entries map[int64]*availability.Future
}

// Toggle removes date from l if present. Otherwise it adds date mapped to
// the result of q.Query, unless q reports the date as past, in which case l
// is returned as is and no lookup starts. The key is calendar.DateKey(date).
// l is never modified.
func Toggle(ctx context.Context, q Querier, l Ledger, date time.Time, src source.DataSource, groupSize int) Ledger {
	key := calendar.DateKey(date)
	if _, ok := l.entries[key]; ok {
		return l.without(key)
	}
	if q.InPast(date) {
		return l
	}
	return l.with(key, q.Query(ctx, src, date, groupSize))
}

// IsBooked reports whether date's key is present.
func IsBooked(l Ledger, date time.Time) bool {
	_, ok := l.entries[calendar.DateKey(date)]
	return ok
}

// Entry returns the Future recorded for date and whether the key is present.
func (l Ledger) Entry(date time.Time) (*availability.Future, bool) {
	return l.EntryForKey(calendar.DateKey(date))
}

// EntryForKey is Entry for a raw key.
func (l Ledger) EntryForKey(key int64) (*availability.Future, bool) {
	f, ok := l.entries[key]
	return f, ok
}

// Len returns the number of booked dates.
func (l Ledger) Len() int { return len(l.entries) }

// Keys returns the booked keys in ascending order.
func (l Ledger) Keys() []int64 {
	keys := make([]int64, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SameKeys reports whether l and other hold the same set of keys.
func (l Ledger) SameKeys(other Ledger) bool {
	if len(l.entries) != len(other.entries) {
		return false
	}
	for k := range l.entries {
		if _, ok := other.entries[k]; !ok {
			return false
		}
	}
	return true
}

func (l Ledger) with(key int64, f *availability.Future) Ledger {
	next := make(map[int64]*availability.Future, len(l.entries)+1)
	for k, v := range l.entries {
		next[k] = v
	}
	next[key] = f
	return Ledger{entries: next}
}

func (l Ledger) without(key int64) Ledger {
	next := make(map[int64]*availability.Future, len(l.entries))
	for k, v := range l.entries {
		if k != key {
			next[k] = v
		}
	}
	return Ledger{entries: next}
}

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/library"
	"github.com/five82/libroom/internal/source"
)

// spyQuerier mimics availability.Querier: nil for past dates, a settled
// Future otherwise.
type spyQuerier struct {
	now   time.Time
	calls int
}

func (s *spyQuerier) Query(_ context.Context, src source.DataSource, date time.Time, _ int) *availability.Future {
	offset := calendar.DayOffset(date, s.now)
	if offset < 0 {
		return nil
	}
	if _, ok := src.(source.EmbeddedCommand); !ok {
		return nil
	}
	s.calls++
	f, settle := availability.NewFuture(calendar.DateKey(date), offset)
	settle([]library.RoomAvailability{}, nil)
	return f
}

func (s *spyQuerier) InPast(date time.Time) bool {
	return calendar.DayOffset(date, s.now) < 0
}

var now = time.Date(2026, time.May, 14, 9, 30, 0, 0, time.Local)

func today() time.Time { return calendar.StartOfDay(now) }

func TestToggle_TwiceRestoresKeys(t *testing.T) {
	q := &spyQuerier{now: now}
	ctx := context.Background()

	start := Toggle(ctx, q, Ledger{}, today().AddDate(0, 0, 5), source.EmbeddedCommand{}, 10)
	for _, days := range []int{-2, 0, 1, 5, 9} {
		for _, src := range []source.DataSource{source.EmbeddedCommand{}, source.RemoteCrawler{Host: "localhost", Port: 4444}, source.Disabled{}} {
			date := today().AddDate(0, 0, days)
			once := Toggle(ctx, q, start, date, src, 10)
			twice := Toggle(ctx, q, once, date, src, 10)
			if !twice.SameKeys(start) {
				t.Fatalf("toggle pair for day %+d src %v: keys %v, want %v", days, src, twice.Keys(), start.Keys())
			}
		}
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	q := &spyQuerier{now: now}
	ctx := context.Background()
	date := today().AddDate(0, 0, 1)

	empty := Ledger{}
	booked := Toggle(ctx, q, empty, date, source.EmbeddedCommand{}, 10)
	if empty.Len() != 0 {
		t.Fatalf("input ledger grew to %d entries", empty.Len())
	}
	if !IsBooked(booked, date) {
		t.Fatalf("date not booked after toggle")
	}

	unbooked := Toggle(ctx, q, booked, date, source.EmbeddedCommand{}, 10)
	if !IsBooked(booked, date) {
		t.Fatalf("removing from a copy changed the original")
	}
	if IsBooked(unbooked, date) {
		t.Fatalf("date still booked after second toggle")
	}
}

func TestToggle_EmbeddedFutureDate(t *testing.T) {
	q := &spyQuerier{now: now}
	date := today().AddDate(0, 0, 2)

	l := Toggle(context.Background(), q, Ledger{}, date, source.EmbeddedCommand{}, 10)
	keys := l.Keys()
	if len(keys) != 1 || keys[0] != calendar.DateKey(date) {
		t.Fatalf("keys = %v, want [%d]", keys, calendar.DateKey(date))
	}
	f, ok := l.Entry(date)
	if !ok || f == nil {
		t.Fatalf("Entry = (%v, %v), want future", f, ok)
	}
	rooms, err := f.Wait(context.Background())
	if err != nil || rooms == nil {
		t.Fatalf("future = (%v, %v), want settled sequence", rooms, err)
	}
}

func TestToggle_PastDateLeavesLedgerUnchanged(t *testing.T) {
	q := &spyQuerier{now: now}
	date := today().AddDate(0, 0, -3)
	start := Ledger{}.with(calendar.DateKey(today().AddDate(0, 0, 4)), nil)

	l := Toggle(context.Background(), q, start, date, source.EmbeddedCommand{}, 10)
	if IsBooked(l, date) {
		t.Fatalf("past date booked: keys %v", l.Keys())
	}
	if !l.SameKeys(start) {
		t.Fatalf("keys = %v, want %v", l.Keys(), start.Keys())
	}
	if q.calls != 0 {
		t.Fatalf("backend calls = %d, want 0", q.calls)
	}
}

func TestToggle_PastDateWithRealQuerier(t *testing.T) {
	q := &availability.Querier{Now: func() time.Time { return now }}
	l := Toggle(context.Background(), q, Ledger{}, today().AddDate(0, 0, -3), source.EmbeddedCommand{}, 10)
	if l.Len() != 0 {
		t.Fatalf("ledger len after past-date toggle = %d, want 0", l.Len())
	}
}

func TestToggle_DisabledAddsAbsentEntry(t *testing.T) {
	q := &spyQuerier{now: now}
	date := today()

	l := Toggle(context.Background(), q, Ledger{}, date, source.Disabled{}, 10)
	f, ok := l.Entry(date)
	if !ok || f != nil {
		t.Fatalf("Entry = (%v, %v), want present nil", f, ok)
	}
}

func TestToggle_CrawlerAddsAbsentEntry(t *testing.T) {
	q := &spyQuerier{now: now}
	date := today().AddDate(0, 0, 1)

	l := Toggle(context.Background(), q, Ledger{}, date, source.RemoteCrawler{Host: "localhost", Port: 4444}, 10)
	f, ok := l.Entry(date)
	if !ok || f != nil {
		t.Fatalf("Entry = (%v, %v), want present nil", f, ok)
	}
}

func TestToggle_RemovesUnsettledEntry(t *testing.T) {
	date := today().AddDate(0, 0, 3)
	pending, _ := availability.NewFuture(calendar.DateKey(date), 3)
	l := Ledger{}.with(calendar.DateKey(date), pending)

	out := Toggle(context.Background(), &spyQuerier{now: now}, l, date, source.EmbeddedCommand{}, 10)
	if out.Len() != 0 {
		t.Fatalf("pending entry not removed: %v", out.Keys())
	}
}

func TestKeysSortedAndSameKeys(t *testing.T) {
	l := Ledger{}.with(30, nil).with(10, nil).with(20, nil)
	keys := l.Keys()
	if len(keys) != 3 || keys[0] != 10 || keys[1] != 20 || keys[2] != 30 {
		t.Fatalf("Keys = %v, want [10 20 30]", keys)
	}
	if l.SameKeys(Ledger{}.with(10, nil).with(20, nil)) {
		t.Fatalf("SameKeys true for different sizes")
	}
	if l.SameKeys(Ledger{}.with(10, nil).with(20, nil).with(31, nil)) {
		t.Fatalf("SameKeys true for different keys")
	}
	if _, ok := (Ledger{}).EntryForKey(10); ok {
		t.Fatalf("zero ledger reports an entry")
	}
}

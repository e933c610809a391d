package state

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/settings"
	"github.com/five82/libroom/internal/source"
)

type recordingQuerier struct {
	mu     sync.Mutex
	groups []int
	srcs   []source.DataSource
}

func (r *recordingQuerier) Query(_ context.Context, src source.DataSource, date time.Time, groupSize int) *availability.Future {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, groupSize)
	r.srcs = append(r.srcs, src)
	if _, ok := src.(source.EmbeddedCommand); !ok {
		return nil
	}
	f, _ := availability.NewFuture(calendar.DateKey(date), 0)
	return f
}

func (r *recordingQuerier) InPast(date time.Time) bool {
	return calendar.DayOffset(date, time.Now()) < 0
}

func TestStore_ToggleUsesCurrentSettings(t *testing.T) {
	q := &recordingQuerier{}
	s := NewStore(q, settings.Default())
	date := calendar.StartOfDay(time.Now()).AddDate(0, 0, 1)

	f, booked := s.Toggle(context.Background(), date)
	if !booked || f == nil {
		t.Fatalf("Toggle = (%v, %v), want booked future", f, booked)
	}

	s.SetSettings(settings.Settings{Attendance: 30, DataSource: source.Disabled{}})
	other := date.AddDate(0, 0, 1)
	f, booked = s.Toggle(context.Background(), other)
	if !booked || f != nil {
		t.Fatalf("Toggle with disabled source = (%v, %v), want booked nil", f, booked)
	}

	if len(q.groups) != 2 || q.groups[0] != 10 || q.groups[1] != 30 {
		t.Fatalf("group sizes = %v, want [10 30]", q.groups)
	}
	if q.srcs[1] != (source.Disabled{}) {
		t.Fatalf("second source = %#v, want Disabled", q.srcs[1])
	}

	snap := s.Snapshot()
	if snap.Ledger.Len() != 2 || snap.Settings.Attendance != 30 {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestStore_ToggleTwiceUnbooks(t *testing.T) {
	s := NewStore(&recordingQuerier{}, settings.Default())
	date := calendar.StartOfDay(time.Now())

	before := s.Snapshot()
	s.Toggle(context.Background(), date)
	f, booked := s.Toggle(context.Background(), date)
	if booked || f != nil {
		t.Fatalf("second Toggle = (%v, %v), want unbooked", f, booked)
	}
	if !s.Snapshot().Ledger.SameKeys(before.Ledger) {
		t.Fatalf("ledger keys changed after toggle pair")
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(&recordingQuerier{}, settings.Default())
	date := calendar.StartOfDay(time.Now()).AddDate(0, 0, 2)

	held := s.Snapshot()
	s.Toggle(context.Background(), date)
	if held.Ledger.Len() != 0 {
		t.Fatalf("held snapshot ledger changed to %d entries", held.Ledger.Len())
	}
}

func TestStore_RecordHealth(t *testing.T) {
	var s Store

	before := time.Now()
	boom := errors.New("boom")
	s.RecordHealth(boom)
	snap := s.Snapshot()
	if snap.Health.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: %+v", snap.Health)
	}
	if !errors.Is(snap.Health.LastError, boom) {
		t.Fatalf("LastError = %v, want wrapping boom", snap.Health.LastError)
	}
	if snap.Health.LastChecked.Before(before) {
		t.Fatalf("LastChecked = %v, want >= %v", snap.Health.LastChecked, before)
	}

	s.RecordHealth(boom)
	if !s.Snapshot().IsOffline() {
		t.Fatalf("two failures should mark offline")
	}

	s.RecordHealth(nil)
	snap = s.Snapshot()
	if snap.IsOffline() || snap.Health.LastError != nil || snap.Health.ConsecutiveFailures != 0 {
		t.Fatalf("after success: %+v", snap.Health)
	}
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := NewStore(&recordingQuerier{}, settings.Default())
	base := calendar.StartOfDay(time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			s.Toggle(context.Background(), base.AddDate(0, 0, day))
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()
	if n := s.Snapshot().Ledger.Len(); n != 20 {
		t.Fatalf("ledger len = %d, want 20", n)
	}
}

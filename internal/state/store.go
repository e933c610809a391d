package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/ledger"
	"github.com/five82/libroom/internal/settings"
)

// Health tracks reachability of the application host.
type Health struct {
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed pings
}

// IsOffline returns true when the host has been unreachable for multiple pings.
func (h Health) IsOffline() bool {
	return h.ConsecutiveFailures >= 2
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Settings settings.Settings
	Ledger   ledger.Ledger
	Health   Health
}

// IsOffline reports the host health.
func (s Snapshot) IsOffline() bool {
	return s.Health.IsOffline()
}

// Store serialises changes to the settings and booking ledger. Ledgers are
// immutable, so a snapshot can share the stored one.
type Store struct {
	mu       sync.RWMutex
	querier  ledger.Querier
	settings settings.Settings
	ledger   ledger.Ledger
	health   Health
}

// NewStore returns a Store that issues lookups through q.
func NewStore(q ledger.Querier, s settings.Settings) *Store {
	return &Store{querier: q, settings: s}
}

// Toggle books or un-books date using the current settings. It returns the
// entry for date after the change: booked reports whether the key is present
// and future may be nil even when booked.
func (s *Store) Toggle(ctx context.Context, date time.Time) (future *availability.Future, booked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ledger.Toggle(ctx, s.querier, s.ledger, date, s.settings.DataSource, s.settings.Attendance)
	s.ledger = next
	return next.Entry(date)
}

// SetSettings replaces the settings used for future toggles. Entries already
// in the ledger are left alone.
func (s *Store) SetSettings(next settings.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = next
}

// Settings returns the current settings.
func (s *Store) Settings() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// RecordHealth records the outcome of a host ping. When err is non-nil the
// failure count grows; a nil err resets it.
func (s *Store) RecordHealth(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.health.LastChecked = time.Now()
	if err != nil {
		s.health.LastError = err
		s.health.ConsecutiveFailures++
		return
	}
	s.health.LastError = nil
	s.health.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Settings: s.settings,
		Ledger:   s.ledger,
		Health:   s.health,
	}
	if s.health.LastError != nil {
		snap.Health.LastError = fmt.Errorf("%w", s.health.LastError)
	}
	return snap
}

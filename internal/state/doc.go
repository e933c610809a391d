// Package state holds the settings, booking ledger and host health shared
// between the UI and the health poller.
//
// # Overview
//
// The UI toggles dates and edits settings; the poller records host pings.
// Both go through a Store guarded by a sync.RWMutex:
//
//	Poller:                        UI:
//	┌──────────────────┐          ┌──────────────────────┐
//	│ invoker.Ping()   │          │ store.Toggle(date)   │
//	│      ↓           │          │ store.SetSettings(s) │
//	│ RecordHealth(err)│─────────→│ store.Snapshot()     │
//	└──────────────────┘  (mutex) └──────────────────────┘
//
// # Toggle Semantics
//
// Toggle applies ledger.Toggle to the stored ledger with the settings in
// effect at that moment and swaps in the result. The lookup itself runs on
// its own goroutine; Toggle only starts it, so the lock is never held across
// a backend call.
//
//	f, booked := store.Toggle(ctx, date)
//	// booked && f != nil: lookup in flight or done
//	// booked && f == nil: date recorded, no lookup (crawler or disabled source)
//	// !booked:            date removed (any in-flight lookup is orphaned),
//	//                     or a past date that was never added
//
// # Snapshots
//
// Snapshot returns the ledger value itself. Ledgers are never mutated after
// construction, so a snapshot taken before a Toggle keeps its old contents.
//
// # Health
//
// RecordHealth follows the same rule as the poller's backoff: an error bumps
// ConsecutiveFailures and keeps the error for display, a nil error resets
// both. IsOffline is true after two consecutive failures.
//
// The zero Store is usable for health tracking; use NewStore to enable
// toggling.
package state

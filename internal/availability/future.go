package availability

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/libroom/internal/library"
)

// ErrPending is returned by Result before the Future settles.
var ErrPending = errors.New("availability result pending")

// Future is the handle for one in-flight availability lookup. It settles
// exactly once, with either the backend's rooms or a *command.CommandError.
// There is no way to cancel it.
type Future struct {
	id     string
	key    int64
	offset int
	done   chan struct{}

	mu        sync.Mutex
	settled   bool
	rooms     []library.RoomAvailability
	err       error
	callbacks []func([]library.RoomAvailability, error)
}

// NewFuture returns an unsettled Future and the function that settles it.
// Calls to settle after the first are ignored.
func NewFuture(key int64, offset int) (*Future, func([]library.RoomAvailability, error)) {
	f := &Future{
		id:     uuid.New().String(),
		key:    key,
		offset: offset,
		done:   make(chan struct{}),
	}
	return f, f.settle
}

// ID identifies the lookup in logs.
func (f *Future) ID() string { return f.id }

// Key is the date key the lookup was issued for.
func (f *Future) Key() int64 { return f.key }

// Offset is the day offset sent to the backend.
func (f *Future) Offset() int { return f.offset }

// Done is closed once the Future settles.
func (f *Future) Done() <-chan struct{} { return f.done }

// Settled reports whether a result is available.
func (f *Future) Settled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled
}

// Result returns the settled outcome, or ErrPending if there is none yet.
// The returned slice is shared; callers must not modify it.
func (f *Future) Result() ([]library.RoomAvailability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.settled {
		return nil, ErrPending
	}
	return f.rooms, f.err
}

// Wait blocks until the Future settles or ctx is done.
func (f *Future) Wait(ctx context.Context) ([]library.RoomAvailability, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnSettle registers fn to run with the outcome. If the Future has already
// settled fn runs immediately on the caller's goroutine; otherwise it runs
// on the goroutine that settles it.
func (f *Future) OnSettle(fn func([]library.RoomAvailability, error)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	rooms, err := f.rooms, f.err
	f.mu.Unlock()
	fn(rooms, err)
}

func (f *Future) settle(rooms []library.RoomAvailability, err error) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.rooms = rooms
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(rooms, err)
	}
}

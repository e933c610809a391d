package command

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/libroom/internal/library"
)

var (
	_ Invoker = (*Limited)(nil)
	_ Pinger  = (*Limited)(nil)
)

// Limited spaces out invocations of an inner Invoker. Each invocation starts
// a browser session on the host, so bursts are capped at one.
type Limited struct {
	inner   Invoker
	limiter *rate.Limiter
}

// NewLimited allows perMinute invocations per minute. perMinute <= 0
// disables limiting.
func NewLimited(inner Invoker, perMinute int) *Limited {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Limited{inner: inner, limiter: rate.NewLimiter(limit, 1)}
}

// Invoke waits for a token and then calls the inner Invoker.
func (l *Limited) Invoke(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error) {
	if l == nil || l.inner == nil {
		return nil, &CommandError{Op: "invoke", Err: ErrNoCommand}
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, &CommandError{Op: "rate limit", Err: err}
	}
	return l.inner.Invoke(ctx, dayOffset, groupSize)
}

// Ping forwards to the inner Invoker when it can ping; it is not rate limited.
func (l *Limited) Ping(ctx context.Context) error {
	if l == nil || l.inner == nil {
		return &CommandError{Op: "ping", Err: ErrNoCommand}
	}
	if p, ok := l.inner.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

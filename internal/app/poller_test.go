package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/libroom/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type countingPinger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPinger) Ping(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestStartPoller_RecordsFailures(t *testing.T) {
	store := &state.Store{}
	pinger := &countingPinger{err: errors.New("connection refused")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoller(ctx, store, pinger, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().IsOffline() {
		if time.Now().After(deadline) {
			t.Fatalf("store never went offline; pings = %d", pinger.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	store := &state.Store{}
	pinger := &countingPinger{}

	ctx, cancel := context.WithCancel(context.Background())
	StartPoller(ctx, store, pinger, time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for pinger.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("poller never pinged")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := pinger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if pinger.calls.Load() != settled {
		t.Fatalf("poller kept pinging after cancel")
	}
	if store.Snapshot().IsOffline() {
		t.Fatalf("successful pings should not mark offline")
	}
}

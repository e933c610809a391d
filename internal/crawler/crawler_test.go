package crawler

import (
	"context"
	"errors"
	"testing"

	"github.com/five82/libroom/internal/source"
)

func TestClientIsAStub(t *testing.T) {
	c := FromSource(source.RemoteCrawler{Host: "localhost", Port: 4444})
	if c.Addr() != "localhost:4444" {
		t.Fatalf("Addr = %q, want localhost:4444", c.Addr())
	}

	rooms, err := c.AvailableRooms(context.Background(), 1, 10)
	if rooms != nil || !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("AvailableRooms = (%v, %v), want (nil, ErrNotImplemented)", rooms, err)
	}
}

func TestClientHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New("h", 1).AvailableRooms(ctx, 0, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("AvailableRooms error = %v, want context.Canceled", err)
	}
}

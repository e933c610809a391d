// Package crawler is the client for the remote browser-automation server.
// The wire protocol is not defined yet, so every call reports
// ErrNotImplemented without touching the network.
package crawler

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/five82/libroom/internal/library"
	"github.com/five82/libroom/internal/source"
)

// ErrNotImplemented is returned by every operation on Client.
var ErrNotImplemented = errors.New("crawling server backend not implemented")

// Client describes a crawling server. Constructing one performs no I/O.
type Client struct {
	Host string
	Port uint16
}

// New returns a Client for host:port.
func New(host string, port uint16) *Client {
	return &Client{Host: host, Port: port}
}

// FromSource builds a Client from a RemoteCrawler data source.
func FromSource(ds source.RemoteCrawler) *Client {
	return New(ds.Host, ds.Port)
}

// Addr returns host:port.
func (c *Client) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// AvailableRooms would ask the crawler for a day's availability.
func (c *Client) AvailableRooms(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNotImplemented
}

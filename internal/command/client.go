package command

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/library"
)

var (
	_ Invoker = (*Client)(nil)
	_ Pinger  = (*Client)(nil)
)

// Client talks to the application host's loopback HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

const (
	DefaultAPIBind        = "127.0.0.1:7488"
	DefaultRequestTimeout = 2 * time.Minute
	defaultUserAgent      = "libroom/0.1"
)

// NewClient builds a Client for the host listening on apiBind. A zero
// timeout uses DefaultRequestTimeout; a nil logger discards logs.
func NewClient(apiBind string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		logger:    orNop(logger),
	}, nil
}

// Invoke fetches room availability for the day dayOffset days from today.
func (c *Client) Invoke(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error) {
	if c == nil {
		return nil, &CommandError{Op: "invoke", Err: ErrNoCommand}
	}
	if err := checkArgs(dayOffset, groupSize); err != nil {
		return nil, err
	}
	done := logInvoke(c.logger, "http", dayOffset, groupSize)

	values := url.Values{}
	values.Set("days_from_today", strconv.Itoa(dayOffset))
	values.Set("group_size", strconv.Itoa(groupSize))
	rel := &url.URL{Path: "/api/available_rooms", RawQuery: values.Encode()}

	var payload []library.RoomAvailability
	err := c.doURL(ctx, rel, func(body io.Reader) (err error) {
		payload, err = decodeRooms(body)
		return err
	})
	done(len(payload), err)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Ping checks the host's health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return &CommandError{Op: "ping", Err: ErrNoCommand}
	}
	return c.doURL(ctx, &url.URL{Path: "/api/health"}, nil)
}

// doURL issues a GET for rel and hands the body to decode. A nil decode
// ignores the body.
func (c *Client) doURL(ctx context.Context, rel *url.URL, decode func(io.Reader) error) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return &CommandError{Op: "request", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &CommandError{Op: "request", Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &CommandError{Op: "request", Err: fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)}
	}
	if decode == nil {
		return nil
	}
	if err := decode(resp.Body); err != nil {
		return &CommandError{Op: "decode", Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = DefaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/library"
)

// Invoker runs the "available rooms" command on the application host.
type Invoker interface {
	Invoke(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error)
}

// Pinger reports whether the host is reachable. Transports that can check
// cheaply implement it; the health poller uses it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrNoCommand is reported when the embedded backend is selected but no
// transport was configured.
var ErrNoCommand = errors.New("no embedded command configured")

// maxArg is the largest day offset or group size the host accepts; both are
// carried as unsigned bytes.
const maxArg = 255

// CommandError wraps any failure raised while invoking the host command.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Op == "" {
		return fmt.Sprintf("command: %v", e.Err)
	}
	return fmt.Sprintf("command %s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Wrap returns err as a *CommandError, reusing it when it already is one.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return err
	}
	return &CommandError{Op: op, Err: err}
}

// IsCommandError reports whether err carries a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

func checkArgs(dayOffset, groupSize int) error {
	if dayOffset < 0 || dayOffset > maxArg {
		return &CommandError{Op: "invoke", Err: fmt.Errorf("day offset %d out of range 0..%d", dayOffset, maxArg)}
	}
	if groupSize < 0 || groupSize > maxArg {
		return &CommandError{Op: "invoke", Err: fmt.Errorf("group size %d out of range 0..%d", groupSize, maxArg)}
	}
	return nil
}

// errNullPayload is reported when the host answers with a JSON null where a
// list of rooms is expected.
var errNullPayload = errors.New("payload is null, want a list of rooms")

// decodeRooms reads exactly one JSON array of rooms from r. A null payload or
// any data after the array is a decode error.
func decodeRooms(r io.Reader) ([]library.RoomAvailability, error) {
	dec := json.NewDecoder(r)
	var rooms []library.RoomAvailability
	if err := dec.Decode(&rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		return nil, errNullPayload
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the room list")
	}
	return rooms, nil
}

// Func adapts a plain function to Invoker.
type Func func(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error)

// Invoke calls f.
func (f Func) Invoke(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error) {
	return f(ctx, dayOffset, groupSize)
}

func logInvoke(logger *zap.Logger, transport string, dayOffset, groupSize int) func(rooms int, err error) {
	started := time.Now()
	logger.Debug("invoke started",
		zap.String("transport", transport),
		zap.Int("days_from_today", dayOffset),
		zap.Int("group_size", groupSize),
	)
	return func(rooms int, err error) {
		fields := []zap.Field{
			zap.String("transport", transport),
			zap.Int("days_from_today", dayOffset),
			zap.Duration("elapsed", time.Since(started)),
		}
		if err != nil {
			logger.Debug("invoke failed", append(fields, zap.Error(err))...)
			return
		}
		logger.Debug("invoke finished", append(fields, zap.Int("rooms", rooms))...)
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/libroom/internal/library"
)

var (
	_ Invoker = (*Exec)(nil)
	_ Pinger  = (*Exec)(nil)
)

// Exec runs the host's lookup as a subprocess and reads the JSON result from
// its stdout.
type Exec struct {
	Path    string
	Args    []string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewExec returns an Exec transport for the binary at path.
func NewExec(path string, args []string, timeout time.Duration, logger *zap.Logger) *Exec {
	return &Exec{
		Path:    strings.TrimSpace(path),
		Args:    append([]string(nil), args...),
		Timeout: timeout,
		Logger:  orNop(logger),
	}
}

// Invoke runs `<path> <args...> --days-from-today N --group-size G`.
func (e *Exec) Invoke(ctx context.Context, dayOffset, groupSize int) ([]library.RoomAvailability, error) {
	if e == nil || e.Path == "" {
		return nil, &CommandError{Op: "exec", Err: ErrNoCommand}
	}
	if err := checkArgs(dayOffset, groupSize); err != nil {
		return nil, err
	}
	logger := orNop(e.Logger)
	done := logInvoke(logger, "exec", dayOffset, groupSize)

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := append(append([]string(nil), e.Args...),
		"--days-from-today", strconv.Itoa(dayOffset),
		"--group-size", strconv.Itoa(groupSize),
	)
	cmd := exec.CommandContext(ctx, e.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	rooms, err := e.run(cmd, &stdout, &stderr)
	done(len(rooms), err)
	return rooms, err
}

func (e *Exec) run(cmd *exec.Cmd, stdout, stderr *bytes.Buffer) ([]library.RoomAvailability, error) {
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr) && detail != "":
			err = fmt.Errorf("%s exited with status %d: %s", e.Path, exitErr.ExitCode(), detail)
		case errors.As(err, &exitErr):
			err = fmt.Errorf("%s exited with status %d", e.Path, exitErr.ExitCode())
		default:
			err = fmt.Errorf("run %s: %w", e.Path, err)
		}
		return nil, &CommandError{Op: "exec", Err: err}
	}
	rooms, err := decodeRooms(stdout)
	if err != nil {
		return nil, &CommandError{Op: "decode", Err: fmt.Errorf("decode output: %w", err)}
	}
	return rooms, nil
}

// Ping checks that the binary resolves.
func (e *Exec) Ping(_ context.Context) error {
	if e == nil || e.Path == "" {
		return &CommandError{Op: "ping", Err: ErrNoCommand}
	}
	if _, err := exec.LookPath(e.Path); err != nil {
		return &CommandError{Op: "ping", Err: err}
	}
	return nil
}

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// TestHelperProcess is not a real test. Exec tests re-run the test binary
// with this test selected so it can stand in for the host binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("LIBROOM_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	mode := os.Getenv("LIBROOM_HELPER_MODE")
	switch mode {
	case "fail":
		fmt.Fprint(os.Stderr, "webdriver session refused")
		os.Exit(3)
	case "garbage":
		fmt.Fprint(os.Stdout, "not json")
	case "null":
		fmt.Fprintln(os.Stdout, "null")
	case "trailing":
		fmt.Fprint(os.Stdout, "[] trailing-garbage")
	case "extra-bracket":
		fmt.Fprint(os.Stdout, "[]]")
	case "empty":
		fmt.Fprintln(os.Stdout, "[]")
	default:
		if strings.Join(args, " ") != "--days-from-today 4 --group-size 7" {
			fmt.Fprintf(os.Stderr, "unexpected args %q", args)
			os.Exit(2)
		}
		fmt.Fprint(os.Stdout, samplePayload)
	}
	os.Exit(0)
}

func helperExec(t *testing.T, mode string) *Exec {
	t.Helper()
	t.Setenv("LIBROOM_HELPER_PROCESS", "1")
	t.Setenv("LIBROOM_HELPER_MODE", mode)
	return NewExec(os.Args[0], []string{"-test.run=TestHelperProcess", "--"}, 10*time.Second, nil)
}

func TestExec_InvokeDecodesStdout(t *testing.T) {
	e := helperExec(t, "ok")
	rooms, err := e.Invoke(context.Background(), 4, 7)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if len(rooms) != 2 || rooms[0].Room.Capacity != 10 {
		t.Fatalf("rooms = %+v", rooms)
	}
}

func TestExec_NonZeroExitCarriesStderr(t *testing.T) {
	e := helperExec(t, "fail")
	_, err := e.Invoke(context.Background(), 4, 7)
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Invoke error = %v, want *CommandError", err)
	}
	if !strings.Contains(err.Error(), "webdriver session refused") || !strings.Contains(err.Error(), "status 3") {
		t.Fatalf("error = %q, want stderr and exit status", err.Error())
	}
}

func TestExec_MalformedOutput(t *testing.T) {
	for _, mode := range []string{"garbage", "null", "trailing", "extra-bracket"} {
		t.Run(mode, func(t *testing.T) {
			e := helperExec(t, mode)
			rooms, err := e.Invoke(context.Background(), 4, 7)
			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) || cmdErr.Op != "decode" {
				t.Fatalf("Invoke error = %v, want decode CommandError", err)
			}
			if rooms != nil {
				t.Fatalf("rooms = %+v, want nil on decode failure", rooms)
			}
		})
	}
}

func TestExec_EmptyListIsNotAnError(t *testing.T) {
	e := helperExec(t, "empty")
	rooms, err := e.Invoke(context.Background(), 4, 7)
	if err != nil {
		t.Fatalf("Invoke returned error: %v", err)
	}
	if rooms == nil || len(rooms) != 0 {
		t.Fatalf("rooms = %#v, want empty non-nil list", rooms)
	}
}

func TestExec_MissingBinary(t *testing.T) {
	e := NewExec("libroom-definitely-not-installed", nil, time.Second, nil)
	if _, err := e.Invoke(context.Background(), 0, 5); !IsCommandError(err) {
		t.Fatalf("Invoke error = %v, want CommandError", err)
	}
	if err := e.Ping(context.Background()); !IsCommandError(err) {
		t.Fatalf("Ping error = %v, want CommandError", err)
	}

	var empty *Exec
	if _, err := empty.Invoke(context.Background(), 0, 5); !errors.Is(err, ErrNoCommand) {
		t.Fatalf("nil Exec error = %v, want ErrNoCommand", err)
	}
}

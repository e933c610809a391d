package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/libroom/internal/app"
	"github.com/five82/libroom/internal/command"
	"github.com/five82/libroom/internal/library"
	"github.com/five82/libroom/internal/settings"
)

// writeConfig points the log at a temp dir and the exec transport at a
// binary that does not exist.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `[embedded]
transport = "exec"
command = "` + filepath.Join(dir, "missing-host") + `"

[log]
file = "` + filepath.Join(dir, "libroom.log") + `"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQuery_PastDateSkipsBackend(t *testing.T) {
	cfg := writeConfig(t)
	out, err := execute(t, "query", "--config", cfg, "--date", "2001-02-03")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out, noAvailability) {
		t.Fatalf("output = %q, want %q", out, noAvailability)
	}
}

func TestQuery_DisabledSource(t *testing.T) {
	cfg := writeConfig(t)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	out, err := execute(t, "query", "--config", cfg, "--date", tomorrow, "--source", "disabled")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(out, noAvailability) {
		t.Fatalf("output = %q, want %q", out, noAvailability)
	}
}

func TestQuery_BackendFailureIsCommandError(t *testing.T) {
	cfg := writeConfig(t)
	_, err := execute(t, "query", "--config", cfg)
	if !command.IsCommandError(err) {
		t.Fatalf("err = %v, want *command.CommandError", err)
	}
}

func TestQuery_RejectsBadFlags(t *testing.T) {
	cfg := writeConfig(t)
	if _, err := execute(t, "query", "--config", cfg, "--date", "03/02/2001"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := execute(t, "query", "--config", cfg, "--group", "500"); !errors.Is(err, settings.ErrAttendanceRange) {
		t.Fatalf("group err = %v, want ErrAttendanceRange", err)
	}
	if _, err := execute(t, "query", "--config", cfg, "--source", "pigeon"); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestQuery_GroupFlagDefersToConfig(t *testing.T) {
	flag := newQueryCmd(&app.Options{}).Flags().Lookup("group")
	if flag == nil {
		t.Fatal("query has no --group flag")
	}
	if flag.DefValue != "0" {
		t.Fatalf("--group default = %q, want 0 so the config attendance applies", flag.DefValue)
	}

	out, err := execute(t, "query", "--help")
	if err != nil {
		t.Fatalf("query --help: %v", err)
	}
	if !strings.Contains(out, "default: config attendance") {
		t.Fatalf("help does not mention the config default:\n%s", out)
	}
	if strings.Contains(out, "(default 10)") {
		t.Fatalf("help advertises a fixed group default:\n%s", out)
	}
}

func TestPrintRooms(t *testing.T) {
	var out bytes.Buffer
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)
	rooms := []library.RoomAvailability{{
		Room:         library.NewRoom("3-20A Idea Lab", "It has a capacity of six"),
		Availability: library.Availability{0, 1},
	}}
	printRooms(&out, day, rooms)

	got := out.String()
	for _, want := range []string{"Tuesday, March 10 2026", "3-20A Idea Lab", "6"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "libroom dev") {
		t.Fatalf("version output = %q", out)
	}
}

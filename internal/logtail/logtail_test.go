package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestDecode(t *testing.T) {
	line := `{"level":"info","ts":"2026-05-14T09:30:00.000-0600","caller":"availability/query.go:70","msg":"availability query finished","pid":42,"query_id":"abc","rooms":3}`
	e := Decode(line)
	if e.Raw != "" {
		t.Fatalf("Decode treated JSON as raw: %+v", e)
	}
	if e.Level != "info" || e.Message != "availability query finished" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Time.IsZero() || e.Time.Minute() != 30 {
		t.Fatalf("Time = %v", e.Time)
	}
	want := map[string]string{"pid": "42", "query_id": "abc", "rooms": "3"}
	if !reflect.DeepEqual(e.Fields, want) {
		t.Fatalf("Fields = %v, want %v", e.Fields, want)
	}
	if got := e.Format(); !strings.HasSuffix(got, "INFO  availability query finished pid=42 query_id=abc rooms=3") {
		t.Fatalf("Format = %q", got)
	}
}

func TestDecode_NonJSON(t *testing.T) {
	for _, line := range []string{"plain text", "{broken", ""} {
		e := Decode(line)
		if e.Raw != line || e.Format() != line {
			t.Fatalf("Decode(%q) = %+v", line, e)
		}
	}
}

func TestReadEntries_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libroom.log")
	body := `{"level":"warn","msg":"availability query failed","error":"command invoke: boom"}` + "\n\n" + "stray\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := ReadEntries(path, 0)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Fields["error"] != "command invoke: boom" || entries[1].Raw != "stray" {
		t.Fatalf("entries = %+v", entries)
	}
}

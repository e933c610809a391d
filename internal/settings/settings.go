// Package settings holds the user's query preferences.
package settings

import (
	"errors"
	"fmt"

	"github.com/five82/libroom/internal/source"
)

const (
	MinAttendance     = 5
	MaxAttendance     = 100
	DefaultAttendance = 10
)

// ErrAttendanceRange reports an attendance outside MinAttendance..MaxAttendance.
var ErrAttendanceRange = errors.New("attendance out of range")

// Settings is read by the query path and changed only through the settings
// screen or config.
type Settings struct {
	Attendance int
	DataSource source.DataSource
}

// Default returns attendance 10 and the embedded command.
func Default() Settings {
	return Settings{
		Attendance: DefaultAttendance,
		DataSource: source.EmbeddedCommand{},
	}
}

// Validate reports an out-of-range attendance.
func (s Settings) Validate() error {
	if s.Attendance < MinAttendance || s.Attendance > MaxAttendance {
		return fmt.Errorf("%w: %d not in %d..%d", ErrAttendanceRange, s.Attendance, MinAttendance, MaxAttendance)
	}
	return nil
}

// WithAttendance returns a copy with attendance clamped into range.
func (s Settings) WithAttendance(n int) Settings {
	s.Attendance = min(max(n, MinAttendance), MaxAttendance)
	return s
}

// WithDataSource returns a copy using ds.
func (s Settings) WithDataSource(ds source.DataSource) Settings {
	s.DataSource = ds
	return s
}

// NextDataSource cycles embedded → crawler → disabled → embedded. crawler is
// the crawling server to use when that variant comes up.
func NextDataSource(current source.DataSource, crawler source.RemoteCrawler) source.DataSource {
	switch current.(type) {
	case source.EmbeddedCommand:
		return crawler
	case source.RemoteCrawler:
		return source.Disabled{}
	default:
		return source.EmbeddedCommand{}
	}
}

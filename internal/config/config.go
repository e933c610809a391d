package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/libroom/internal/settings"
	"github.com/five82/libroom/internal/source"
)

// Config is the resolved libroom configuration.
type Config struct {
	Attendance int
	Theme      string
	DaysAhead  int
	PastDays   int
	DataSource source.DataSource
	// Crawler is the crawling server from [data_source], kept even when
	// another kind is active so the settings screen can switch to it.
	Crawler  source.RemoteCrawler
	Embedded Embedded
	Log      Log
}

// Embedded configures how the embedded command reaches the host.
type Embedded struct {
	Transport     string
	APIBind       string
	Command       string
	Args          []string
	Timeout       time.Duration
	RatePerMinute int
}

// Log configures the file logger.
type Log struct {
	File  string
	Level string
}

const (
	TransportHTTP = "http"
	TransportExec = "exec"

	defaultConfigPath    = "~/.config/libroom/config.toml"
	defaultLogFile       = "~/.local/state/libroom/libroom.log"
	defaultLogLevel      = "info"
	defaultTheme         = "Nightfox"
	defaultDaysAhead     = 28
	defaultPastDays      = 3
	defaultCrawlerHost   = "localhost"
	defaultCrawlerPort   = 4444
	defaultAPIBind       = "127.0.0.1:7488"
	defaultCommand       = "ccl-rooms"
	defaultTimeout       = 120 * time.Second
	defaultRatePerMinute = 6
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Attendance: settings.DefaultAttendance,
		Theme:      defaultTheme,
		DaysAhead:  defaultDaysAhead,
		PastDays:   defaultPastDays,
		DataSource: source.EmbeddedCommand{},
		Crawler:    source.RemoteCrawler{Host: defaultCrawlerHost, Port: defaultCrawlerPort},
		Embedded: Embedded{
			Transport:     TransportHTTP,
			APIBind:       defaultAPIBind,
			Command:       defaultCommand,
			Timeout:       defaultTimeout,
			RatePerMinute: defaultRatePerMinute,
		},
		Log: Log{File: mustExpand(defaultLogFile), Level: defaultLogLevel},
	}
}

// Settings returns the initial query settings.
func (c Config) Settings() settings.Settings {
	return settings.Settings{Attendance: c.Attendance, DataSource: c.DataSource}
}

type rawConfig struct {
	Attendance *int   `toml:"attendance"`
	Theme      string `toml:"theme"`
	DaysAhead  *int   `toml:"days_ahead"`
	PastDays   *int   `toml:"past_days"`
	DataSource struct {
		Kind string `toml:"kind"`
		Host string `toml:"host"`
		Port *int   `toml:"port"`
	} `toml:"data_source"`
	Embedded struct {
		Transport      string   `toml:"transport"`
		APIBind        string   `toml:"api_bind"`
		Command        string   `toml:"command"`
		Args           []string `toml:"args"`
		TimeoutSeconds *int     `toml:"timeout_seconds"`
		RatePerMinute  *int     `toml:"rate_per_minute"`
	} `toml:"embedded"`
	Log struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// Load reads the config at path (default ~/.config/libroom/config.toml). A
// missing file yields Default(); empty values fall back to their defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	if raw.Attendance != nil {
		cfg.Attendance = *raw.Attendance
	}
	if err := cfg.Settings().Validate(); err != nil {
		return Config{}, fmt.Errorf("attendance: %w", err)
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if raw.DaysAhead != nil {
		if *raw.DaysAhead < 0 {
			return Config{}, fmt.Errorf("days_ahead must not be negative")
		}
		cfg.DaysAhead = *raw.DaysAhead
	}
	if raw.PastDays != nil {
		if *raw.PastDays < 0 {
			return Config{}, fmt.Errorf("past_days must not be negative")
		}
		cfg.PastDays = *raw.PastDays
	}

	host := strings.TrimSpace(raw.DataSource.Host)
	if host == "" {
		host = defaultCrawlerHost
	}
	port := defaultCrawlerPort
	if raw.DataSource.Port != nil {
		port = *raw.DataSource.Port
	}
	crawler, err := source.Parse(source.KindCrawler, host, port)
	if err != nil {
		return Config{}, fmt.Errorf("data_source: %w", err)
	}
	cfg.Crawler = crawler.(source.RemoteCrawler)
	cfg.DataSource, err = source.Parse(raw.DataSource.Kind, host, port)
	if err != nil {
		return Config{}, fmt.Errorf("data_source: %w", err)
	}

	switch transport := strings.ToLower(strings.TrimSpace(raw.Embedded.Transport)); transport {
	case "":
	case TransportHTTP, TransportExec:
		cfg.Embedded.Transport = transport
	default:
		return Config{}, fmt.Errorf("embedded: unknown transport %q", raw.Embedded.Transport)
	}
	if bind := strings.TrimSpace(raw.Embedded.APIBind); bind != "" {
		cfg.Embedded.APIBind = bind
	}
	if command := strings.TrimSpace(raw.Embedded.Command); command != "" {
		// Bare names are looked up on PATH at run time.
		if strings.ContainsRune(command, '/') || strings.HasPrefix(command, "~") {
			command = mustExpand(command)
		}
		cfg.Embedded.Command = command
	}
	cfg.Embedded.Args = append([]string(nil), raw.Embedded.Args...)
	if raw.Embedded.TimeoutSeconds != nil && *raw.Embedded.TimeoutSeconds > 0 {
		cfg.Embedded.Timeout = time.Duration(*raw.Embedded.TimeoutSeconds) * time.Second
	}
	if raw.Embedded.RatePerMinute != nil {
		cfg.Embedded.RatePerMinute = max(*raw.Embedded.RatePerMinute, 0)
	}

	if file := strings.TrimSpace(raw.Log.File); file != "" {
		cfg.Log.File = mustExpand(file)
	}
	if level := strings.TrimSpace(raw.Log.Level); level != "" {
		cfg.Log.Level = strings.ToLower(level)
	}
	return cfg, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

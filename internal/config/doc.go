// Package config loads libroom's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the path as follows:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/libroom/config.toml
//  3. If the file doesn't exist, return Default()
//  4. If the file exists but fields are missing or blank, use their defaults
//
// # Fields
//
//	attendance = 10              # 5..100, the group size sent with each query
//	theme = "Nightfox"
//	days_ahead = 28              # rows after today in the day list
//	past_days = 3                # rows before today
//
//	[data_source]
//	kind = "embedded_command"    # embedded_command | crawling_server | disabled
//	host = "localhost"           # crawling server, also used when switching
//	port = 4444                  # to it from the settings screen
//
//	[embedded]
//	transport = "http"           # http | exec
//	api_bind = "127.0.0.1:7488"
//	command = "ccl-rooms"        # exec transport binary
//	args = []
//	timeout_seconds = 120
//	rate_per_minute = 6          # 0 disables limiting
//
//	[log]
//	file = "~/.local/state/libroom/libroom.log"
//	level = "info"
//
// Paths beginning with ~ are expanded to the user's home directory and made
// absolute.
//
// # Errors
//
// Load fails with "open config", "read config" or "parse config" for I/O and
// TOML problems, and with a field-prefixed error for an attendance out of
// range, an unknown data source kind or transport, a port outside 0..65535,
// or negative day counts.
package config

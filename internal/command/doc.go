// Package command invokes the "available rooms" lookup on the application host
// that sits next to libroom.
//
// # Transports
//
// Two transports implement Invoker:
//
//   - Client: GET /api/available_rooms?days_from_today=N&group_size=G on the
//     host's loopback API (default 127.0.0.1:7488). Ping uses GET /api/health.
//   - Exec: runs the host binary with --days-from-today N --group-size G
//     appended to the configured arguments and decodes stdout. Ping checks the
//     binary is on PATH.
//
// Both answer with a JSON array of [room, availability] pairs, decoded into
// []library.RoomAvailability in the order the host sent them.
//
// Limited wraps either one with a golang.org/x/time/rate limiter, and Func
// adapts a plain function for tests and in-process hosts.
//
// # Errors
//
// Every failure is reported as a *CommandError: transport errors, non-2xx
// statuses, non-zero exits (with stderr), undecodable payloads, and day
// offsets or group sizes outside 0..255. A null payload or data after the
// room list counts as undecodable. Use IsCommandError or errors.As to detect
// it.
//
//	rooms, err := client.Invoke(ctx, 2, 10)
//	if command.IsCommandError(err) {
//		// show "Error" for the date
//	}
package command

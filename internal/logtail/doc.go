// Package logtail reads the end of libroom's own log file for the log view.
//
// # Reading
//
// Read keeps a ring buffer of the last maxLines lines while scanning, so the
// whole file never sits in memory. maxLines <= 0 returns every line. A
// missing file is not an error: the logger may not have written anything yet.
//
// # Decoding
//
// The logger writes zap JSON lines:
//
//	{"level":"info","ts":"2026-05-14T09:30:00.000-0600","msg":"availability query finished","query_id":"…","rooms":3}
//
// Decode turns each into an Entry (time, level, message, remaining fields as
// strings). Lines that are not JSON objects are kept verbatim in Entry.Raw.
// Entry.Format renders "15:04:05 INFO  message key=value" with sorted keys.
package logtail

// Package logtail reads the end of the quoter activity log.
//
// The activity log is written by log/slog's text handler, one record per
// line. The UI log view shows its last few hundred lines, so Read keeps a
// ring buffer of maxLines entries and makes a single pass over the file:
// memory stays O(maxLines) however large the log grows.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// A missing log file is not an error; it simply has no lines yet. Open and
// scan failures are returned wrapped ("open log: ...", "read log: ...").
//
// Lines longer than 1 MiB abort the scan with bufio.ErrTooLong.
package logtail

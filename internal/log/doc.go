// Package log provides the application's structured logger, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Shortening of long attribute values (HTML fragments, rendered rows)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the generator, updater and server
//
// # Compact Attributes
//
// Steps log the fragments they splice into the template. Those fragments can
// be many kilobytes of markup, so the CompactHandler cuts string values at a
// rune boundary and flattens newlines to keep every record on one line.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//	logger.Debug("replaced block", "section", "sec1", "content", rows)
//	slog.SetDefault(logger)
package log

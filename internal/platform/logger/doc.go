// Package logger sets up the daemon's own diagnostics logging.
//
// It utilizes Go's standard library log/slog package to implement structured
// JSON logging with a configurable level. Diagnostics go to stderr so they
// never interleave with lines the logging backend writes to stdout.
package logger

// Package logger configures the application's structured logging on top of
// the standard library's log/slog. It maps the configured level, installs
// the process-wide default logger, and carries request-scoped loggers
// through context so handlers and services log with trace correlation.
package logger

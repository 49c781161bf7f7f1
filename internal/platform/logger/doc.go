// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured
// JSON or text logging with configurable log levels. Records logged with a
// context carrying a trace ID get a trace_id attribute, so every line written
// while handling a request can be correlated.
package logger

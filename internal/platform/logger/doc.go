// Package logger sets up the application's structured JSON logging on top of
// log/slog and provides helpers for capturing log output in tests.
package logger

// Package logger provides a factory for configured slog.Logger
// instances plus typed attribute helpers used across the service.
//
// Defaults are production-safe (JSON, info level); WithDevelopment and
// WithEnvironment switch to human-readable text output for local work.
package logger

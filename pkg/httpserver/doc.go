// Package httpserver wraps net/http.Server with graceful shutdown on
// context cancellation or SIGINT/SIGTERM, env-tagged configuration, and
// optional slog logging.
package httpserver

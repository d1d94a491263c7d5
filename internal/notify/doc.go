// Package notify fans tracked visit events out to configured sinks:
// Telegram, Discord, email via Postmark, a generic HTTP datastore, and
// Postgres. Sinks are independent; every delivery failure is contained
// and logged, never propagated to the request path.
package notify

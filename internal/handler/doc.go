// Package handler wires the tracking pipeline behind the HTTP surface:
// client address extraction, dedup classification, concurrent geo
// lookup, device and session analysis, and fire-and-forget sink fanout.
// The endpoint answers 200 even when geo providers, the visit store or
// every sink fails.
package handler

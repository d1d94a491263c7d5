// Package visitor implements visit deduplication and identity tracking.
//
// A visitor identity is a stable hash over (client address, user-agent).
// The tracker classifies each observation as unique or returning within
// a sliding window: the first observation, or any observation after the
// window has elapsed since the last unique visit, is unique and
// increments the visit counter. Returning observations inside the
// window leave both the counter and the stored timestamp untouched, so
// only unique visits reset the clock.
//
// Stores are injectable. MemoryStore is a bounded process-local LRU
// with idle expiry; RedisStore shares state across instances with an
// atomic server-side check-and-update.
package visitor

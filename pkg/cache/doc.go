// Package cache provides a thread-safe, generics-based LRU cache with
// optional idle-TTL expiry.
//
// The cache is bounded: once capacity is reached the least recently
// used entry is evicted. When a TTL is configured, entries idle longer
// than the TTL are treated as missing and removed lazily on access;
// Sweep removes them eagerly for callers that care about occupancy.
//
// Upsert performs an atomic read-modify-write under the cache lock,
// which makes the cache usable as the backing store for check-and-update
// workloads such as visit deduplication.
package cache

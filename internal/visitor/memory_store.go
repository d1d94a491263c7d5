package visitor

import (
	"context"
	"time"

	"github.com/dmitrymomot/visitrack/pkg/cache"
)

// MemoryStore keeps visit records in a bounded in-process LRU.
// Records idle longer than the retention period expire, so the store
// cannot grow without limit over the process lifetime. Dedup state is
// process-local: run the redis store instead when the service runs
// behind more than one instance.
type MemoryStore struct {
	entries *cache.LRUCache[string, Record]
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	clock func() time.Time
}

// WithClock overrides the store's time source. Intended for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		if now != nil {
			c.clock = now
		}
	}
}

// NewMemoryStore creates an in-memory store bounded to capacity entries
// with the given idle retention.
func NewMemoryStore(capacity int, retention time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	cfg := &memoryStoreConfig{clock: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryStore{
		entries: cache.NewLRUCache(capacity,
			cache.WithTTL[string, Record](retention),
			cache.WithClock[string, Record](cfg.clock),
		),
	}
}

// Visit implements Store. The whole check-and-update runs inside the
// cache's Upsert critical section, so concurrent observations of the
// same identity serialize and at most one of them is unique per window.
func (s *MemoryStore) Visit(_ context.Context, identity string, now time.Time, window time.Duration) (Classification, error) {
	var unique bool
	rec := s.entries.Upsert(identity, func(old Record, ok bool) Record {
		if !ok {
			unique = true
			return Record{FirstVisitAt: now, LastVisitAt: now, VisitCount: 1}
		}
		// Strict greater-than: elapsed exactly equal to the window is
		// still within it.
		if now.Sub(old.LastVisitAt) > window {
			unique = true
			old.VisitCount++
			old.LastVisitAt = now
			return old
		}
		unique = false
		return old
	})

	return Classification{
		IsUnique:   unique,
		VisitCount: rec.VisitCount,
		FirstVisit: rec.FirstVisitAt,
		LastVisit:  rec.LastVisitAt,
	}, nil
}

// Len reports how many identities the store currently tracks.
func (s *MemoryStore) Len() int {
	return s.entries.Len()
}

// Sweep removes expired records eagerly and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	return s.entries.Sweep()
}

package visitor

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Identity derives a stable visitor key from the client address and
// user-agent string. The same (address, user-agent) pair always yields
// the same identity; the raw inputs are not recoverable from it.
func Identity(addr, userAgent string) string {
	hash := sha256.Sum256([]byte(addr + "|" + userAgent))
	return hex.EncodeToString(hash[:16])
}

// Record is the per-identity visit state owned by the store.
type Record struct {
	FirstVisitAt time.Time `json:"first_visit_at"`
	LastVisitAt  time.Time `json:"last_visit_at"`
	VisitCount   int64     `json:"visit_count"`
}

// Classification is the outcome of classifying a single observation.
//
// IsUnique is true when the identity had no live record or when the
// elapsed time since the last unique visit exceeds the window. Only a
// unique visit advances LastVisit; returning visits inside the window
// do not extend it.
type Classification struct {
	IsUnique   bool
	VisitCount int64
	FirstVisit time.Time
	LastVisit  time.Time
}

// Config holds dedup tracker configuration.
type Config struct {
	Window           time.Duration `env:"DEDUP_WINDOW" envDefault:"30m"`          // Window is the sliding dedup window; repeat observations inside it count as one visit.
	Capacity         int           `env:"DEDUP_CAPACITY" envDefault:"100000"`     // Capacity bounds the in-memory store; least recently seen identities are evicted first.
	RetentionWindows int           `env:"DEDUP_RETENTION_WINDOWS" envDefault:"4"` // RetentionWindows is how many idle windows a record survives before it expires.
	RedisURL         string        `env:"DEDUP_REDIS_URL"`                        // RedisURL enables the shared redis store; empty keeps dedup process-local.
}

// Retention returns the idle retention duration derived from the
// configured window and multiplier.
func (c Config) Retention() time.Duration {
	windows := c.RetentionWindows
	if windows <= 0 {
		windows = 4
	}
	return time.Duration(windows) * c.Window
}

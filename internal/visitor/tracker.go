package visitor

import (
	"context"
	"time"
)

// DefaultWindow is the dedup window used when none is configured.
const DefaultWindow = 30 * time.Minute

// Tracker classifies observations of visitor identities against a
// sliding dedup window. The store is injected so process-local and
// shared (redis) deployments use the same tracker.
type Tracker struct {
	store  Store
	window time.Duration
}

// NewTracker creates a tracker over the given store. A non-positive
// window falls back to DefaultWindow.
func NewTracker(store Store, window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{store: store, window: window}
}

// Window returns the configured dedup window.
func (t *Tracker) Window() time.Duration {
	return t.window
}

// Classify records an observation of identity at now and reports
// whether it counts as a unique visit within the tracker's window.
func (t *Tracker) Classify(ctx context.Context, identity string, now time.Time) (Classification, error) {
	return t.store.Visit(ctx, identity, now, t.window)
}

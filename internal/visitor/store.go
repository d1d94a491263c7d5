package visitor

import (
	"context"
	"time"
)

// Store persists per-identity visit state and performs the atomic
// check-and-update that classifies an observation. Implementations must
// guarantee that two concurrent observations of the same identity
// cannot both be classified unique within one window.
type Store interface {
	// Visit classifies an observation of identity at now against the
	// given window and updates stored state accordingly.
	Visit(ctx context.Context, identity string, now time.Time, window time.Duration) (Classification, error)
}

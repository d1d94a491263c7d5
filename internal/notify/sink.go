package notify

import "context"

// Sink delivers a visit event to one destination. Implementations own
// their formatting and transport; a failed delivery returns an error
// and must leave no other side effects.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Notify delivers the event. The context carries the delivery
	// deadline; implementations must respect it.
	Notify(ctx context.Context, rec Record) error
}

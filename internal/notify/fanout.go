package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Fanout delivers each visit event to all registered sinks
// concurrently. One sink failing, timing out or panicking never affects
// the others and never surfaces to the request path.
type Fanout struct {
	sinks   []Sink
	timeout time.Duration
	log     *slog.Logger
	wg      sync.WaitGroup
}

// FanoutOption configures a Fanout.
type FanoutOption func(*Fanout)

// WithSinkTimeout bounds each sink delivery. Defaults to 10s.
func WithSinkTimeout(d time.Duration) FanoutOption {
	return func(f *Fanout) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFanoutLogger sets the logger for delivery failures.
func WithFanoutLogger(log *slog.Logger) FanoutOption {
	return func(f *Fanout) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFanout creates a fanout over the given sinks. An empty sink list
// is valid; Dispatch becomes a no-op.
func NewFanout(sinks []Sink, opts ...FanoutOption) *Fanout {
	f := &Fanout{
		sinks:   sinks,
		timeout: 10 * time.Second,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Sinks returns the number of registered sinks.
func (f *Fanout) Sinks() int { return len(f.sinks) }

// Dispatch fans the event out to all sinks and returns immediately.
// Deliveries run on a context detached from the request so an early
// client disconnect cannot cancel them.
func (f *Fanout) Dispatch(ctx context.Context, rec Record) {
	base := context.WithoutCancel(ctx)

	for _, sink := range f.sinks {
		sink := sink
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					f.log.Error("sink panicked",
						slog.String("sink", sink.Name()),
						slog.Any("panic", r))
				}
			}()

			sinkCtx, cancel := context.WithTimeout(base, f.timeout)
			defer cancel()

			started := time.Now()
			if err := sink.Notify(sinkCtx, rec); err != nil {
				f.log.Error("sink delivery failed",
					slog.String("sink", sink.Name()),
					slog.String("event_id", rec.EventID),
					slog.String("error", err.Error()))
				return
			}
			f.log.Debug("sink delivery ok",
				slog.String("sink", sink.Name()),
				slog.String("event_id", rec.EventID),
				slog.Duration("took", time.Since(started)))
		}()
	}
}

// Wait blocks until all in-flight deliveries finish. Called on
// shutdown so pending notifications are not dropped.
func (f *Fanout) Wait() {
	f.wg.Wait()
}

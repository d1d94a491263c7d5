package notify_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitrack/internal/notify"
)

type stubSink struct {
	name  string
	calls atomic.Int64
	fn    func(ctx context.Context, rec notify.Record) error
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Notify(ctx context.Context, rec notify.Record) error {
	s.calls.Add(1)
	if s.fn != nil {
		return s.fn(ctx, rec)
	}
	return nil
}

func testRecord() notify.Record {
	return notify.Record{
		EventID:   "evt-1",
		Timestamp: time.Now().UTC(),
	}
}

func TestFanout_Dispatch(t *testing.T) {
	t.Run("delivers to all sinks", func(t *testing.T) {
		a := &stubSink{name: "a"}
		b := &stubSink{name: "b"}
		c := &stubSink{name: "c"}

		f := notify.NewFanout([]notify.Sink{a, b, c})
		f.Dispatch(context.Background(), testRecord())
		f.Wait()

		assert.EqualValues(t, 1, a.calls.Load())
		assert.EqualValues(t, 1, b.calls.Load())
		assert.EqualValues(t, 1, c.calls.Load())
	})

	t.Run("one failing sink does not affect the others", func(t *testing.T) {
		failing := &stubSink{name: "failing", fn: func(context.Context, notify.Record) error {
			return errors.New("boom")
		}}
		healthy := &stubSink{name: "healthy"}

		f := notify.NewFanout([]notify.Sink{failing, healthy})
		f.Dispatch(context.Background(), testRecord())
		f.Wait()

		assert.EqualValues(t, 1, failing.calls.Load())
		assert.EqualValues(t, 1, healthy.calls.Load())
	})

	t.Run("a panicking sink is contained", func(t *testing.T) {
		panicking := &stubSink{name: "panicking", fn: func(context.Context, notify.Record) error {
			panic("sink exploded")
		}}
		healthy := &stubSink{name: "healthy"}

		f := notify.NewFanout([]notify.Sink{panicking, healthy})

		assert.NotPanics(t, func() {
			f.Dispatch(context.Background(), testRecord())
			f.Wait()
		})
		assert.EqualValues(t, 1, healthy.calls.Load())
	})

	t.Run("delivery survives request context cancellation", func(t *testing.T) {
		done := make(chan error, 1)
		sink := &stubSink{name: "slow", fn: func(ctx context.Context, _ notify.Record) error {
			select {
			case <-ctx.Done():
				done <- ctx.Err()
			case <-time.After(50 * time.Millisecond):
				done <- nil
			}
			return nil
		}}

		ctx, cancel := context.WithCancel(context.Background())
		f := notify.NewFanout([]notify.Sink{sink})
		f.Dispatch(ctx, testRecord())
		cancel() // simulates the client hanging up right after the response
		f.Wait()

		assert.NoError(t, <-done, "delivery context must be detached from the request context")
	})

	t.Run("no sinks is a no-op", func(t *testing.T) {
		f := notify.NewFanout(nil)

		assert.NotPanics(t, func() {
			f.Dispatch(context.Background(), testRecord())
			f.Wait()
		})
		assert.Equal(t, 0, f.Sinks())
	})

	t.Run("slow sink is cut off by the sink timeout", func(t *testing.T) {
		timedOut := make(chan struct{})
		sink := &stubSink{name: "slow", fn: func(ctx context.Context, _ notify.Record) error {
			<-ctx.Done()
			close(timedOut)
			return ctx.Err()
		}}

		f := notify.NewFanout([]notify.Sink{sink}, notify.WithSinkTimeout(20*time.Millisecond))
		f.Dispatch(context.Background(), testRecord())
		f.Wait()

		select {
		case <-timedOut:
		default:
			t.Fatal("sink context was never canceled")
		}
	})
}

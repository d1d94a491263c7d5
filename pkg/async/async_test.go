package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/visitrack/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Run("returns result", func(t *testing.T) {
		f := async.Async(context.Background(), 2, func(_ context.Context, n int) (int, error) {
			return n * 21, nil
		})

		result, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, result)
	})

	t.Run("returns error", func(t *testing.T) {
		wantErr := errors.New("boom")
		f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			return 0, wantErr
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("pre-canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) {
			t.Fatal("function should not run")
			return 0, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("await with timeout", func(t *testing.T) {
		f := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			time.Sleep(200 * time.Millisecond)
			return 1, nil
		})

		_, err := f.AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
	})
}

func TestWaitAll(t *testing.T) {
	t.Run("collects all results", func(t *testing.T) {
		mk := func(n int) *async.Future[int] {
			return async.Async(context.Background(), n, func(_ context.Context, n int) (int, error) {
				return n, nil
			})
		}

		results, err := async.WaitAll(mk(1), mk(2), mk(3))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, results)
	})

	t.Run("first error is reported without dropping results", func(t *testing.T) {
		wantErr := errors.New("boom")
		ok := async.Async(context.Background(), 7, func(_ context.Context, n int) (int, error) {
			return n, nil
		})
		failed := async.Async(context.Background(), 0, func(_ context.Context, _ int) (int, error) {
			return 0, wantErr
		})

		results, err := async.WaitAll(ok, failed)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 7, results[0])
	})
}

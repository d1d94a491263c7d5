package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/visitrack/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		val, ok = c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)

		assert.Equal(t, 2, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("update existing returns old value", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		old, existed := c.Put("a", 2)

		assert.True(t, existed)
		assert.Equal(t, 1, old)

		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
	})

	t.Run("remove", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		val, ok := c.Remove("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		_, ok = c.Get("a")
		assert.False(t, ok)
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3) // evicts "a"

		_, ok := c.Get("a")
		assert.False(t, ok)

		_, ok = c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get refreshes recency", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")    // "a" is now most recent
		c.Put("c", 3) // evicts "b"

		_, ok := c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("b")
		assert.False(t, ok)
	})

	t.Run("evict callback fires", func(t *testing.T) {
		var evicted []string
		c := cache.NewLRUCache(1, cache.WithEvictCallback[string, int](func(k string, _ int) {
			evicted = append(evicted, k)
		}))

		c.Put("a", 1)
		c.Put("b", 2)

		assert.Equal(t, []string{"a"}, evicted)
	})
}

func TestLRUCache_TTL(t *testing.T) {
	newClock := func(start time.Time) (*time.Time, func() time.Time) {
		now := start
		return &now, func() time.Time { return now }
	}

	t.Run("expired entries are missing", func(t *testing.T) {
		now, clock := newClock(time.Now())
		c := cache.NewLRUCache(10,
			cache.WithTTL[string, int](time.Minute),
			cache.WithClock[string, int](clock),
		)

		c.Put("a", 1)

		*now = now.Add(30 * time.Second)
		_, ok := c.Get("a")
		assert.True(t, ok, "entry inside TTL should be present")

		*now = now.Add(31 * time.Second)
		_, ok = c.Get("a")
		assert.False(t, ok, "entry past TTL should be gone")
	})

	t.Run("put refreshes expiry", func(t *testing.T) {
		now, clock := newClock(time.Now())
		c := cache.NewLRUCache(10,
			cache.WithTTL[string, int](time.Minute),
			cache.WithClock[string, int](clock),
		)

		c.Put("a", 1)
		*now = now.Add(45 * time.Second)
		c.Put("a", 2)
		*now = now.Add(45 * time.Second)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})

	t.Run("sweep removes expired entries", func(t *testing.T) {
		now, clock := newClock(time.Now())
		c := cache.NewLRUCache(10,
			cache.WithTTL[string, int](time.Minute),
			cache.WithClock[string, int](clock),
		)

		c.Put("a", 1)
		c.Put("b", 2)
		*now = now.Add(2 * time.Minute)
		c.Put("c", 3)

		assert.Equal(t, 2, c.Sweep())
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRUCache_Upsert(t *testing.T) {
	t.Run("creates missing entry", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](10)

		val := c.Upsert("a", func(old int, ok bool) int {
			assert.False(t, ok)
			return 1
		})
		assert.Equal(t, 1, val)
	})

	t.Run("transforms existing entry", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](10)

		c.Put("a", 1)
		val := c.Upsert("a", func(old int, ok bool) int {
			assert.True(t, ok)
			return old + 1
		})
		assert.Equal(t, 2, val)
	})

	t.Run("expired entry is treated as missing", func(t *testing.T) {
		now := time.Now()
		c := cache.NewLRUCache(10,
			cache.WithTTL[string, int](time.Minute),
			cache.WithClock[string, int](func() time.Time { return now }),
		)

		c.Put("a", 5)
		now = now.Add(2 * time.Minute)

		val := c.Upsert("a", func(old int, ok bool) int {
			assert.False(t, ok)
			assert.Zero(t, old)
			return 1
		})
		assert.Equal(t, 1, val)
	})

	t.Run("concurrent upserts do not lose increments", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](10)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Upsert("counter", func(old int, _ bool) int { return old + 1 })
			}()
		}
		wg.Wait()

		val, _ := c.Get("counter")
		assert.Equal(t, 100, val)
	})
}

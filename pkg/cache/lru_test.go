package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameguild-gg/guildkit/pkg/cache"
)

func TestLRUCache(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)

		v, ok = c.Get("b")
		require.True(t, ok)
		assert.Equal(t, 2, v)

		assert.Equal(t, 2, c.Len())
	})

	t.Run("miss on absent key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)

		v, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("put replaces existing value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("a", 2)

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](2)

		c.Put("a", 1)
		c.Put("b", 2)
		_, _ = c.Get("a") // touch "a" so "b" is the eviction candidate
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)

		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		assert.True(t, c.Remove("a"))
		assert.False(t, c.Remove("a"))

		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)
		c.Clear()

		assert.Equal(t, 0, c.Len())
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
	})
}

func TestLRUCacheConcurrency(t *testing.T) {
	t.Parallel()

	c := cache.NewLRUCache[int, int](64)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				c.Put(i*100+j, j)
				_, _ = c.Get(i*100 + j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 64, c.Len())
}

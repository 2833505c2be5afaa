package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryCache_GetSet(t *testing.T) {

	cache := NewMemoryCache(0)
	t.Cleanup(cache.Stop)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	assert.NoError(t, cache.Set(ctx, "k", "v", 0))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expires(t *testing.T) {

	clock := newClock()
	cache := newMemoryCache(10, clock.now)
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	clock.t = clock.t.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	clock.t = clock.t.Add(2 * time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestMemoryCache_SweepReclaimsExpiredWithoutGet(t *testing.T) {

	clock := newClock()
	cache := newMemoryCache(100, clock.now)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		assert.NoError(t, cache.Set(ctx, key, "v", time.Minute))
	}
	assert.NoError(t, cache.Set(ctx, "long", "v", time.Hour))
	assert.NoError(t, cache.Set(ctx, "forever", "v", 0))

	clock.t = clock.t.Add(2 * time.Minute)

	assert.Equal(t, 3, cache.sweep())
	assert.Equal(t, 2, cache.Len())
}

func TestMemoryCache_BoundedSize(t *testing.T) {

	clock := newClock()
	cache := newMemoryCache(3, clock.now)
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "forever", "v", 0))
	assert.NoError(t, cache.Set(ctx, "soon", "v", time.Minute))
	assert.NoError(t, cache.Set(ctx, "later", "v", time.Hour))

	// lleno y sin vencidas: sale la más próxima a vencer
	assert.NoError(t, cache.Set(ctx, "new", "v", time.Hour))
	assert.Equal(t, 3, cache.Len())
	_, ok := cache.Get(ctx, "soon")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "forever")
	assert.True(t, ok)

	// reemplazar una clave existente no desaloja
	assert.NoError(t, cache.Set(ctx, "later", "v2", time.Hour))
	assert.Equal(t, 3, cache.Len())

	// con vencidas, se limpian antes de desalojar
	clock.t = clock.t.Add(2 * time.Hour)
	assert.NoError(t, cache.Set(ctx, "fresh", "v", time.Hour))
	assert.Equal(t, 2, cache.Len())
}

func TestMemoryCache_ManyKeysStayBounded(t *testing.T) {

	cache := newMemoryCache(50, newClock().now)
	ctx := context.Background()

	for i := range 1000 {
		assert.NoError(t, cache.Set(ctx, fmt.Sprintf("eval:%d", i), "v", time.Minute))
	}

	assert.Equal(t, 50, cache.Len())
}

func TestMemoryCache_StopTwice(t *testing.T) {

	cache := NewMemoryCache(1)

	assert.NotPanics(t, func() {
		cache.Stop()
		cache.Stop()
	})
}

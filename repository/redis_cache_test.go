package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisCache_Unreachable(t *testing.T) {

	cache := NewRedisCache("127.0.0.1:1", quietLogger())
	defer cache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.Error(t, cache.Ping(ctx))

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, cache.Set(ctx, "k", "v", time.Minute))
}

func TestRedisCache_Live(t *testing.T) {

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	cache := NewRedisCache(addr, quietLogger())
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.Ping(ctx))
	require.NoError(t, cache.Set(ctx, "test:k", "v", time.Minute))

	val, ok := cache.Get(ctx, "test:k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)

	_, ok = cache.Get(ctx, "test:missing")
	assert.False(t, ok)
}

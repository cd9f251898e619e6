package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, "", time.Minute, zap.NewNop())

	assert.False(t, c.Enabled())
	require.NoError(t, c.SetJSON(ctx, "snapshot", map[string]int{"a": 1}))

	var got map[string]int
	ok, err := c.GetJSON(ctx, "snapshot", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	assert.NoError(t, c.Delete(ctx, "snapshot"))
	assert.NoError(t, c.Close())
}

func TestNilCache(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.False(t, c.Enabled())
	ok, err := c.GetJSON(ctx, "k", new(int))
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.SetJSON(ctx, "k", 1))
	assert.NoError(t, c.Delete(ctx, "k"))
}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(context.Background(), mr.Addr(), time.Minute, zap.NewNop())
	require.True(t, c.Enabled())
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisRoundTrip(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	var got map[string]int
	ok, err := c.GetJSON(ctx, "dashboard:snapshot:2026-10", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetJSON(ctx, "dashboard:snapshot:2026-10", map[string]int{"teachers": 3}))
	assert.True(t, mr.Exists("aplus:dashboard:snapshot:2026-10"))
	assert.Equal(t, time.Minute, mr.TTL("aplus:dashboard:snapshot:2026-10"))

	ok, err = c.GetJSON(ctx, "dashboard:snapshot:2026-10", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]int{"teachers": 3}, got)

	mr.FastForward(time.Minute)
	ok, err = c.GetJSON(ctx, "dashboard:snapshot:2026-10", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisDelete(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "a", 1))
	require.NoError(t, c.SetJSON(ctx, "b", 2))
	require.NoError(t, c.Delete(ctx, "a", "missing"))

	assert.False(t, mr.Exists("aplus:a"))
	assert.True(t, mr.Exists("aplus:b"))
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisErrors(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("aplus:broken", "{not json"))
	_, err := c.GetJSON(ctx, "broken", new(map[string]int))
	assert.ErrorContains(t, err, "failed to decode cache key broken")

	assert.Error(t, c.SetJSON(ctx, "fn", func() {}))

	mr.SetError("ERR injected failure")
	_, err = c.GetJSON(ctx, "a", new(int))
	assert.ErrorContains(t, err, "failed to read cache key a")
	assert.Error(t, c.SetJSON(ctx, "a", 1))
	assert.Error(t, c.Delete(ctx, "a"))
	mr.SetError("")
}

func TestNewUnreachable(t *testing.T) {
	c := New(context.Background(), "127.0.0.1:1", time.Minute, zap.NewNop())
	assert.False(t, c.Enabled())
}

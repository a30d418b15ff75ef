package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodesk/infras/otel/mocks"
	"studiodesk/shared/cache"
)

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "client:view:abc123", payload{ID: "abc123", Name: "Ada"}, 60))

	var got payload
	require.NoError(t, c.Get(ctx, "client:view:abc123", &got))
	assert.Equal(t, payload{ID: "abc123", Name: "Ada"}, got)

	ttl := server.TTL("client:view:abc123")
	assert.Positive(t, ttl)
}

func TestRedisCache_GetString(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "raw", "plain value", 60))

	var got string
	require.NoError(t, c.Get(ctx, "raw", &got))
	assert.Equal(t, "plain value", got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := newCache(t)

	var got payload
	err := c.Get(context.Background(), "missing", &got)

	require.Error(t, err)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_Delete(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	for _, key := range []string{"booking:pending", "booking:view:x", "client:view:y"} {
		require.NoError(t, server.Set(key, "{}"))
	}

	require.NoError(t, c.Delete(ctx, "booking:pending", "booking:view:x", "booking:view:absent"))
	assert.False(t, server.Exists("booking:pending"))
	assert.False(t, server.Exists("booking:view:x"))
	assert.True(t, server.Exists("client:view:y"))

	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_Incr(t *testing.T) {
	c, server := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Incr(ctx, "limiter:203.0.113.7", 60)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 60*time.Second, server.TTL("limiter:203.0.113.7"))

	server.FastForward(61 * time.Second)

	got, err := c.Incr(ctx, "limiter:203.0.113.7", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, server := newCache(t)
	server.Close()

	_, err := c.Incr(context.Background(), "limiter:x", 60)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cache.Nil)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNilClientIsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "user:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())

	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "user:1", &dst))
}

func TestUnreachableRedisFailsSafe(t *testing.T) {
	c := NewWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()
	ctx := context.Background()

	data, err := c.Get(ctx, "user:1")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, c.Set(ctx, "user:1", []byte("x"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "user:1"))
	assert.Error(t, c.Ping(ctx))

	c.SetJSON(ctx, "user:1", map[string]string{"name": "x"}, time.Minute)
	var dst map[string]string
	assert.False(t, c.GetJSON(ctx, "user:1", &dst))
}

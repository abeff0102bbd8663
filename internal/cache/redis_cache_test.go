package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"icecream-parlor/internal/cache"
	"icecream-parlor/internal/domain"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis is not available: %v", err)
	}

	c := cache.NewRedisCache(client, time.Minute, zap.NewNop())
	recipe := domain.Recipe{
		Flavor:      "test-vanilla",
		Ingredients: []domain.RecipeIngredient{{Name: "cream", Quantity: 2}},
	}
	c.Put(ctx, recipe)
	defer client.Del(context.Background(), "recipe:test-vanilla")

	got, ok := c.Get(ctx, "test-vanilla")
	require.True(t, ok)
	assert.Equal(t, recipe, got)

	_, ok = c.Get(ctx, "test-nonexistent")
	assert.False(t, ok)
}

func TestRedisCache_Unavailable(t *testing.T) {
	// Недоступный Redis — это промах, а не паника
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	c := cache.NewRedisCache(client, time.Minute, zap.NewNop())
	c.Put(context.Background(), domain.Recipe{Flavor: "vanilla"})
	_, ok := c.Get(context.Background(), "vanilla")
	assert.False(t, ok)
}

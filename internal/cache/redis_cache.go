package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"icecream-parlor/internal/domain"
)

const recipeKeyPrefix = "recipe:"

// RedisCache делит кеш рецептов между несколькими экземплярами сервиса.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log}
}

func (c *RedisCache) Put(ctx context.Context, recipe domain.Recipe) {
	payload, err := json.Marshal(recipe)
	if err != nil {
		c.log.Error("failed to marshal recipe", zap.String("flavor", recipe.Flavor), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, recipeKeyPrefix+recipe.Flavor, payload, c.ttl).Err(); err != nil {
		c.log.Warn("failed to cache recipe", zap.String("flavor", recipe.Flavor), zap.Error(err))
	}
}

// Get считает промахом и отсутствие ключа, и недоступность Redis.
func (c *RedisCache) Get(ctx context.Context, flavor string) (domain.Recipe, bool) {
	raw, err := c.client.Get(ctx, recipeKeyPrefix+flavor).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("failed to read cached recipe", zap.String("flavor", flavor), zap.Error(err))
		}
		return domain.Recipe{}, false
	}
	var recipe domain.Recipe
	if err := json.Unmarshal(raw, &recipe); err != nil {
		c.log.Warn("corrupted cached recipe", zap.String("flavor", flavor), zap.Error(err))
		return domain.Recipe{}, false
	}
	return recipe, true
}

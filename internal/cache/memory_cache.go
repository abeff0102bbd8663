package cache

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"icecream-parlor/internal/domain"
)

type MemoryCache struct {
	mu       sync.RWMutex
	flavors  []string
	recipes  map[string]domain.Recipe
	maxItems int
	log      *zap.Logger
}

func NewMemoryCache(maxItems int, log *zap.Logger) *MemoryCache {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &MemoryCache{
		flavors:  make([]string, 0, maxItems),
		recipes:  make(map[string]domain.Recipe, maxItems),
		maxItems: maxItems,
		log:      log,
	}
}

// Put вытесняет самый старый рецепт, когда кеш заполнен.
func (c *MemoryCache) Put(_ context.Context, recipe domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.recipes[recipe.Flavor]; !ok {
		c.flavors = append(c.flavors, recipe.Flavor)
	}
	if len(c.flavors) > c.maxItems {
		oldest := c.flavors[0]
		c.flavors = c.flavors[1:]
		delete(c.recipes, oldest)
	}
	recipe.Ingredients = slices.Clone(recipe.Ingredients)
	c.recipes[recipe.Flavor] = recipe
	c.log.Debug("recipe cached", zap.String("flavor", recipe.Flavor), zap.Int("size", len(c.flavors)))
}

func (c *MemoryCache) Get(_ context.Context, flavor string) (domain.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recipe, ok := c.recipes[flavor]
	if !ok {
		return domain.Recipe{}, false
	}
	recipe.Ingredients = slices.Clone(recipe.Ingredients)
	return recipe, true
}

// Warm загружает в кеш до limit последних рецептов. Ошибка только логируется:
// без кеша сервис работает напрямую с хранилищем.
func Warm(ctx context.Context, c Cache, lister RecipeLister, limit int, log *zap.Logger) {
	recipes, err := lister.ListRecipes(ctx, limit, 0)
	if err != nil {
		log.Error("failed to warm recipe cache", zap.Error(err))
		return
	}

	// От старых к новым, чтобы при вытеснении уходили старые
	for i := len(recipes) - 1; i >= 0; i-- {
		c.Put(ctx, recipes[i])
	}
	log.Info("recipe cache warmed", zap.Int("loaded", len(recipes)))
}

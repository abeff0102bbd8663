package cache

import (
	"context"

	"icecream-parlor/internal/domain"
)

// Cache хранит рецепты: после загрузки они не меняются, поэтому инвалидация не нужна.
type Cache interface {
	Put(ctx context.Context, recipe domain.Recipe)
	Get(ctx context.Context, flavor string) (domain.Recipe, bool)
}

// RecipeLister описывает зависимость, необходимую для предзагрузки кеша
// при старте приложения.
type RecipeLister interface {
	ListRecipes(ctx context.Context, limit, offset int) ([]domain.Recipe, error)
}

package repository

import (
	"context"

	"icecream-parlor/internal/domain"
)

type RecipeRepository interface {
	GetRecipe(ctx context.Context, flavor string) (domain.Recipe, error)
	ListRecipes(ctx context.Context, limit, offset int) ([]domain.Recipe, error)
	SaveRecipe(ctx context.Context, recipe domain.Recipe) error
}

// CartonRepository хранит остатки. TakeScoop и Restock атомарны для одного
// вкуса, поэтому параллельные запросы не продают лишних шариков.
type CartonRepository interface {
	// GetCartonsByFlavorNames возвращает по контейнеру на каждое известное имя
	// в порядке запроса, неизвестные имена пропускаются без ошибки.
	GetCartonsByFlavorNames(ctx context.Context, flavors []string) ([]domain.Carton, error)
	TakeScoop(ctx context.Context, flavor string) (domain.Carton, error)
	Restock(ctx context.Context, flavor string, scoops int) (domain.Carton, error)
	SaveCarton(ctx context.Context, carton domain.Carton) error
}

func orderByFlavors(flavors []string, found map[string]domain.Carton) []domain.Carton {
	cartons := make([]domain.Carton, 0, len(flavors))
	for _, flavor := range flavors {
		if c, ok := found[flavor]; ok {
			cartons = append(cartons, c)
		}
	}
	return cartons
}

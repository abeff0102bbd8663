package repository

import (
	"context"
	"fmt"

	"icecream-parlor/internal/domain"
)

// DefaultRecipes — стартовое меню салона.
func DefaultRecipes() []domain.Recipe {
	return []domain.Recipe{
		{Flavor: "vanilla", Ingredients: []domain.RecipeIngredient{
			{Name: "cream", Quantity: 2}, {Name: "milk", Quantity: 1}, {Name: "sugar", Quantity: 1}, {Name: "vanilla extract", Quantity: 1},
		}},
		{Flavor: "chocolate", Ingredients: []domain.RecipeIngredient{
			{Name: "cream", Quantity: 2}, {Name: "milk", Quantity: 1}, {Name: "sugar", Quantity: 1}, {Name: "cocoa", Quantity: 2},
		}},
		{Flavor: "strawberry", Ingredients: []domain.RecipeIngredient{
			{Name: "cream", Quantity: 2}, {Name: "sugar", Quantity: 1}, {Name: "strawberries", Quantity: 3},
		}},
		{Flavor: "mint chip", Ingredients: []domain.RecipeIngredient{
			{Name: "cream", Quantity: 2}, {Name: "milk", Quantity: 1}, {Name: "sugar", Quantity: 1}, {Name: "mint", Quantity: 1}, {Name: "chocolate chips", Quantity: 1},
		}},
	}
}

func DefaultCartons() []domain.Carton {
	return []domain.Carton{
		{Flavor: "vanilla", Scoops: 10},
		{Flavor: "chocolate", Scoops: 10},
		{Flavor: "strawberry", Scoops: 5},
		{Flavor: "mint chip", Scoops: 0},
	}
}

// Seed заливает стартовое меню в хранилища. Существующие рецепты перезаписываются.
func Seed(ctx context.Context, recipes RecipeRepository, cartons CartonRepository) error {
	for _, recipe := range DefaultRecipes() {
		if err := recipes.SaveRecipe(ctx, recipe); err != nil {
			return fmt.Errorf("seed recipe %s: %w", recipe.Flavor, err)
		}
	}
	for _, carton := range DefaultCartons() {
		if err := cartons.SaveCarton(ctx, carton); err != nil {
			return fmt.Errorf("seed carton %s: %w", carton.Flavor, err)
		}
	}
	return nil
}

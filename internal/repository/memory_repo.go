package repository

import (
	"context"
	"slices"
	"sync"

	"icecream-parlor/internal/domain"
)

type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	flavors []string
	recipes map[string]domain.Recipe
}

func NewMemoryRecipeRepository(recipes ...domain.Recipe) *MemoryRecipeRepository {
	r := &MemoryRecipeRepository{recipes: make(map[string]domain.Recipe, len(recipes))}
	for _, recipe := range recipes {
		_ = r.SaveRecipe(context.Background(), recipe)
	}
	return r
}

func (r *MemoryRecipeRepository) SaveRecipe(_ context.Context, recipe domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.recipes[recipe.Flavor]; !ok {
		r.flavors = append(r.flavors, recipe.Flavor)
	}
	// Копия, чтобы вызывающий не мог поменять сохранённый рецепт
	recipe.Ingredients = slices.Clone(recipe.Ingredients)
	r.recipes[recipe.Flavor] = recipe
	return nil
}

func (r *MemoryRecipeRepository) GetRecipe(_ context.Context, flavor string) (domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, ok := r.recipes[flavor]
	if !ok {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	recipe.Ingredients = slices.Clone(recipe.Ingredients)
	return recipe, nil
}

// ListRecipes отдаёт рецепты от последнего сохранённого к первому, как и Postgres.
func (r *MemoryRecipeRepository) ListRecipes(_ context.Context, limit, offset int) ([]domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Recipe, 0, max(0, min(limit, len(r.flavors)-offset)))
	for i := len(r.flavors) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		recipe := r.recipes[r.flavors[i]]
		recipe.Ingredients = slices.Clone(recipe.Ingredients)
		out = append(out, recipe)
	}
	return out, nil
}

type MemoryCartonRepository struct {
	mu      sync.Mutex
	cartons map[string]*domain.Carton
}

func NewMemoryCartonRepository(cartons ...domain.Carton) *MemoryCartonRepository {
	r := &MemoryCartonRepository{cartons: make(map[string]*domain.Carton, len(cartons))}
	for _, c := range cartons {
		_ = r.SaveCarton(context.Background(), c)
	}
	return r
}

func (r *MemoryCartonRepository) GetCartonsByFlavorNames(_ context.Context, flavors []string) ([]domain.Carton, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := make(map[string]domain.Carton, len(flavors))
	for _, flavor := range flavors {
		if c, ok := r.cartons[flavor]; ok {
			found[flavor] = *c
		}
	}
	return orderByFlavors(flavors, found), nil
}

func (r *MemoryCartonRepository) TakeScoop(_ context.Context, flavor string) (domain.Carton, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cartons[flavor]
	if !ok {
		return domain.Carton{}, domain.ErrCartonNotFound
	}
	if err := c.TakeScoop(); err != nil {
		return *c, err
	}
	return *c, nil
}

func (r *MemoryCartonRepository) Restock(_ context.Context, flavor string, scoops int) (domain.Carton, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cartons[flavor]
	if !ok {
		c = &domain.Carton{Flavor: flavor}
		r.cartons[flavor] = c
	}
	c.Scoops += scoops
	return *c, nil
}

func (r *MemoryCartonRepository) SaveCarton(_ context.Context, carton domain.Carton) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cartons[carton.Flavor] = &carton
	return nil
}

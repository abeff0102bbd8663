package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icecream-parlor/internal/domain"
	"icecream-parlor/internal/repository"
)

func TestMemoryRecipeRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRecipeRepository(repository.DefaultRecipes()...)

	recipe, err := repo.GetRecipe(ctx, "vanilla")
	require.NoError(t, err)
	assert.Equal(t, "vanilla", recipe.Flavor)
	assert.Equal(t, "cream", recipe.Ingredients[0].Name)

	// Изменение полученной копии не меняет хранилище
	recipe.Ingredients[0].Name = "water"
	again, err := repo.GetRecipe(ctx, "vanilla")
	require.NoError(t, err)
	assert.Equal(t, "cream", again.Ingredients[0].Name)

	_, err = repo.GetRecipe(ctx, "mystery")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestMemoryRecipeRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRecipeRepository(repository.DefaultRecipes()...)

	all, err := repo.ListRecipes(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Последний сохранённый идёт первым
	assert.Equal(t, "mint chip", all[0].Flavor)

	page, err := repo.ListRecipes(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "strawberry", page[0].Flavor)
	assert.Equal(t, "chocolate", page[1].Flavor)

	empty, err := repo.ListRecipes(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryRecipeRepository_ListHugeLimit(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRecipeRepository(repository.DefaultRecipes()...)

	var (
		all []domain.Recipe
		err error
	)
	require.NotPanics(t, func() {
		all, err = repo.ListRecipes(ctx, 1<<62, 0)
	})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	tail, err := repo.ListRecipes(ctx, 1<<62, 3)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "vanilla", tail[0].Flavor)
}

func TestMemoryCartonRepository_GetCartonsByFlavorNames(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCartonRepository(
		domain.Carton{Flavor: "vanilla", Scoops: 2},
		domain.Carton{Flavor: "chocolate", Scoops: 0},
	)

	cartons, err := repo.GetCartonsByFlavorNames(ctx, []string{"chocolate", "mint", "vanilla", "vanilla"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Carton{
		{Flavor: "chocolate", Scoops: 0},
		{Flavor: "vanilla", Scoops: 2},
		{Flavor: "vanilla", Scoops: 2},
	}, cartons)
}

func TestMemoryCartonRepository_TakeScoop(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCartonRepository(domain.Carton{Flavor: "vanilla", Scoops: 1})

	c, err := repo.TakeScoop(ctx, "vanilla")
	require.NoError(t, err)
	assert.Equal(t, 0, c.Scoops)

	_, err = repo.TakeScoop(ctx, "vanilla")
	assert.ErrorIs(t, err, domain.ErrCartonEmpty)

	_, err = repo.TakeScoop(ctx, "mint")
	assert.ErrorIs(t, err, domain.ErrCartonNotFound)
}

func TestMemoryCartonRepository_ConcurrentTakeScoop(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCartonRepository(domain.Carton{Flavor: "vanilla", Scoops: 10})

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		served int
	)
	for range 50 {
		wg.Go(func() {
			if _, err := repo.TakeScoop(ctx, "vanilla"); err == nil {
				mu.Lock()
				served++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 10, served)
	cartons, err := repo.GetCartonsByFlavorNames(ctx, []string{"vanilla"})
	require.NoError(t, err)
	assert.Equal(t, 0, cartons[0].Scoops)
}

func TestMemoryCartonRepository_Restock(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCartonRepository(domain.Carton{Flavor: "vanilla", Scoops: 1})

	c, err := repo.Restock(ctx, "vanilla", 5)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Scoops)

	// Новый вкус появляется после первой партии
	c, err = repo.Restock(ctx, "mint", 3)
	require.NoError(t, err)
	assert.Equal(t, domain.Carton{Flavor: "mint", Scoops: 3}, c)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	recipes := repository.NewMemoryRecipeRepository()
	cartons := repository.NewMemoryCartonRepository()

	require.NoError(t, repository.Seed(ctx, recipes, cartons))

	_, err := recipes.GetRecipe(ctx, "strawberry")
	assert.NoError(t, err)
	got, err := cartons.GetCartonsByFlavorNames(ctx, []string{"mint chip"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsEmpty())
}

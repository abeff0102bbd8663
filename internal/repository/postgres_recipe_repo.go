package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"icecream-parlor/internal/domain"
)

// listPrealloc ограничивает предвыделение: limit приходит от клиента.
const listPrealloc = 64

type PostgresRecipeRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRecipeRepository(pool *pgxpool.Pool) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{pool: pool}
}

func (r *PostgresRecipeRepository) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	payload, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return err
	}
	const q = `INSERT INTO recipes (flavor, ingredients) VALUES ($1, $2::jsonb)
               ON CONFLICT (flavor) DO UPDATE SET ingredients = EXCLUDED.ingredients`
	_, err = r.pool.Exec(ctx, q, recipe.Flavor, string(payload))
	return err
}

func (r *PostgresRecipeRepository) GetRecipe(ctx context.Context, flavor string) (domain.Recipe, error) {
	const q = `SELECT ingredients FROM recipes WHERE flavor = $1`
	var raw []byte
	err := r.pool.QueryRow(ctx, q, flavor).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	if err != nil {
		return domain.Recipe{}, err
	}
	recipe := domain.Recipe{Flavor: flavor}
	if err := json.Unmarshal(raw, &recipe.Ingredients); err != nil {
		return domain.Recipe{}, err
	}
	return recipe, nil
}

func (r *PostgresRecipeRepository) ListRecipes(ctx context.Context, limit, offset int) ([]domain.Recipe, error) {
	const q = `SELECT flavor, ingredients FROM recipes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make([]domain.Recipe, 0, min(limit, listPrealloc))
	for rows.Next() {
		var (
			recipe domain.Recipe
			raw    []byte
		)
		if err := rows.Scan(&recipe.Flavor, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &recipe.Ingredients); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return recipes, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"icecream-parlor/internal/domain"
)

type PostgresCartonRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCartonRepository(pool *pgxpool.Pool) *PostgresCartonRepository {
	return &PostgresCartonRepository{pool: pool}
}

func (r *PostgresCartonRepository) GetCartonsByFlavorNames(ctx context.Context, flavors []string) ([]domain.Carton, error) {
	if len(flavors) == 0 {
		return []domain.Carton{}, nil
	}
	const q = `SELECT flavor, scoops FROM cartons WHERE flavor = ANY($1)`
	rows, err := r.pool.Query(ctx, q, flavors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]domain.Carton, len(flavors))
	for rows.Next() {
		var c domain.Carton
		if err := rows.Scan(&c.Flavor, &c.Scoops); err != nil {
			return nil, err
		}
		found[c.Flavor] = c
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return orderByFlavors(flavors, found), nil
}

// TakeScoop списывает шарик одним UPDATE, условие scoops > 0 не даёт уйти в минус.
func (r *PostgresCartonRepository) TakeScoop(ctx context.Context, flavor string) (domain.Carton, error) {
	const q = `UPDATE cartons SET scoops = scoops - 1, updated_at = now()
               WHERE flavor = $1 AND scoops > 0 RETURNING flavor, scoops`
	var c domain.Carton
	err := r.pool.QueryRow(ctx, q, flavor).Scan(&c.Flavor, &c.Scoops)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Carton{}, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cartons WHERE flavor = $1)`, flavor).Scan(&exists); err != nil {
		return domain.Carton{}, err
	}
	if !exists {
		return domain.Carton{}, domain.ErrCartonNotFound
	}
	return domain.Carton{Flavor: flavor}, domain.ErrCartonEmpty
}

func (r *PostgresCartonRepository) Restock(ctx context.Context, flavor string, scoops int) (domain.Carton, error) {
	const q = `INSERT INTO cartons (flavor, scoops) VALUES ($1, $2)
               ON CONFLICT (flavor) DO UPDATE SET scoops = cartons.scoops + EXCLUDED.scoops, updated_at = now()
               RETURNING flavor, scoops`
	var c domain.Carton
	if err := r.pool.QueryRow(ctx, q, flavor, scoops).Scan(&c.Flavor, &c.Scoops); err != nil {
		return domain.Carton{}, err
	}
	return c, nil
}

func (r *PostgresCartonRepository) SaveCarton(ctx context.Context, carton domain.Carton) error {
	const q = `INSERT INTO cartons (flavor, scoops) VALUES ($1, $2)
               ON CONFLICT (flavor) DO UPDATE SET scoops = EXCLUDED.scoops, updated_at = now()`
	_, err := r.pool.Exec(ctx, q, carton.Flavor, carton.Scoops)
	return err
}

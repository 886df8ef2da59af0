package postgres

import (
	"context"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []models.Restaurant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO restaurants (
            restaurant_id, restaurant_name, city, zone, cuisine_type, restaurant_tier
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `
	for _, restaurant := range restaurants {
		_, err = tx.Exec(ctx, query,
			restaurant.ID,
			restaurant.Name,
			restaurant.City,
			restaurant.Zone,
			restaurant.CuisineType,
			restaurant.Tier,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	query := `
        SELECT restaurant_id, restaurant_name, city, zone, cuisine_type, restaurant_tier
        FROM restaurants
        ORDER BY restaurant_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		var (
			restaurant                    models.Restaurant
			name, city, zone, cuisine, tr *string
		)
		if err := rows.Scan(&restaurant.ID, &name, &city, &zone, &cuisine, &tr); err != nil {
			return nil, err
		}
		restaurant.Name = stringOrEmpty(name)
		restaurant.City = stringOrEmpty(city)
		restaurant.Zone = stringOrEmpty(zone)
		restaurant.CuisineType = stringOrEmpty(cuisine)
		restaurant.Tier = stringOrEmpty(tr)
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "restaurants")
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "restaurants")
}

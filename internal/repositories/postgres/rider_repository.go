package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RiderRepository struct {
	pool *pgxpool.Pool
}

func NewRiderRepository(pool *pgxpool.Pool) *RiderRepository {
	return &RiderRepository{pool: pool}
}

func (r *RiderRepository) BulkCreate(ctx context.Context, riders []models.Rider) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := `INSERT INTO riders (rider_id, rider_name, city, vehicle_type) VALUES ($1, $2, $3, $4)`
	for _, rider := range riders {
		if _, err = tx.Exec(ctx, stmt, rider.ID, rider.Name, rider.City, rider.VehicleType); err != nil {
			return fmt.Errorf("failed to insert rider %s: %w", rider.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *RiderRepository) GetAll(ctx context.Context) ([]models.Rider, error) {
	rows, err := r.pool.Query(ctx, `SELECT rider_id, rider_name, city, vehicle_type FROM riders ORDER BY rider_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []models.Rider
	for rows.Next() {
		var (
			rider               models.Rider
			name, city, vehicle *string
		)
		if err := rows.Scan(&rider.ID, &name, &city, &vehicle); err != nil {
			return nil, err
		}
		rider.Name = stringOrEmpty(name)
		rider.City = stringOrEmpty(city)
		rider.VehicleType = stringOrEmpty(vehicle)
		riders = append(riders, rider)
	}
	return riders, rows.Err()
}

func (r *RiderRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "riders")
}

func (r *RiderRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "riders")
}

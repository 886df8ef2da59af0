package postgres

import (
	"context"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeliveryEventRepository struct {
	pool *pgxpool.Pool
}

func NewDeliveryEventRepository(pool *pgxpool.Pool) *DeliveryEventRepository {
	return &DeliveryEventRepository{pool: pool}
}

func (r *DeliveryEventRepository) BulkCreate(ctx context.Context, events []models.DeliveryEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO delivery_events (
            order_id, order_placed_time, restaurant_confirmed_time, food_ready_time,
            rider_picked_up_time, delivered_time, estimated_delivery_time,
            actual_delivery_time_mins
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, ev := range events {
		_, err = tx.Exec(ctx, stmt,
			ev.OrderID,
			nullableTime(ev.OrderPlacedTime),
			nullableTime(ev.RestaurantConfirmedTime),
			nullableTime(ev.FoodReadyTime),
			nullableTime(ev.RiderPickedUpTime),
			nullableTime(ev.DeliveredTime), // NULL for undelivered orders
			nullableTime(ev.EstimatedDeliveryTime),
			ev.ActualDeliveryTimeMins,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *DeliveryEventRepository) GetAll(ctx context.Context) ([]models.DeliveryEvent, error) {
	query := `
        SELECT order_id, order_placed_time, restaurant_confirmed_time, food_ready_time,
               rider_picked_up_time, delivered_time, estimated_delivery_time,
               actual_delivery_time_mins
        FROM delivery_events
        ORDER BY order_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.DeliveryEvent
	for rows.Next() {
		var (
			ev                                               models.DeliveryEvent
			placed, confirmed, ready, picked, done, estimate *time.Time
		)
		err := rows.Scan(
			&ev.OrderID,
			&placed,
			&confirmed,
			&ready,
			&picked,
			&done,
			&estimate,
			&ev.ActualDeliveryTimeMins,
		)
		if err != nil {
			return nil, err
		}
		ev.OrderPlacedTime = timeOrZero(placed)
		ev.RestaurantConfirmedTime = timeOrZero(confirmed)
		ev.FoodReadyTime = timeOrZero(ready)
		ev.RiderPickedUpTime = timeOrZero(picked)
		ev.DeliveredTime = timeOrZero(done)
		ev.EstimatedDeliveryTime = timeOrZero(estimate)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *DeliveryEventRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "delivery_events")
}

func (r *DeliveryEventRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "delivery_events")
}

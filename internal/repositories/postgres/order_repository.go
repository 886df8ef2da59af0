package postgres

import (
	"context"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `
        INSERT INTO orders (
            order_id, customer_id, restaurant_id, order_datetime,
            gross_amount, discount_amount, order_status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, order := range orders {
		_, err = tx.Exec(ctx, stmt,
			order.ID,
			order.CustomerID,
			order.RestaurantID,
			nullableTime(order.OrderDatetime),
			order.GrossAmount,
			order.DiscountAmount,
			order.Status,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT order_id, customer_id, restaurant_id, order_datetime,
               gross_amount, discount_amount, order_status
        FROM orders
        ORDER BY order_datetime, order_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			order                          models.Order
			customerID, restaurantID, stat *string
			placed                         *time.Time
		)
		err := rows.Scan(
			&order.ID,
			&customerID,
			&restaurantID,
			&placed,
			&order.GrossAmount,
			&order.DiscountAmount,
			&stat,
		)
		if err != nil {
			return nil, err
		}
		order.CustomerID = stringOrEmpty(customerID)
		order.RestaurantID = stringOrEmpty(restaurantID)
		order.OrderDatetime = timeOrZero(placed)
		order.Status = stringOrEmpty(stat)
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "orders")
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "orders")
}

package postgres

import (
	"context"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderItemRepository struct {
	pool *pgxpool.Pool
}

func NewOrderItemRepository(pool *pgxpool.Pool) *OrderItemRepository {
	return &OrderItemRepository{pool: pool}
}

func (r *OrderItemRepository) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `INSERT INTO order_items (order_id, item_name, quantity, unit_price) VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		if _, err = tx.Exec(ctx, stmt, item.OrderID, item.ItemName, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderItemRepository) GetAll(ctx context.Context) ([]models.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_id, item_name, quantity, unit_price FROM order_items ORDER BY order_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var (
			item models.OrderItem
			name *string
		)
		if err := rows.Scan(&item.OrderID, &name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		item.ItemName = stringOrEmpty(name)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderItemRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "order_items")
}

func (r *OrderItemRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "order_items")
}

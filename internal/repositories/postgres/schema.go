package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/bitesdash/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id  TEXT PRIMARY KEY,
    city         TEXT,
    signup_date  TIMESTAMP
);

CREATE TABLE IF NOT EXISTS restaurants (
    restaurant_id    TEXT PRIMARY KEY,
    restaurant_name  TEXT,
    city             TEXT,
    zone             TEXT,
    cuisine_type     TEXT,
    restaurant_tier  TEXT
);

CREATE TABLE IF NOT EXISTS orders (
    order_id         TEXT PRIMARY KEY,
    customer_id      TEXT,
    restaurant_id    TEXT,
    order_datetime   TIMESTAMP,
    gross_amount     DOUBLE PRECISION NOT NULL DEFAULT 0,
    discount_amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
    order_status     TEXT
);

CREATE TABLE IF NOT EXISTS order_items (
    order_id    TEXT NOT NULL,
    item_name   TEXT,
    quantity    INTEGER NOT NULL DEFAULT 0,
    unit_price  DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS delivery_events (
    order_id                   TEXT PRIMARY KEY,
    order_placed_time          TIMESTAMP,
    restaurant_confirmed_time  TIMESTAMP,
    food_ready_time            TIMESTAMP,
    rider_picked_up_time       TIMESTAMP,
    delivered_time             TIMESTAMP,
    estimated_delivery_time    TIMESTAMP,
    actual_delivery_time_mins  DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS riders (
    rider_id      TEXT PRIMARY KEY,
    rider_name    TEXT,
    city          TEXT,
    vehicle_type  TEXT
);

CREATE INDEX IF NOT EXISTS idx_orders_order_datetime ON orders(order_datetime);
CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Connect opens a pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the six dataset tables when they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func NewRepositories(pool *pgxpool.Pool) *repositories.Repositories {
	return &repositories.Repositories{
		Customers:      NewCustomerRepository(pool),
		Restaurants:    NewRestaurantRepository(pool),
		Orders:         NewOrderRepository(pool),
		OrderItems:     NewOrderItemRepository(pool),
		DeliveryEvents: NewDeliveryEventRepository(pool),
		Riders:         NewRiderRepository(pool),
	}
}

func count(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	var n int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func truncate(ctx context.Context, pool *pgxpool.Pool, table string) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE "+table)
	return err
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

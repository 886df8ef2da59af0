package postgres

import (
	"context"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) BulkCreate(ctx context.Context, customers []models.Customer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	stmt := `INSERT INTO customers (customer_id, city, signup_date) VALUES ($1, $2, $3)`
	for _, c := range customers {
		if _, err = tx.Exec(ctx, stmt, c.ID, c.City, nullableTime(c.SignupDate)); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT customer_id, city, signup_date FROM customers ORDER BY customer_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var (
			c      models.Customer
			city   *string
			signup *time.Time
		)
		if err := rows.Scan(&c.ID, &city, &signup); err != nil {
			return nil, err
		}
		c.City = stringOrEmpty(city)
		c.SignupDate = timeOrZero(signup)
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "customers")
}

func (r *CustomerRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.pool, "customers")
}

package repositories

import (
	"context"

	"github.com/chrisdamba/bitesdash/internal/models"
)

type CustomerRepository interface {
	BulkCreate(ctx context.Context, customers []models.Customer) error
	GetAll(ctx context.Context) ([]models.Customer, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type RestaurantRepository interface {
	BulkCreate(ctx context.Context, restaurants []models.Restaurant) error
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	GetAll(ctx context.Context) ([]models.OrderItem, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DeliveryEventRepository interface {
	BulkCreate(ctx context.Context, events []models.DeliveryEvent) error
	GetAll(ctx context.Context) ([]models.DeliveryEvent, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type RiderRepository interface {
	BulkCreate(ctx context.Context, riders []models.Rider) error
	GetAll(ctx context.Context) ([]models.Rider, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// Repositories bundles one repository per input table.
type Repositories struct {
	Customers      CustomerRepository
	Restaurants    RestaurantRepository
	Orders         OrderRepository
	OrderItems     OrderItemRepository
	DeliveryEvents DeliveryEventRepository
	Riders         RiderRepository
}

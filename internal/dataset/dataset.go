package dataset

import (
	"context"
	"errors"
	"sync"

	"github.com/chrisdamba/bitesdash/internal/models"
)

const (
	CustomersFile      = "customers.csv"
	RestaurantsFile    = "restaurants.csv"
	OrdersFile         = "orders.csv"
	OrderItemsFile     = "order_items.csv"
	DeliveryEventsFile = "delivery_events.csv"
	RidersFile         = "riders.csv"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrUnknownSource = errors.New("unknown dataset source")
)

// Tables holds the six raw input tables.
type Tables struct {
	Customers      []models.Customer
	Restaurants    []models.Restaurant
	Orders         []models.Order
	OrderItems     []models.OrderItem
	DeliveryEvents []models.DeliveryEvent
	Riders         []models.Rider
}

// Source loads the six tables from wherever they live.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}

// Cached memoizes the first Load of the wrapped source for the lifetime of
// the process. Input files are static for a run, so the result (including a
// failure) is never invalidated. Safe for concurrent use.
type Cached struct {
	src    Source
	once   sync.Once
	tables *Tables
	err    error
}

func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

func (c *Cached) Load(ctx context.Context) (*Tables, error) {
	c.once.Do(func() {
		c.tables, c.err = c.src.Load(ctx)
	})
	return c.tables, c.err
}

type staticSource struct {
	tables *Tables
}

// Static returns a Source that always yields t. Used to inject fixture tables.
func Static(t *Tables) Source {
	return staticSource{tables: t}
}

func (s staticSource) Load(context.Context) (*Tables, error) {
	return s.tables, nil
}

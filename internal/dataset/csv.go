package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// opener returns a reader for one of the six input files.
type opener func(ctx context.Context, name string) (io.ReadCloser, error)

// csvTable is a header-indexed view over the rows of one CSV file.
type csvTable struct {
	name   string
	index  map[string]int
	reader *csv.Reader
	line   int
}

func newCSVTable(r io.Reader, name string, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read header: %w", name, err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%s: %w %q", name, ErrMissingColumn, col)
		}
	}

	return &csvTable{name: name, index: index, reader: reader, line: 1}, nil
}

// next returns the following record, or io.EOF when the file is exhausted.
func (t *csvTable) next() ([]string, error) {
	row, err := t.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	t.line++
	if err != nil {
		return nil, fmt.Errorf("%s line %d: %w", t.name, t.line, err)
	}
	return row, nil
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) rowErr(col string, err error) error {
	return fmt.Errorf("%s line %d column %s: %w", t.name, t.line, col, err)
}

func (t *csvTable) timestamp(row []string, col string) (time.Time, error) {
	v := t.get(row, col)
	if v == "" || strings.EqualFold(v, "nat") {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, t.rowErr(col, fmt.Errorf("unrecognised timestamp %q", v))
}

// float parses a numeric column; a blank cell reads as 0.
func (t *csvTable) float(row []string, col string) (float64, error) {
	v := t.get(row, col)
	if v == "" || strings.EqualFold(v, "nan") {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, t.rowErr(col, err)
	}
	return f, nil
}

// optionalFloat parses a numeric column; a blank cell reads as nil.
func (t *csvTable) optionalFloat(row []string, col string) (*float64, error) {
	v := t.get(row, col)
	if v == "" || strings.EqualFold(v, "nan") {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, t.rowErr(col, err)
	}
	return &f, nil
}

// id normalises key columns that pandas may have written as floats ("12.0").
func (t *csvTable) id(row []string, col string) string {
	v := t.get(row, col)
	if strings.HasSuffix(v, ".0") {
		if _, err := strconv.ParseInt(strings.TrimSuffix(v, ".0"), 10, 64); err == nil {
			return strings.TrimSuffix(v, ".0")
		}
	}
	return v
}

func ParseCustomers(r io.Reader) ([]models.Customer, error) {
	t, err := newCSVTable(r, CustomersFile, "customer_id", "city", "signup_date")
	if err != nil {
		return nil, err
	}
	var out []models.Customer
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		signup, err := t.timestamp(row, "signup_date")
		if err != nil {
			return nil, err
		}
		out = append(out, models.Customer{
			ID:         t.id(row, "customer_id"),
			City:       t.get(row, "city"),
			SignupDate: signup,
		})
	}
}

func ParseRestaurants(r io.Reader) ([]models.Restaurant, error) {
	t, err := newCSVTable(r, RestaurantsFile, "restaurant_id", "city", "zone", "cuisine_type", "restaurant_tier")
	if err != nil {
		return nil, err
	}
	var out []models.Restaurant
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, models.Restaurant{
			ID:          t.id(row, "restaurant_id"),
			Name:        t.get(row, "restaurant_name"),
			City:        t.get(row, "city"),
			Zone:        t.get(row, "zone"),
			CuisineType: t.get(row, "cuisine_type"),
			Tier:        t.get(row, "restaurant_tier"),
		})
	}
}

func ParseOrders(r io.Reader) ([]models.Order, error) {
	t, err := newCSVTable(r, OrdersFile,
		"order_id", "customer_id", "restaurant_id", "order_datetime",
		"gross_amount", "discount_amount", "order_status")
	if err != nil {
		return nil, err
	}
	var out []models.Order
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		placed, err := t.timestamp(row, "order_datetime")
		if err != nil {
			return nil, err
		}
		gross, err := t.float(row, "gross_amount")
		if err != nil {
			return nil, err
		}
		discount, err := t.float(row, "discount_amount")
		if err != nil {
			return nil, err
		}
		out = append(out, models.Order{
			ID:             t.id(row, "order_id"),
			CustomerID:     t.id(row, "customer_id"),
			RestaurantID:   t.id(row, "restaurant_id"),
			OrderDatetime:  placed,
			GrossAmount:    gross,
			DiscountAmount: discount,
			Status:         t.get(row, "order_status"),
		})
	}
}

func ParseOrderItems(r io.Reader) ([]models.OrderItem, error) {
	t, err := newCSVTable(r, OrderItemsFile, "order_id")
	if err != nil {
		return nil, err
	}
	var out []models.OrderItem
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		qty, err := t.float(row, "quantity")
		if err != nil {
			return nil, err
		}
		price, err := t.float(row, "unit_price")
		if err != nil {
			return nil, err
		}
		out = append(out, models.OrderItem{
			OrderID:   t.id(row, "order_id"),
			ItemName:  t.get(row, "item_name"),
			Quantity:  int(qty),
			UnitPrice: price,
		})
	}
}

func ParseDeliveryEvents(r io.Reader) ([]models.DeliveryEvent, error) {
	t, err := newCSVTable(r, DeliveryEventsFile,
		"order_id", "order_placed_time", "restaurant_confirmed_time", "food_ready_time",
		"rider_picked_up_time", "delivered_time", "estimated_delivery_time",
		"actual_delivery_time_mins")
	if err != nil {
		return nil, err
	}
	var out []models.DeliveryEvent
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		ev := models.DeliveryEvent{OrderID: t.id(row, "order_id")}
		stamps := []struct {
			col string
			dst *time.Time
		}{
			{"order_placed_time", &ev.OrderPlacedTime},
			{"restaurant_confirmed_time", &ev.RestaurantConfirmedTime},
			{"food_ready_time", &ev.FoodReadyTime},
			{"rider_picked_up_time", &ev.RiderPickedUpTime},
			{"delivered_time", &ev.DeliveredTime},
			{"estimated_delivery_time", &ev.EstimatedDeliveryTime},
		}
		for _, s := range stamps {
			if *s.dst, err = t.timestamp(row, s.col); err != nil {
				return nil, err
			}
		}
		if ev.ActualDeliveryTimeMins, err = t.optionalFloat(row, "actual_delivery_time_mins"); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
}

func ParseRiders(r io.Reader) ([]models.Rider, error) {
	t, err := newCSVTable(r, RidersFile, "rider_id")
	if err != nil {
		return nil, err
	}
	var out []models.Rider
	for {
		row, err := t.next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, models.Rider{
			ID:          t.id(row, "rider_id"),
			Name:        t.get(row, "rider_name"),
			City:        t.get(row, "city"),
			VehicleType: t.get(row, "vehicle_type"),
		})
	}
}

// loadTables reads all six files through open. Any missing or malformed file
// fails the whole load.
func loadTables(ctx context.Context, open opener) (*Tables, error) {
	tables := &Tables{}
	steps := []struct {
		name  string
		parse func(io.Reader) error
	}{
		{CustomersFile, func(r io.Reader) (err error) { tables.Customers, err = ParseCustomers(r); return }},
		{RestaurantsFile, func(r io.Reader) (err error) { tables.Restaurants, err = ParseRestaurants(r); return }},
		{OrdersFile, func(r io.Reader) (err error) { tables.Orders, err = ParseOrders(r); return }},
		{OrderItemsFile, func(r io.Reader) (err error) { tables.OrderItems, err = ParseOrderItems(r); return }},
		{DeliveryEventsFile, func(r io.Reader) (err error) { tables.DeliveryEvents, err = ParseDeliveryEvents(r); return }},
		{RidersFile, func(r io.Reader) (err error) { tables.Riders, err = ParseRiders(r); return }},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rc, err := open(ctx, step.name)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", step.name, err)
		}
		err = step.parse(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return tables, nil
}

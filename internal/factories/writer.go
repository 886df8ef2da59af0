package factories

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/repositories"
)

const timestampLayout = "2006-01-02 15:04:05"

// WriteCSV writes the tables as the six dashboard input files under dir.
// Null timestamps and minutes are written as blank cells.
func WriteCSV(dir string, t *dataset.Tables) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{dataset.CustomersFile, []string{"customer_id", "city", "signup_date"}, customerRows(t)},
		{dataset.RestaurantsFile, []string{"restaurant_id", "restaurant_name", "city", "zone", "cuisine_type", "restaurant_tier"}, restaurantRows(t)},
		{dataset.OrdersFile, []string{"order_id", "customer_id", "restaurant_id", "order_datetime", "gross_amount", "discount_amount", "order_status"}, orderRows(t)},
		{dataset.OrderItemsFile, []string{"order_id", "item_name", "quantity", "unit_price"}, orderItemRows(t)},
		{dataset.DeliveryEventsFile, []string{
			"order_id", "order_placed_time", "restaurant_confirmed_time", "food_ready_time",
			"rider_picked_up_time", "delivered_time", "estimated_delivery_time", "actual_delivery_time_mins",
		}, deliveryEventRows(t)},
		{dataset.RidersFile, []string{"rider_id", "rider_name", "city", "vehicle_type"}, riderRows(t)},
	}

	for _, f := range files {
		if err := writeFile(filepath.Join(dir, f.name), f.header, f.rows); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

func customerRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.Customers))
	for _, c := range t.Customers {
		rows = append(rows, []string{c.ID, c.City, formatDate(c.SignupDate)})
	}
	return rows
}

func restaurantRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.Restaurants))
	for _, r := range t.Restaurants {
		rows = append(rows, []string{r.ID, r.Name, r.City, r.Zone, r.CuisineType, r.Tier})
	}
	return rows
}

func orderRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.Orders))
	for _, o := range t.Orders {
		rows = append(rows, []string{
			o.ID, o.CustomerID, o.RestaurantID, formatTime(o.OrderDatetime),
			formatAmount(o.GrossAmount), formatAmount(o.DiscountAmount), o.Status,
		})
	}
	return rows
}

func orderItemRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.OrderItems))
	for _, it := range t.OrderItems {
		rows = append(rows, []string{it.OrderID, it.ItemName, strconv.Itoa(it.Quantity), formatAmount(it.UnitPrice)})
	}
	return rows
}

func deliveryEventRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.DeliveryEvents))
	for _, ev := range t.DeliveryEvents {
		mins := ""
		if ev.ActualDeliveryTimeMins != nil {
			mins = strconv.FormatFloat(*ev.ActualDeliveryTimeMins, 'f', 1, 64)
		}
		rows = append(rows, []string{
			ev.OrderID,
			formatTime(ev.OrderPlacedTime),
			formatTime(ev.RestaurantConfirmedTime),
			formatTime(ev.FoodReadyTime),
			formatTime(ev.RiderPickedUpTime),
			formatTime(ev.DeliveredTime),
			formatTime(ev.EstimatedDeliveryTime),
			mins,
		})
	}
	return rows
}

func riderRows(t *dataset.Tables) [][]string {
	rows := make([][]string, 0, len(t.Riders))
	for _, r := range t.Riders {
		rows = append(rows, []string{r.ID, r.Name, r.City, r.VehicleType})
	}
	return rows
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(timestampLayout)
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Seed replaces the contents of every table behind repos with t.
func Seed(ctx context.Context, repos *repositories.Repositories, t *dataset.Tables) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"delivery_events", repos.DeliveryEvents.DeleteAll},
		{"order_items", repos.OrderItems.DeleteAll},
		{"orders", repos.Orders.DeleteAll},
		{"riders", repos.Riders.DeleteAll},
		{"restaurants", repos.Restaurants.DeleteAll},
		{"customers", repos.Customers.DeleteAll},
	}
	for _, c := range steps {
		if err := c.fn(ctx); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c.name, err)
		}
	}

	if err := repos.Customers.BulkCreate(ctx, t.Customers); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	if err := repos.Restaurants.BulkCreate(ctx, t.Restaurants); err != nil {
		return fmt.Errorf("failed to seed restaurants: %w", err)
	}
	if err := repos.Riders.BulkCreate(ctx, t.Riders); err != nil {
		return fmt.Errorf("failed to seed riders: %w", err)
	}
	if err := repos.Orders.BulkCreate(ctx, t.Orders); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}
	if err := repos.OrderItems.BulkCreate(ctx, t.OrderItems); err != nil {
		return fmt.Errorf("failed to seed order items: %w", err)
	}
	if err := repos.DeliveryEvents.BulkCreate(ctx, t.DeliveryEvents); err != nil {
		return fmt.Errorf("failed to seed delivery events: %w", err)
	}
	return nil
}

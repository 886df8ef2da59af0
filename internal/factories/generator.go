package factories

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

// Generator produces a synthetic six-table dataset shaped like the BitesUAE
// exports. Everything except order ids is reproducible from the seed.
type Generator struct {
	cfg  models.GeneratorConfig
	fake faker.Faker
	rng  *rand.Rand
}

func NewGenerator(cfg models.GeneratorConfig) (*Generator, error) {
	if cfg.Customers <= 0 || cfg.Restaurants <= 0 || cfg.Riders <= 0 || cfg.Orders <= 0 {
		return nil, errors.New("generator counts must be positive")
	}
	if cfg.StartDate.IsZero() || cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("invalid generator date range %s..%s",
			cfg.StartDate.Format("2006-01-02"), cfg.EndDate.Format("2006-01-02"))
	}
	if cfg.CancelRate < 0 || cfg.PlacedRate < 0 || cfg.CancelRate+cfg.PlacedRate > 1 {
		return nil, errors.New("cancel_rate and placed_rate must be non-negative and sum to at most 1")
	}
	if len(cfg.Cities) == 0 {
		cfg.Cities = []string{"Dubai"}
	}
	return &Generator{
		cfg:  cfg,
		fake: faker.NewWithSeed(rand.NewSource(cfg.Seed)),
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Generate builds all six tables. Every order gets exactly one delivery event
// and one to four items.
func (g *Generator) Generate() *dataset.Tables {
	t := &dataset.Tables{
		Customers:   g.customers(),
		Restaurants: g.restaurants(),
		Riders:      g.riders(),
	}

	byCity := make(map[string][]models.Restaurant)
	for _, r := range t.Restaurants {
		byCity[r.City] = append(byCity[r.City], r)
	}

	t.Orders = make([]models.Order, 0, g.cfg.Orders)
	t.DeliveryEvents = make([]models.DeliveryEvent, 0, g.cfg.Orders)
	for i := 0; i < g.cfg.Orders; i++ {
		customer := g.pickCustomer(t.Customers)
		candidates := byCity[customer.City]
		if len(candidates) == 0 {
			candidates = t.Restaurants
		}
		restaurant := candidates[g.rng.Intn(len(candidates))]

		order := models.Order{
			ID:            cuid.New(),
			CustomerID:    customer.ID,
			RestaurantID:  restaurant.ID,
			OrderDatetime: g.orderTime(),
			Status:        g.status(),
		}

		items := g.items(order.ID, restaurant)
		for _, it := range items {
			order.GrossAmount += float64(it.Quantity) * it.UnitPrice
		}
		order.GrossAmount = round2(order.GrossAmount)
		if g.rng.Float64() < 0.3 {
			pct := float64(g.fake.IntBetween(10, 20)) / 100
			order.DiscountAmount = round2(order.GrossAmount * pct)
		}

		t.Orders = append(t.Orders, order)
		t.OrderItems = append(t.OrderItems, items...)
		t.DeliveryEvents = append(t.DeliveryEvents, g.deliveryEvent(order))
	}
	return t
}

func (g *Generator) customers() []models.Customer {
	out := make([]models.Customer, g.cfg.Customers)
	from := g.cfg.StartDate.AddDate(-2, 0, 0)
	for i := range out {
		signup := g.fake.Time().TimeBetween(from, g.cfg.StartDate)
		out[i] = models.Customer{
			ID:         fmt.Sprintf("C%05d", i+1),
			City:       g.city(),
			SignupDate: time.Date(signup.Year(), signup.Month(), signup.Day(), 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func (g *Generator) restaurants() []models.Restaurant {
	out := make([]models.Restaurant, g.cfg.Restaurants)
	for i := range out {
		city := g.city()
		zones := zonesFor(city)
		out[i] = models.Restaurant{
			ID:          fmt.Sprintf("R%04d", i+1),
			Name:        g.fake.Company().Name(),
			City:        city,
			Zone:        zones[g.rng.Intn(len(zones))],
			CuisineType: cuisineNames[g.rng.Intn(len(cuisineNames))],
			Tier:        g.tier(),
		}
	}
	return out
}

func (g *Generator) riders() []models.Rider {
	out := make([]models.Rider, g.cfg.Riders)
	for i := range out {
		out[i] = models.Rider{
			ID:          fmt.Sprintf("D%04d", i+1),
			Name:        g.fake.Person().Name(),
			City:        g.city(),
			VehicleType: vehicleTypes[g.rng.Intn(len(vehicleTypes))],
		}
	}
	return out
}

func (g *Generator) city() string {
	return g.cfg.Cities[g.rng.Intn(len(g.cfg.Cities))]
}

func (g *Generator) tier() string {
	r := g.rng.Float64()
	acc := 0.0
	for i, w := range tierWeights {
		acc += w
		if r < acc {
			return tiers[i]
		}
	}
	return tiers[len(tiers)-1]
}

// pickCustomer skews towards the front of the list so a share of customers
// order repeatedly.
func (g *Generator) pickCustomer(customers []models.Customer) models.Customer {
	r := g.rng.Float64()
	return customers[int(r*r*float64(len(customers)))]
}

// orderTime picks a day in the configured range, weighted towards the
// weekend, and an hour clustered around lunch and dinner.
func (g *Generator) orderTime() time.Time {
	start := g.cfg.StartDate
	days := int(g.cfg.EndDate.Sub(start).Hours()/24) + 1
	day := start.AddDate(0, 0, g.rng.Intn(days))
	for g.rng.Float64()*maxDayWeight >= dayWeight(day) {
		day = start.AddDate(0, 0, g.rng.Intn(days))
	}

	var hour int
	switch r := g.rng.Float64(); {
	case r < 0.35:
		hour = g.fake.IntBetween(12, 14)
	case r < 0.80:
		hour = g.fake.IntBetween(19, 22)
	default:
		hour = g.fake.IntBetween(8, 23)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour,
		g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)
}

func (g *Generator) status() string {
	r := g.rng.Float64()
	switch {
	case r < g.cfg.CancelRate:
		return models.OrderStatusCancelled
	case r < g.cfg.CancelRate+g.cfg.PlacedRate:
		return models.OrderStatusPlaced
	default:
		return models.OrderStatusDelivered
	}
}

func (g *Generator) items(orderID string, restaurant models.Restaurant) []models.OrderItem {
	menu := menus[restaurant.CuisineType]
	mul := tierPriceMul[restaurant.Tier]
	n := g.fake.IntBetween(1, 4)
	out := make([]models.OrderItem, n)
	for i := range out {
		item := menu[g.rng.Intn(len(menu))]
		out[i] = models.OrderItem{
			OrderID:   orderID,
			ItemName:  item.name,
			Quantity:  g.fake.IntBetween(1, 3),
			UnitPrice: round2(item.price * mul),
		}
	}
	return out
}

func (g *Generator) deliveryEvent(order models.Order) models.DeliveryEvent {
	placed := order.OrderDatetime
	ev := models.DeliveryEvent{
		OrderID:               order.ID,
		OrderPlacedTime:       placed,
		EstimatedDeliveryTime: placed.Add(g.minutes(35, 50)),
	}

	switch order.Status {
	case models.OrderStatusPlaced:
		return ev
	case models.OrderStatusCancelled:
		if g.rng.Float64() < 0.5 {
			ev.RestaurantConfirmedTime = placed.Add(g.minutes(1, 5))
		}
		return ev
	}

	ev.RestaurantConfirmedTime = placed.Add(g.minutes(1, 5))
	ev.FoodReadyTime = ev.RestaurantConfirmedTime.Add(g.minutes(10, 25))
	ev.RiderPickedUpTime = ev.FoodReadyTime.Add(g.minutes(3, 10))

	if g.rng.Float64() < lateProbability(g.cfg.LateRate, placed) {
		ev.DeliveredTime = ev.EstimatedDeliveryTime.Add(g.minutes(1, 25))
	} else {
		ev.DeliveredTime = ev.EstimatedDeliveryTime.Add(-g.minutes(0, 10))
	}
	if earliest := ev.RiderPickedUpTime.Add(5 * time.Minute); ev.DeliveredTime.Before(earliest) {
		ev.DeliveredTime = earliest
	}

	mins := math.Round(ev.DeliveredTime.Sub(placed).Minutes()*10) / 10
	ev.ActualDeliveryTimeMins = &mins
	return ev
}

func (g *Generator) minutes(lo, hi int) time.Duration {
	return time.Duration(g.fake.IntBetween(lo, hi)) * time.Minute
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package output

import (
	"time"

	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/metrics"
	"github.com/chrisdamba/bitesdash/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// FactRecord is the flat export row of one order fact. Null timestamps are
// written as empty strings.
type FactRecord struct {
	OrderID                string   `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderDate              string   `json:"order_date" parquet:"name=order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderDatetime          string   `json:"order_datetime" parquet:"name=order_datetime, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID             string   `json:"customer_id" parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerCity           string   `json:"customer_city" parquet:"name=customer_city, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestaurantID           string   `json:"restaurant_id" parquet:"name=restaurant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	City                   string   `json:"city" parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	Zone                   string   `json:"zone" parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8"`
	CuisineType            string   `json:"cuisine_type" parquet:"name=cuisine_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	RestaurantTier         string   `json:"restaurant_tier" parquet:"name=restaurant_tier, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderStatus            string   `json:"order_status" parquet:"name=order_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	GrossAmount            float64  `json:"gross_amount" parquet:"name=gross_amount, type=DOUBLE"`
	DiscountAmount         float64  `json:"discount_amount" parquet:"name=discount_amount, type=DOUBLE"`
	DeliveredTime          string   `json:"delivered_time" parquet:"name=delivered_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	EstimatedDeliveryTime  string   `json:"estimated_delivery_time" parquet:"name=estimated_delivery_time, type=BYTE_ARRAY, convertedtype=UTF8"`
	ActualDeliveryTimeMins *float64 `json:"actual_delivery_time_mins" parquet:"name=actual_delivery_time_mins, type=DOUBLE, repetitiontype=OPTIONAL"`
	DelayStatus            string   `json:"delay_status" parquet:"name=delay_status, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// MetricRecord is one value of a view snapshot in long format: scalar KPIs
// leave Dimension empty, grouped values name the dimension and label.
type MetricRecord struct {
	View      string  `json:"view" parquet:"name=view, type=BYTE_ARRAY, convertedtype=UTF8"`
	Metric    string  `json:"metric" parquet:"name=metric, type=BYTE_ARRAY, convertedtype=UTF8"`
	Dimension string  `json:"dimension" parquet:"name=dimension, type=BYTE_ARRAY, convertedtype=UTF8"`
	Label     string  `json:"label" parquet:"name=label, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status    string  `json:"status" parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	Value     float64 `json:"value" parquet:"name=value, type=DOUBLE"`
	Count     int64   `json:"count" parquet:"name=count, type=INT64"`
	FromDate  string  `json:"from_date" parquet:"name=from_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	ToDate    string  `json:"to_date" parquet:"name=to_date, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func NewFactRecord(f models.OrderFact) FactRecord {
	r := FactRecord{
		OrderID:               f.ID,
		OrderDate:             formatDate(f.OrderDate()),
		OrderDatetime:         formatTimestamp(f.OrderDatetime),
		CustomerID:            f.CustomerID,
		CustomerCity:          f.CustomerCity(),
		RestaurantID:          f.RestaurantID,
		City:                  f.City(),
		Zone:                  f.Zone(),
		CuisineType:           f.Cuisine(),
		RestaurantTier:        f.Tier(),
		OrderStatus:           f.Status,
		GrossAmount:           f.GrossAmount,
		DiscountAmount:        f.DiscountAmount,
		DeliveredTime:         formatTimestamp(f.DeliveredTime()),
		EstimatedDeliveryTime: formatTimestamp(f.EstimatedDeliveryTime()),
	}
	if mins, ok := f.ActualDeliveryMins(); ok {
		r.ActualDeliveryTimeMins = &mins
	}
	if f.IsDelivered() && f.HasDeliveredTime() {
		r.DelayStatus = metrics.DelayStatus(f)
	}
	return r
}

func ExecutiveRecords(v *dashboard.ExecutiveView) []MetricRecord {
	s := snapshot{view: models.TopicExecutiveView, dates: v.Criteria.DateRange}
	s.scalar("gmv", v.GMV, v.DeliveredOrders)
	s.scalar("aov", v.AOV, v.DeliveredOrders)
	s.scalar("repeat_rate", v.RepeatRate, v.DeliveredOrders)
	s.scalar("discount_burn", v.DiscountBurn, v.DeliveredOrders)
	s.groups("gmv", "zone", v.GMVByZone)
	s.groups("gmv", "cuisine_type", v.GMVByCuisine)
	return s.records
}

func ManagerRecords(v *dashboard.ManagerView) []MetricRecord {
	s := snapshot{view: models.TopicManagerView, dates: v.Criteria.DateRange}
	s.scalar("on_time_rate", v.OnTimeRate, v.DeliveredWithActuals)
	s.scalar("avg_delivery_time", v.AvgDeliveryTime, v.DeliveredWithActuals)
	s.scalar("cancellation_rate", v.CancellationRate, v.FilteredOrders)
	s.scalar("projected_on_time", v.Projection.ProjectedOnTime, v.Projection.PrepReduction)
	s.scalar("projected_gmv_recovery", v.Projection.ProjectedGMVRecovery, v.Projection.CancellationReduction)
	for _, row := range v.DelayBreakdown {
		s.add(MetricRecord{
			Metric:    "orders",
			Dimension: "zone",
			Label:     row.Zone,
			Status:    row.Status,
			Value:     float64(row.Count),
			Count:     int64(row.Count),
		})
	}
	return s.records
}

type snapshot struct {
	view    string
	dates   models.DateRange
	records []MetricRecord
}

func (s *snapshot) add(r MetricRecord) {
	r.View = s.view
	r.FromDate = formatDate(s.dates.Start)
	r.ToDate = formatDate(s.dates.End)
	s.records = append(s.records, r)
}

func (s *snapshot) scalar(metric string, value float64, count int) {
	s.add(MetricRecord{Metric: metric, Value: value, Count: int64(count)})
}

func (s *snapshot) groups(metric, dimension string, groups []metrics.Group) {
	for _, g := range groups {
		s.add(MetricRecord{Metric: metric, Dimension: dimension, Label: g.Label, Value: g.Value, Count: int64(g.Count)})
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

package dashboard

import (
	"fmt"
	"math"

	"github.com/chrisdamba/bitesdash/internal/metrics"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/dustin/go-humanize"
)

// Tile is one formatted headline metric.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type ExecutiveView struct {
	Criteria        models.FilterCriteria `json:"criteria"`
	FilteredOrders  int                   `json:"filtered_orders"`
	DeliveredOrders int                   `json:"delivered_orders"`

	GMV          float64 `json:"gmv"`
	GMVRounded   int64   `json:"gmv_rounded"`
	AOV          float64 `json:"aov"`
	RepeatRate   float64 `json:"repeat_rate"`
	DiscountBurn float64 `json:"discount_burn"`

	GMVByZone    []metrics.Group `json:"gmv_by_zone"`
	GMVByCuisine []metrics.Group `json:"gmv_by_cuisine"`

	Tiles  []Tile        `json:"tiles"`
	Charts []ChartConfig `json:"charts"`
}

// WhatIf carries the slider inputs of the manager view. Values are clamped
// before use.
type WhatIf struct {
	PrepReduction         int `json:"prep_reduction"`
	CancellationReduction int `json:"cancellation_reduction"`
}

type Projection struct {
	WhatIf
	ProjectedOnTime      float64 `json:"projected_on_time"`
	ProjectedGMVRecovery float64 `json:"projected_gmv_recovery"`
	Lines                []Tile  `json:"lines"`
}

type ManagerView struct {
	Criteria             models.FilterCriteria `json:"criteria"`
	FilteredOrders       int                   `json:"filtered_orders"`
	DeliveredOrders      int                   `json:"delivered_orders"`
	DeliveredWithActuals int                   `json:"delivered_with_actuals"`

	OnTimeRate       float64 `json:"on_time_rate"`
	AvgDeliveryTime  float64 `json:"avg_delivery_time"`
	CancellationRate float64 `json:"cancellation_rate"`

	DelayBreakdown []metrics.DelayRow `json:"delay_breakdown"`
	Projection     Projection         `json:"projection"`

	Tiles []Tile      `json:"tiles"`
	Chart ChartConfig `json:"chart"`
}

// FormatAmount renders a money value rounded to whole units with thousands
// separators, e.g. 12,345.
func FormatAmount(v float64) string {
	return humanize.Comma(RoundAmount(v))
}

// RoundAmount rounds half to even, the way the dashboard tiles display it.
func RoundAmount(v float64) int64 {
	return int64(math.RoundToEven(v))
}

// FormatPercent renders a value with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Package dashboard composes the executive and manager views from the
// dataset: load, join, filter, then metrics and projections.
package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/chrisdamba/bitesdash/internal/dataset"
	"github.com/chrisdamba/bitesdash/internal/filter"
	"github.com/chrisdamba/bitesdash/internal/join"
	"github.com/chrisdamba/bitesdash/internal/metrics"
	"github.com/chrisdamba/bitesdash/internal/models"
	"github.com/chrisdamba/bitesdash/internal/projection"
)

// maxLoggedWarnings bounds the join warnings written to the log.
const maxLoggedWarnings = 10

type Service struct {
	source   dataset.Source
	warnOnce sync.Once
}

// NewService builds a Service over src. Pass a dataset.Cached to load the
// tables once per process.
func NewService(src dataset.Source) *Service {
	return &Service{source: src}
}

// Facts returns the joined fact table.
func (s *Service) Facts(ctx context.Context) ([]models.OrderFact, error) {
	tables, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	facts, warnings := join.Assemble(tables)
	s.warnOnce.Do(func() { logWarnings(warnings) })
	return facts, nil
}

// Filtered returns the fact rows selected by c, after defaulting an unset
// date range to the span of the data.
func (s *Service) Filtered(ctx context.Context, c models.FilterCriteria) ([]models.OrderFact, models.FilterCriteria, error) {
	facts, err := s.Facts(ctx)
	if err != nil {
		return nil, c, err
	}
	if c.DateRange.IsZero() {
		c.DateRange = filter.OptionsOf(facts).Dates
	}
	return filter.Apply(facts, c), c, nil
}

func (s *Service) Options(ctx context.Context) (filter.Options, error) {
	facts, err := s.Facts(ctx)
	if err != nil {
		return filter.Options{}, err
	}
	return filter.OptionsOf(facts), nil
}

func (s *Service) Executive(ctx context.Context, c models.FilterCriteria) (*ExecutiveView, error) {
	filtered, c, err := s.Filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return BuildExecutive(filtered, c), nil
}

func (s *Service) Manager(ctx context.Context, c models.FilterCriteria, w WhatIf) (*ManagerView, error) {
	filtered, c, err := s.Filtered(ctx, c)
	if err != nil {
		return nil, err
	}
	return BuildManager(filtered, c, w), nil
}

// BuildExecutive computes the executive view over an already filtered set.
func BuildExecutive(filtered []models.OrderFact, c models.FilterCriteria) *ExecutiveView {
	delivered := filter.Delivered(filtered)

	v := &ExecutiveView{
		Criteria:        c,
		FilteredOrders:  len(filtered),
		DeliveredOrders: len(delivered),
		GMV:             metrics.GMV(delivered),
		AOV:             metrics.AOV(delivered),
		RepeatRate:      metrics.RepeatRate(delivered),
		DiscountBurn:    metrics.DiscountBurn(delivered),
		GMVByZone:       metrics.GMVByZone(delivered),
		GMVByCuisine:    metrics.GMVByCuisine(delivered),
	}
	v.GMVRounded = RoundAmount(v.GMV)

	v.Tiles = []Tile{
		{Label: "GMV (" + models.Currency + ")", Value: FormatAmount(v.GMV)},
		{Label: "AOV (" + models.Currency + ")", Value: FormatAmount(v.AOV)},
		{Label: "Repeat Rate (%)", Value: FormatPercent(v.RepeatRate)},
		{Label: "Discount Burn (%)", Value: FormatPercent(v.DiscountBurn)},
	}
	v.Charts = []ChartConfig{zoneChart(v.GMVByZone), cuisineChart(v.GMVByCuisine)}
	return v
}

// BuildManager computes the manager view over an already filtered set.
func BuildManager(filtered []models.OrderFact, c models.FilterCriteria, w WhatIf) *ManagerView {
	delivered := filter.Delivered(filtered)
	withActuals := filter.DeliveredWithActuals(filtered)

	v := &ManagerView{
		Criteria:             c,
		FilteredOrders:       len(filtered),
		DeliveredOrders:      len(delivered),
		DeliveredWithActuals: len(withActuals),
		OnTimeRate:           metrics.OnTimeRate(withActuals),
		AvgDeliveryTime:      metrics.AvgDeliveryTime(withActuals),
		CancellationRate:     metrics.CancellationRate(filtered),
		DelayBreakdown:       metrics.DelayBreakdown(withActuals),
	}

	w = w.Clamped()
	p := Projection{
		WhatIf:               w,
		ProjectedOnTime:      projection.ProjectedOnTime(v.OnTimeRate, w.PrepReduction),
		ProjectedGMVRecovery: projection.ProjectedGMVRecovery(metrics.GMV(delivered), w.CancellationReduction),
	}
	p.Lines = []Tile{
		{Label: "Projected On-Time Rate", Value: FormatPercent(p.ProjectedOnTime) + "%"},
		{Label: "Projected GMV Recovery", Value: models.Currency + " " + FormatAmount(p.ProjectedGMVRecovery)},
	}
	v.Projection = p

	v.Tiles = []Tile{
		{Label: "On-Time Rate (%)", Value: FormatPercent(v.OnTimeRate)},
		{Label: "Avg Delivery Time (mins)", Value: FormatPercent(v.AvgDeliveryTime)},
		{Label: "Cancellation Rate (%)", Value: FormatPercent(v.CancellationRate)},
	}
	v.Chart = delayChart(v.DelayBreakdown)
	return v
}

// DefaultWhatIf returns the slider defaults.
func DefaultWhatIf() WhatIf {
	return WhatIf{
		PrepReduction:         projection.DefaultPrepReduction,
		CancellationReduction: projection.DefaultCancellationReduction,
	}
}

func (w WhatIf) Clamped() WhatIf {
	return WhatIf{
		PrepReduction:         projection.ClampPrepReduction(w.PrepReduction),
		CancellationReduction: projection.ClampCancellationReduction(w.CancellationReduction),
	}
}

func logWarnings(warnings []join.Warning) {
	if len(warnings) == 0 {
		return
	}
	log.Printf("Join produced %d warnings", len(warnings))
	for i, w := range warnings {
		if i == maxLoggedWarnings {
			log.Printf("... %d more", len(warnings)-maxLoggedWarnings)
			break
		}
		log.Printf("Join warning: %s", w)
	}
}

// Package filter narrows the order fact table by date and categorical
// selections and derives the delivered subsets the metrics consume.
package filter

import (
	"sort"
	"time"

	"github.com/chrisdamba/bitesdash/internal/models"
)

// Apply returns the facts matching every predicate in c, in input order.
// The input slice is not modified.
func Apply(facts []models.OrderFact, c models.FilterCriteria) []models.OrderFact {
	out := make([]models.OrderFact, 0, len(facts))

	// a half-open or reversed range selects nothing
	if !c.DateRange.IsZero() && !c.DateRange.Valid() {
		return out
	}

	cities := toSet(c.Cities)
	zones := toSet(c.Zones)
	cuisines := toSet(c.Cuisines)
	tiers := toSet(c.Tiers)

	for _, f := range facts {
		if !c.DateRange.IsZero() && !c.DateRange.Contains(f.OrderDatetime) {
			continue
		}
		if !matches(cities, f.City()) ||
			!matches(zones, f.Zone()) ||
			!matches(cuisines, f.Cuisine()) ||
			!matches(tiers, f.Tier()) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Delivered keeps facts whose status is exactly "Delivered".
func Delivered(facts []models.OrderFact) []models.OrderFact {
	out := make([]models.OrderFact, 0, len(facts))
	for _, f := range facts {
		if f.IsDelivered() {
			out = append(out, f)
		}
	}
	return out
}

// DeliveredWithActuals keeps delivered facts that carry a delivered timestamp.
func DeliveredWithActuals(facts []models.OrderFact) []models.OrderFact {
	out := make([]models.OrderFact, 0, len(facts))
	for _, f := range facts {
		if f.IsDelivered() && f.HasDeliveredTime() {
			out = append(out, f)
		}
	}
	return out
}

// Options lists the selectable values of each filter dimension.
type Options struct {
	Cities   []string         `json:"cities"`
	Zones    []string         `json:"zones"`
	Cuisines []string         `json:"cuisines"`
	Tiers    []string         `json:"tiers"`
	Dates    models.DateRange `json:"dates"`
}

// OptionsOf collects the distinct non-null dimension values of facts, sorted,
// and the span of order dates.
func OptionsOf(facts []models.OrderFact) Options {
	cities := map[string]struct{}{}
	zones := map[string]struct{}{}
	cuisines := map[string]struct{}{}
	tiers := map[string]struct{}{}

	var minDate, maxDate time.Time
	for _, f := range facts {
		add(cities, f.City())
		add(zones, f.Zone())
		add(cuisines, f.Cuisine())
		add(tiers, f.Tier())

		d := f.OrderDate()
		if d.IsZero() {
			continue
		}
		if minDate.IsZero() || d.Before(minDate) {
			minDate = d
		}
		if maxDate.IsZero() || d.After(maxDate) {
			maxDate = d
		}
	}

	return Options{
		Cities:   sortedKeys(cities),
		Zones:    sortedKeys(zones),
		Cuisines: sortedKeys(cuisines),
		Tiers:    sortedKeys(tiers),
		Dates:    models.DateRange{Start: minDate, End: maxDate},
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// matches treats a nil set as pass-through. A null value never matches a
// non-empty selection.
func matches(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	if v == "" {
		return false
	}
	_, ok := set[v]
	return ok
}

func add(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

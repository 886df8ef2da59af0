package metrics

import (
	"sort"

	"github.com/chrisdamba/bitesdash/internal/models"
)

// Group is one labelled bucket of an aggregated measure.
type Group struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DelayRow counts the rows of one zone with one delay status.
type DelayRow struct {
	Zone   string `json:"zone"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// GMVByZone sums gross_amount per restaurant zone, ascending by value.
func GMVByZone(delivered []models.OrderFact) []Group {
	groups := sumBy(delivered, models.OrderFact.Zone)
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value < groups[j].Value
		}
		return groups[i].Label < groups[j].Label
	})
	return groups
}

// GMVByCuisine sums gross_amount per cuisine, ordered by cuisine name.
func GMVByCuisine(delivered []models.OrderFact) []Group {
	groups := sumBy(delivered, models.OrderFact.Cuisine)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups
}

// DelayBreakdown counts rows per (zone, status). A row is Late only when it
// was delivered strictly after its estimate; a missing estimate is On Time.
func DelayBreakdown(withActuals []models.OrderFact) []DelayRow {
	type key struct{ zone, status string }
	counts := make(map[key]int)
	for _, f := range withActuals {
		counts[key{labelOf(f.Zone()), DelayStatus(f)}]++
	}

	rows := make([]DelayRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, DelayRow{Zone: k.zone, Status: k.status, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Zone != rows[j].Zone {
			return rows[i].Zone < rows[j].Zone
		}
		return rows[i].Status < rows[j].Status
	})
	return rows
}

// DelayStatus classifies a single delivered row.
func DelayStatus(f models.OrderFact) string {
	est := f.EstimatedDeliveryTime()
	if !est.IsZero() && f.DeliveredTime().After(est) {
		return models.DelayStatusLate
	}
	return models.DelayStatusOnTime
}

func sumBy(facts []models.OrderFact, dim func(models.OrderFact) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, f := range facts {
		label := labelOf(dim(f))
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Value += f.GrossAmount
		groups[i].Count++
	}
	return groups
}

func labelOf(v string) string {
	if v == "" {
		return models.UnassignedLabel
	}
	return v
}

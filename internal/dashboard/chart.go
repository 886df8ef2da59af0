package dashboard

import (
	"sort"

	"github.com/chrisdamba/bitesdash/internal/metrics"
	"github.com/chrisdamba/bitesdash/internal/models"
)

const (
	ChartBar   = "bar"
	ChartDonut = "donut"
)

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

var statusColors = map[string]string{
	models.DelayStatusOnTime: "#10B981",
	models.DelayStatusLate:   "#EF4444",
}

// ChartConfig is a renderer-agnostic chart description.
type ChartConfig struct {
	ChartType   string        `json:"chartType"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Orientation string        `json:"orientation,omitempty"` // "h" for horizontal bars
	Stacked     bool          `json:"stacked,omitempty"`
	Hole        float64       `json:"hole,omitempty"`
	Series      []ChartSeries `json:"series"`
	Colors      []string      `json:"colors,omitempty"`
	ShowLegend  bool          `json:"showLegend"`
}

type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func zoneChart(groups []metrics.Group) ChartConfig {
	return ChartConfig{
		ChartType:   ChartBar,
		Title:       "GMV by Zone",
		XAxis:       "GMV (" + models.Currency + ")",
		YAxis:       "Zone",
		Orientation: "h",
		Series:      []ChartSeries{groupSeries("GMV", groups)},
		Colors:      defaultColors[:1],
	}
}

func cuisineChart(groups []metrics.Group) ChartConfig {
	return ChartConfig{
		ChartType:  ChartDonut,
		Title:      "GMV by Cuisine",
		Hole:       0.4,
		Series:     []ChartSeries{groupSeries("GMV", groups)},
		Colors:     assignColors(len(groups)),
		ShowLegend: true,
	}
}

// delayChart stacks one series per delay status over the zones.
func delayChart(rows []metrics.DelayRow) ChartConfig {
	var zones []string
	seenZone := map[string]bool{}
	counts := map[string]map[string]int{}
	for _, r := range rows {
		if !seenZone[r.Zone] {
			seenZone[r.Zone] = true
			zones = append(zones, r.Zone)
		}
		if counts[r.Status] == nil {
			counts[r.Status] = map[string]int{}
		}
		counts[r.Status][r.Zone] += r.Count
	}

	statuses := make([]string, 0, len(counts))
	for s := range counts {
		statuses = append(statuses, s)
	}
	// On Time first so the late share stacks on top
	sort.Slice(statuses, func(i, j int) bool { return statuses[i] > statuses[j] })

	series := make([]ChartSeries, 0, len(statuses))
	for _, s := range statuses {
		points := make([]ChartPoint, 0, len(zones))
		for _, z := range zones {
			points = append(points, ChartPoint{Label: z, Value: float64(counts[s][z])})
		}
		series = append(series, ChartSeries{Name: s, Data: points, Color: statusColors[s]})
	}

	return ChartConfig{
		ChartType:  ChartBar,
		Title:      "Delivery Performance by Zone",
		XAxis:      "Zone",
		YAxis:      "Orders",
		Stacked:    true,
		Series:     series,
		ShowLegend: true,
	}
}

func groupSeries(name string, groups []metrics.Group) ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{Label: g.Label, Value: metrics.RoundTo2(g.Value)})
	}
	return ChartSeries{Name: name, Data: points}
}

func assignColors(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

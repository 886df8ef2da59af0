// Package report renders dashboard views for the terminal.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chrisdamba/bitesdash/internal/dashboard"
	"github.com/chrisdamba/bitesdash/internal/filter"
	"github.com/chrisdamba/bitesdash/internal/metrics"
	"github.com/chrisdamba/bitesdash/internal/models"
)

const barWidth = 30

func Executive(v *dashboard.ExecutiveView) string {
	sections := []string{
		TitleStyle.Render("Executive Dashboard"),
		subtitle(v.Criteria, v.FilteredOrders, v.DeliveredOrders),
		tiles(v.Tiles),
		SectionStyle.Render("GMV by Zone"),
		groupTable(v.GMVByZone),
		SectionStyle.Render("GMV by Cuisine"),
		groupTable(v.GMVByCuisine),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func Manager(v *dashboard.ManagerView) string {
	sections := []string{
		TitleStyle.Render("Manager Dashboard"),
		subtitle(v.Criteria, v.FilteredOrders, v.DeliveredOrders),
		tiles(v.Tiles),
		SectionStyle.Render("Delivery Performance by Zone"),
		delayTable(v.DelayBreakdown),
		SectionStyle.Render("What-If Analysis"),
		SubtitleStyle.Render(fmt.Sprintf("Prep time reduced by %d mins, cancellations reduced by %d%%",
			v.Projection.PrepReduction, v.Projection.CancellationReduction)),
	}
	for _, line := range v.Projection.Lines {
		sections = append(sections, "  "+line.Label+": "+HighlightStyle.Render(line.Value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func Options(o filter.Options) string {
	rows := []struct {
		label  string
		values []string
	}{
		{"Cities", o.Cities},
		{"Zones", o.Zones},
		{"Cuisines", o.Cuisines},
		{"Tiers", o.Tiers},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Filter Options"))
	b.WriteString("\n")
	if o.Dates.IsZero() {
		b.WriteString("  Dates:    none\n")
	} else {
		fmt.Fprintf(&b, "  Dates:    %s to %s\n", o.Dates.Start.Format(dashboard.DateLayout), o.Dates.End.Format(dashboard.DateLayout))
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-9s %s\n", r.label+":", strings.Join(r.values, ", "))
	}
	return b.String()
}

func subtitle(c models.FilterCriteria, filtered, delivered int) string {
	span := "all dates"
	if !c.DateRange.IsZero() {
		span = c.DateRange.Start.Format(dashboard.DateLayout) + " to " + c.DateRange.End.Format(dashboard.DateLayout)
	}
	return SubtitleStyle.Render(fmt.Sprintf("%s · %d orders · %d delivered", span, filtered, delivered))
}

func tiles(ts []dashboard.Tile) string {
	rendered := make([]string, 0, len(ts))
	for _, t := range ts {
		rendered = append(rendered, TileStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left, TileLabelStyle.Render(t.Label), TileValueStyle.Render(t.Value)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func groupTable(groups []metrics.Group) string {
	if len(groups) == 0 {
		return SubtitleStyle.Render("no delivered orders")
	}

	labelWidth, peak := 0, 0.0
	for _, g := range groups {
		labelWidth = int(math.Max(float64(labelWidth), float64(lipgloss.Width(g.Label))))
		peak = math.Max(peak, g.Value)
	}

	var lines []string
	for _, g := range groups {
		lines = append(lines, fmt.Sprintf("  %-*s %s %s", labelWidth, g.Label,
			BarStyle.Render(bar(g.Value, peak)), dashboard.FormatAmount(g.Value)))
	}
	return strings.Join(lines, "\n")
}

func delayTable(rows []metrics.DelayRow) string {
	if len(rows) == 0 {
		return SubtitleStyle.Render("no delivered orders")
	}

	labelWidth, peak := 0, 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Zone); w > labelWidth {
			labelWidth = w
		}
		if r.Count > peak {
			peak = r.Count
		}
	}

	var lines []string
	for _, r := range rows {
		style := OnTimeStyle
		if r.Status == models.DelayStatusLate {
			style = LateStyle
		}
		lines = append(lines, fmt.Sprintf("  %-*s %-7s %s %d", labelWidth, r.Zone, r.Status,
			style.Render(bar(float64(r.Count), float64(peak))), r.Count))
	}
	return strings.Join(lines, "\n")
}

func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return strings.Repeat(" ", barWidth)
	}
	n := int(math.Round(v / peak * barWidth))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}

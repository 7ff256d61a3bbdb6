package chart

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

// TargetBar renders a current-value-vs-target bar pair for one KPI's latest
// record.
func TargetBar(rec kpi.Record, scheme Scheme, w io.Writer) error {
	ch := chart.BarChart{
		Title:  "Current Value vs Target",
		Width:  chartWidth / 2,
		Height: detailHeight,
		Background: chart.Style{
			FillColor: scheme.Background,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 20},
		},
		BarWidth: 80,
		Bars: []chart.Value{
			{
				Value: rec.CurrentValue,
				Label: "Current Value",
				Style: chart.Style{FillColor: scheme.Primary, StrokeColor: scheme.Primary},
			},
			{
				Value: rec.Target,
				Label: "Target",
				Style: chart.Style{FillColor: scheme.Success, StrokeColor: scheme.Success},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// Trend renders a KPI's current value over its achievement dates with a
// dashed target reference. Needs at least two observations.
func Trend(history []kpi.Record, scheme Scheme, w io.Writer) error {
	if len(history) < 2 {
		return ErrNoData
	}

	times := make([]time.Time, 0, len(history))
	values := make([]float64, 0, len(history))
	for _, rec := range history {
		x := rec.AchievementDate
		if x.IsZero() {
			x = rec.CreatedAt
		}
		times = append(times, x)
		values = append(values, rec.CurrentValue)
	}

	// A zero-width x range cannot be rendered.
	if times[len(times)-1].Equal(times[0]) {
		times[len(times)-1] = times[0].Add(24 * time.Hour)
	}

	target := history[len(history)-1].Target
	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Current Value",
			XValues: times,
			YValues: values,
			Style: chart.Style{
				StrokeColor: scheme.Primary,
				StrokeWidth: 2,
				DotColor:    scheme.Secondary,
				DotWidth:    4,
			},
		},
		chart.TimeSeries{
			Name:    "Target",
			XValues: []time.Time{times[0], times[len(times)-1]},
			YValues: []float64{target, target},
			Style: chart.Style{
				StrokeColor:     scheme.Success,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
	}

	ch := chart.Chart{
		Title:  "Progress Over Time",
		Width:  chartWidth,
		Height: detailHeight,
		Background: chart.Style{
			FillColor: scheme.Background,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 20},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// GenderPie renders the male/female breakdown of a record. Only meaningful
// when the count pair is present and non-zero.
func GenderPie(rec kpi.Record, scheme Scheme, w io.Writer) error {
	if rec.MaleCount == nil || rec.FemaleCount == nil {
		return ErrNoData
	}
	male, female := *rec.MaleCount, *rec.FemaleCount
	if male <= 0 && female <= 0 {
		return ErrNoData
	}

	ch := chart.PieChart{
		Title:  "Gender Distribution",
		Width:  detailHeight,
		Height: detailHeight,
		Values: []chart.Value{
			{
				Value: float64(male),
				Label: fmt.Sprintf("Male (%d)", male),
				Style: chart.Style{FillColor: scheme.Primary},
			},
			{
				Value: float64(female),
				Label: fmt.Sprintf("Female (%d)", female),
				Style: chart.Style{FillColor: scheme.Warning},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

// Gauge renders a donut-style progress indicator for one KPI summary. The
// progress slice is capped at 100%.
func Gauge(summary kpi.Summary, scheme Scheme, w io.Writer) error {
	progress := summary.ProgressPct
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	values := []chart.Value{
		{
			Value: progress,
			Label: fmt.Sprintf("%.0f%%", summary.ProgressPct),
			Style: chart.Style{FillColor: StatusColor(summary.Status, scheme)},
		},
	}
	if remaining := 100 - progress; remaining > 0 {
		values = append(values, chart.Value{
			Value: remaining,
			Label: "Remaining",
			Style: chart.Style{FillColor: notStartedColor},
		})
	}

	ch := chart.DonutChart{
		Title:  fmt.Sprintf("Progress: %s", summary.Status),
		Width:  detailHeight,
		Height: detailHeight,
		Values: values,
	}
	return ch.Render(chart.PNG, w)
}

// StatusPie renders the distribution of KPI statuses across a project.
func StatusPie(summaries []kpi.Summary, scheme Scheme, project string, w io.Writer) error {
	if len(summaries) == 0 {
		return ErrNoData
	}

	counts := make(map[kpi.Status]int)
	for _, s := range summaries {
		counts[s.Status]++
	}

	var values []chart.Value
	for _, status := range []kpi.Status{
		kpi.StatusAchieved, kpi.StatusOnTrack, kpi.StatusAtRisk,
		kpi.StatusDelayed, kpi.StatusNotStarted,
	} {
		if counts[status] == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(counts[status]),
			Label: fmt.Sprintf("%s (%d)", status, counts[status]),
			Style: chart.Style{FillColor: StatusColor(status, scheme)},
		})
	}

	ch := chart.PieChart{
		Title:  fmt.Sprintf("KPI Status Distribution - %s", project),
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return ch.Render(chart.PNG, w)
}

// Package chart renders dashboard charts as PNG using go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

// ErrNoData indicates there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

// OverviewType selects the overview chart style.
type OverviewType string

const (
	OverviewBar     OverviewType = "bar"
	OverviewScatter OverviewType = "scatter"
)

const (
	chartWidth   = 1024
	chartHeight  = 500
	detailHeight = 300
)

// Overview renders progress percent per KPI, colored by status, for one
// project. The bar variant doubles as the histogram view.
func Overview(summaries []kpi.Summary, typ OverviewType, scheme Scheme, project string, w io.Writer) error {
	if len(summaries) == 0 {
		return ErrNoData
	}

	switch typ {
	case OverviewScatter:
		return overviewScatter(summaries, scheme, project, w)
	default:
		return overviewBar(summaries, scheme, project, w)
	}
}

func overviewBar(summaries []kpi.Summary, scheme Scheme, project string, w io.Writer) error {
	bars := make([]chart.Value, 0, len(summaries))
	for _, s := range summaries {
		bars = append(bars, chart.Value{
			Value: s.ProgressPct,
			Label: s.KPI,
			Style: chart.Style{
				FillColor:   StatusColor(s.Status, scheme),
				StrokeColor: StatusColor(s.Status, scheme),
			},
		})
	}

	ch := chart.BarChart{
		Title:  fmt.Sprintf("KPI Progress Overview - %s", project),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			FillColor: scheme.Background,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 20},
		},
		BarWidth: 60,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name: "Progress (%)",
		},
	}

	return ch.Render(chart.PNG, w)
}

func overviewScatter(summaries []kpi.Summary, scheme Scheme, project string, w io.Writer) error {
	// One dot-only series per status so each keeps its color in the legend.
	byStatus := make(map[kpi.Status][]int)
	for i, s := range summaries {
		byStatus[s.Status] = append(byStatus[s.Status], i)
	}

	var series []chart.Series
	for _, status := range []kpi.Status{
		kpi.StatusAchieved, kpi.StatusOnTrack, kpi.StatusAtRisk,
		kpi.StatusDelayed, kpi.StatusNotStarted,
	} {
		idxs := byStatus[status]
		if len(idxs) == 0 {
			continue
		}
		xs := make([]float64, 0, len(idxs))
		ys := make([]float64, 0, len(idxs))
		for _, i := range idxs {
			xs = append(xs, float64(i))
			ys = append(ys, summaries[i].ProgressPct)
		}
		// go-chart needs at least two points per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+0.001)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    string(status),
			XValues: xs,
			YValues: ys,
			Style:   dotStyle(StatusColor(status, scheme)),
		})
	}

	// Dashed reference line at the 100% target.
	maxX := float64(len(summaries) - 1)
	if maxX == 0 {
		maxX = 1
	}
	series = append(series, chart.ContinuousSeries{
		Name:    "Target",
		XValues: []float64{-0.5, maxX + 0.5},
		YValues: []float64{100, 100},
		Style: chart.Style{
			StrokeColor:     scheme.Success,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	})

	ticks := make([]chart.Tick, 0, len(summaries))
	for i, s := range summaries {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: s.KPI})
	}

	ch := chart.Chart{
		Title:  fmt.Sprintf("KPI Progress Overview - %s", project),
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			FillColor: scheme.Background,
			Padding:   chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: -0.5, Max: maxX + 0.5},
		},
		YAxis: chart.YAxis{
			Name: "Progress (%)",
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return ch.Render(chart.PNG, w)
}

// dotStyle returns a style that renders points only (no connecting line).
func dotStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

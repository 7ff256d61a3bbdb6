package chart_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OctaInsight/kpi-dashboard/internal/chart"
	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleSummaries() []kpi.Summary {
	return []kpi.Summary{
		{KPI: "Enrolment", Target: 100, CurrentValue: 95, ProgressPct: 95, Status: kpi.StatusOnTrack},
		{KPI: "Training", Target: 50, CurrentValue: 50, ProgressPct: 100, Status: kpi.StatusAchieved},
		{KPI: "Outreach", Target: 200, CurrentValue: 40, ProgressPct: 20, Status: kpi.StatusDelayed},
	}
}

func requirePNG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	require.Greater(t, buf.Len(), len(pngMagic))
	require.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestOverview_Bar(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Overview(sampleSummaries(), chart.OverviewBar, chart.SchemeByName("Ocean"), "Project Alpha", &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestOverview_Scatter(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Overview(sampleSummaries(), chart.OverviewScatter, chart.SchemeByName("Forest"), "Project Alpha", &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestOverview_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := chart.Overview(nil, chart.OverviewBar, chart.SchemeByName(""), "Project Alpha", &buf)
	require.ErrorIs(t, err, chart.ErrNoData)
}

func TestStatusPie(t *testing.T) {
	var buf bytes.Buffer
	err := chart.StatusPie(sampleSummaries(), chart.SchemeByName("Sunset"), "Project Alpha", &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestTargetBar(t *testing.T) {
	var buf bytes.Buffer
	rec := kpi.Record{KPI: "Enrolment", Target: 100, CurrentValue: 42}
	err := chart.TargetBar(rec, chart.SchemeByName("Monochrome"), &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestTrend(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []kpi.Record{
		{KPI: "Enrolment", Target: 100, CurrentValue: 10, AchievementDate: t0},
		{KPI: "Enrolment", Target: 100, CurrentValue: 30, AchievementDate: t0.AddDate(0, 1, 0)},
		{KPI: "Enrolment", Target: 100, CurrentValue: 55, AchievementDate: t0.AddDate(0, 2, 0)},
	}

	var buf bytes.Buffer
	err := chart.Trend(history, chart.SchemeByName("Blue Tones"), &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestTrend_SingleObservation(t *testing.T) {
	history := []kpi.Record{{KPI: "Enrolment", Target: 100, CurrentValue: 10}}
	var buf bytes.Buffer
	require.ErrorIs(t, chart.Trend(history, chart.SchemeByName(""), &buf), chart.ErrNoData)
}

func TestGenderPie(t *testing.T) {
	male, female := 12, 8
	rec := kpi.Record{KPI: "Enrolment", MaleCount: &male, FemaleCount: &female}

	var buf bytes.Buffer
	err := chart.GenderPie(rec, chart.SchemeByName("Purple Dream"), &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestGenderPie_MissingCounts(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, chart.GenderPie(kpi.Record{}, chart.SchemeByName(""), &buf), chart.ErrNoData)

	zero := 0
	rec := kpi.Record{MaleCount: &zero, FemaleCount: &zero}
	require.ErrorIs(t, chart.GenderPie(rec, chart.SchemeByName(""), &buf), chart.ErrNoData)
}

func TestGauge(t *testing.T) {
	var buf bytes.Buffer
	summary := kpi.Summary{KPI: "Enrolment", ProgressPct: 42, Status: kpi.StatusAtRisk}
	err := chart.Gauge(summary, chart.SchemeByName("Ocean"), &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestGauge_OverTargetCapped(t *testing.T) {
	var buf bytes.Buffer
	summary := kpi.Summary{KPI: "Enrolment", ProgressPct: 130, Status: kpi.StatusAchieved}
	err := chart.Gauge(summary, chart.SchemeByName("Ocean"), &buf)
	require.NoError(t, err)
	requirePNG(t, &buf)
}

func TestSchemeByName_FallsBackToDefault(t *testing.T) {
	require.Equal(t, chart.Schemes[chart.DefaultScheme], chart.SchemeByName("nope"))
	require.Equal(t, chart.Schemes["Ocean"], chart.SchemeByName("Ocean"))
}

func TestStatusColor_FixedForAchievedAndNotStarted(t *testing.T) {
	a := chart.StatusColor(kpi.StatusAchieved, chart.SchemeByName("Ocean"))
	b := chart.StatusColor(kpi.StatusAchieved, chart.SchemeByName("Monochrome"))
	require.Equal(t, a, b)

	onTrackOcean := chart.StatusColor(kpi.StatusOnTrack, chart.SchemeByName("Ocean"))
	onTrackMono := chart.StatusColor(kpi.StatusOnTrack, chart.SchemeByName("Monochrome"))
	require.NotEqual(t, onTrackOcean, onTrackMono)
}

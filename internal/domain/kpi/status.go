package kpi

import (
	"math"
	"time"
)

// Progress-ratio thresholds for the pace bands.
const (
	onTrackRatio = 0.9
	atRiskRatio  = 0.7
)

// Classify maps one KPI observation onto a status label. A non-positive or
// NaN target means the KPI is Not Started regardless of the current value.
// Otherwise the current value is compared against the progress expected from
// the elapsed share of the start/end window as of today. Degenerate windows
// (not yet begun, or end before start) classify as Not Started.
func Classify(current, target float64, start, end, today time.Time) Status {
	if math.IsNaN(target) || target <= 0 {
		return StatusNotStarted
	}
	if math.IsNaN(current) {
		return StatusNotStarted
	}
	if current >= target {
		return StatusAchieved
	}

	totalDays := daysBetween(start, end)
	elapsedDays := daysBetween(start, today)
	if elapsedDays <= 0 || totalDays <= 0 {
		return StatusNotStarted
	}

	expected := float64(elapsedDays) / float64(totalDays) * target
	if expected <= 0 {
		return StatusNotStarted
	}

	ratio := current / expected
	switch {
	case ratio >= onTrackRatio:
		return StatusOnTrack
	case ratio >= atRiskRatio:
		return StatusAtRisk
	default:
		return StatusDelayed
	}
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

package kpi

import "time"

// Status classifies a KPI's progress relative to its expected pace.
type Status string

const (
	StatusAchieved   Status = "Achieved"
	StatusOnTrack    Status = "On Track"
	StatusAtRisk     Status = "At Risk"
	StatusDelayed    Status = "Delayed"
	StatusNotStarted Status = "Not Started"
)

// Rank orders statuses from worst to best: Delayed < At Risk < On Track <
// Achieved. Not Started sits outside the ordering and ranks below Delayed.
func (s Status) Rank() int {
	switch s {
	case StatusDelayed:
		return 1
	case StatusAtRisk:
		return 2
	case StatusOnTrack:
		return 3
	case StatusAchieved:
		return 4
	default:
		return 0
	}
}

// Record is one observation of a KPI's progress at a point in time.
// Successive records for the same (Project, KPI) pair form a history ordered
// by CreatedAt. ID and CreatedAt are assigned by the store on write.
type Record struct {
	ID              int64     `json:"id"`
	Project         string    `json:"project"`
	KPI             string    `json:"kpi"`
	WorkPackage     string    `json:"work_package,omitempty"`
	Target          float64   `json:"target"`
	CurrentValue    float64   `json:"current_value"`
	AchievementDate time.Time `json:"achievement_date"`
	MaleCount       *int      `json:"male_count,omitempty"`
	FemaleCount     *int      `json:"female_count,omitempty"`
	Comments        string    `json:"comments,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// Summary is the dashboard view of one KPI: its latest record plus derived
// progress and status.
type Summary struct {
	KPI          string    `json:"kpi"`
	WorkPackage  string    `json:"work_package,omitempty"`
	Target       float64   `json:"target"`
	CurrentValue float64   `json:"current_value"`
	ProgressPct  float64   `json:"progress_pct"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpdateFields carries a partial record update. Only non-nil fields are
// rewritten; the store refreshes the record's CreatedAt on every update.
type UpdateFields struct {
	KPI             *string
	WorkPackage     *string
	Target          *float64
	CurrentValue    *float64
	AchievementDate *time.Time
	MaleCount       *int
	FemaleCount     *int
	Comments        *string
	StartDate       *time.Time
	EndDate         *time.Time
}

package domain

import "time"

// Activity is one row of the exported activity metadata table. Optional
// columns are zero-valued when absent from the export.
type Activity struct {
	Date          time.Time
	Type          string
	Name          string
	DistanceKm    float64
	ElapsedSec    float64
	MovingSec     float64
	ElevationGain float64
	AvgHeartRate  float64
}

// IsRun reports whether the activity is a running activity.
func (a Activity) IsRun() bool {
	return a.Type == "Run" || a.Type == "run"
}

// PersonalBest is the fastest elapsed time recorded at a standard distance.
type PersonalBest struct {
	Distance   string    `json:"distance"`
	DistanceKm float64   `json:"distance_km"`
	ElapsedSec float64   `json:"elapsed_sec"`
	Date       time.Time `json:"date"`
}

// MonthlyDistance is total distance run in one calendar month.
type MonthlyDistance struct {
	Month      string  `json:"month"` // "2006-01"
	DistanceKm float64 `json:"distance_km"`
}

// ActivityStats aggregates the tabular activity metadata. It involves no
// spatial algebra and is consumed by the external reporter next to the
// coverage results.
type ActivityStats struct {
	TotalActivities  int     `json:"total_activities"`
	TotalRuns        int     `json:"total_runs"`
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalElapsedSec  float64 `json:"total_elapsed_sec"`
	TotalElevationM  float64 `json:"total_elevation_m"`
	AveragePaceSecKm float64 `json:"average_pace_sec_km"`
	AvgHeartRate     float64 `json:"avg_heart_rate,omitempty"`

	FirstRun      time.Time `json:"first_run"`
	LongestRunKm  float64   `json:"longest_run_km"`
	LongestStreak int       `json:"longest_streak_days"`

	CommonWeekday   string `json:"common_weekday"`
	CommonTimeOfDay string `json:"common_time_of_day"`

	PersonalBests []PersonalBest    `json:"personal_bests"`
	BestMonth     MonthlyDistance   `json:"best_month"`
	Monthly       []MonthlyDistance `json:"monthly"`

	// FiveKTrendSecPerDay is the least-squares slope of direct 5k elapsed
	// times over time; negative means improvement.
	FiveKTrendSecPerDay float64 `json:"five_k_trend_sec_per_day"`
	FiveKSamples        int     `json:"five_k_samples"`

	// DailyCounts is activity count per calendar day ("2006-01-02"), the
	// data behind a calendar-grid view.
	DailyCounts map[string]int `json:"daily_counts"`
}

package models

// Summary holds batch-level aggregates for the intelligence report
type Summary struct {
	TotalPoints           int `json:"total_points"`
	TotalSegments         int `json:"total_segments"`
	TotalClusters         int `json:"total_clusters"`
	NoisePoints           int `json:"noise_points"`
	ExcludedPoints        int `json:"excluded_points"`
	TimestampedPoints     int `json:"timestamped_points"`
	UnparseableTimestamps int `json:"unparseable_timestamps"`

	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDistanceDisplay string  `json:"total_distance_display"`
	MovementRadiusKm     float64 `json:"movement_radius_km"`

	AvgSpeedKmh    *float64 `json:"avg_speed_kmh"`
	MaxSpeedKmh    *float64 `json:"max_speed_kmh"`
	MinSpeedKmh    *float64 `json:"min_speed_kmh"`
	MedianSpeedKmh *float64 `json:"median_speed_kmh"`

	TimeSpanSeconds *float64 `json:"time_span_seconds"`
	TimeSpanHuman   string   `json:"time_span_human"`
	FirstTimestamp  *string  `json:"first_timestamp"`
	LastTimestamp   *string  `json:"last_timestamp"`

	BehaviorBreakdown map[Behavior]int `json:"behavior_breakdown"`
}

// ExposureScore is a bounded heuristic of how identifiable a routine is
type ExposureScore struct {
	Score     int    `json:"score"` // 0-10
	Label     string `json:"label"` // Low, Medium, High
	Rationale string `json:"rationale"`
	BarPct    int    `json:"bar_pct"`
}

// Exposure labels
const (
	ExposureLow    = "Low"
	ExposureMedium = "Medium"
	ExposureHigh   = "High"
)

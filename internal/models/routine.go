package models

// Confidence levels for a point's place assignment
const (
	ConfidenceHigh   = "HIGH"   // Member of the most visited cluster
	ConfidenceMedium = "MEDIUM" // Member of another cluster
	ConfidenceLow    = "LOW"    // Noise
)

// NotAvailable is rendered for routine fields that cannot be derived
const NotAvailable = "N/A"

// RoutinePlace identifies a cluster singled out by routine inference
type RoutinePlace struct {
	ClusterID         int        `json:"cluster_id"`
	Label             string     `json:"label"`
	Center            [2]float64 `json:"center"`
	Visits            int        `json:"visits"`
	TotalDwellSeconds float64    `json:"total_dwell_seconds"`
}

// PointConfidence grades how reliably one observation belongs to a place
type PointConfidence struct {
	ID         string `json:"id"`
	ClusterID  int    `json:"cluster_id"`
	Confidence string `json:"confidence"`
}

// RoutineProfile holds the habits inferred from places, dwell and activity times
type RoutineProfile struct {
	InferredHome       *RoutinePlace     `json:"inferred_home"` // Longest total dwell
	InferredWork       *RoutinePlace     `json:"inferred_work"` // Second longest total dwell
	MostVisitedPlace   *RoutinePlace     `json:"most_visited_place"`
	MostActiveHour     string            `json:"most_active_hour"` // "08:00 - 08:59"
	MostActiveDay      string            `json:"most_active_day"`  // Weekday name
	AvgDailyDistanceKm float64           `json:"avg_daily_distance_km"`
	DateRange          string            `json:"date_range"` // "2024-03-01 - 2024-03-02"
	NightMovementPct   float64           `json:"night_movement_pct"`
	AnomaliesDetected  int               `json:"anomalies_detected"` // Noise points
	PointConfidence    []PointConfidence `json:"point_confidence"`
}

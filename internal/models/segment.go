package models

// Behavior is the movement category inferred from a segment's speed
type Behavior string

// Behavior constants
const (
	BehaviorUnknown    Behavior = "unknown"
	BehaviorStationary Behavior = "stationary"
	BehaviorWalking    Behavior = "walking"
	BehaviorDriving    Behavior = "driving"
	BehaviorAnomaly    Behavior = "anomaly/flight"
)

// SegmentPoint is one endpoint of a movement segment
type SegmentPoint struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp string  `json:"timestamp"` // Original text, or "unknown"
	ClusterID int     `json:"cluster_id"`
}

// Segment represents the transition between two temporally adjacent observations
type Segment struct {
	From SegmentPoint `json:"from_point"`
	To   SegmentPoint `json:"to_point"`

	DistanceKm       float64  `json:"distance_km"`
	TimeDeltaSeconds *float64 `json:"time_delta_seconds"` // nil when either endpoint has no timestamp
	TimeDeltaHuman   string   `json:"time_delta_human"`
	SpeedKmh         *float64 `json:"speed_kmh"` // nil unless the time delta is positive
	Behavior         Behavior `json:"behavior"`
}

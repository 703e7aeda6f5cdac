package models

// DwellRecord summarises time spent at one cluster
type DwellRecord struct {
	ClusterID         int     `json:"cluster_id"`
	TotalDwellSeconds float64 `json:"total_dwell_seconds"`
	TotalDwellHuman   string  `json:"total_dwell_human"`
	VisitCount        int     `json:"visit_count"` // Temporally separated visits
	PointCount        int     `json:"point_count"`
	FirstSeen         string  `json:"first_seen"`
	LastSeen          string  `json:"last_seen"`
}

// CorridorRecord represents a recurring directed transition between two clusters
type CorridorRecord struct {
	Corridor           string  `json:"corridor"` // "origin -> destination"
	OriginCluster      int     `json:"origin_cluster"`
	DestinationCluster int     `json:"destination_cluster"`
	TripCount          int     `json:"trip_count"`
	AvgDistanceKm      float64 `json:"avg_distance_km"`
	MinDistanceKm      float64 `json:"min_distance_km"`
	MaxDistanceKm      float64 `json:"max_distance_km"`
}

// TimeBucket holds activity for one part of the day
type TimeBucket struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimeOfDayProfile distributes timestamped observations across the day
type TimeOfDayProfile struct {
	Morning   TimeBucket `json:"morning"`   // 05:00-11:59
	Afternoon TimeBucket `json:"afternoon"` // 12:00-16:59
	Evening   TimeBucket `json:"evening"`   // 17:00-20:59
	Night     TimeBucket `json:"night"`     // 21:00-04:59
}

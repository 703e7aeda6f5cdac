package models

import (
	"encoding/json"
	"time"
)

// Observation represents one geotagged capture as supplied by the extraction step
type Observation struct {
	ID        string   `json:"id"`
	Lat       *float64 `json:"lat"`                 // Degrees, WGS84; nil when the source had no GPS fix
	Lon       *float64 `json:"lon"`                 // Degrees, WGS84; nil when the source had no GPS fix
	Timestamp string   `json:"timestamp,omitempty"` // EXIF or ISO 8601 text; empty when absent
}

// UnmarshalJSON accepts both "id" and the extraction store's "image_id" key
func (o *Observation) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string   `json:"id"`
		ImageID   string   `json:"image_id"`
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
		Timestamp *string  `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.ID = raw.ID
	if o.ID == "" {
		o.ID = raw.ImageID
	}
	o.Lat = raw.Lat
	o.Lon = raw.Lon
	o.Timestamp = ""
	if raw.Timestamp != nil {
		o.Timestamp = *raw.Timestamp
	}
	return nil
}

// NewObservation builds an observation with coordinates present
func NewObservation(id string, lat, lon float64, timestamp string) Observation {
	return Observation{ID: id, Lat: &lat, Lon: &lon, Timestamp: timestamp}
}

// ClusteredObservation is an observation with valid coordinates and its cluster assignment
type ClusteredObservation struct {
	ID        string     `json:"id"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Timestamp string     `json:"timestamp,omitempty"`
	Time      *time.Time `json:"-"`          // Parsed timestamp; nil when absent or unparseable
	ClusterID int        `json:"cluster_id"` // NoiseClusterID for unclustered points
}

// NoiseClusterID marks observations not density-reachable from any cluster core
const NoiseClusterID = -1

// HasTime reports whether the observation carries a parsed timestamp
func (o ClusteredObservation) HasTime() bool {
	return o.Time != nil
}

// IsNoise reports whether the observation belongs to no cluster
func (o ClusteredObservation) IsNoise() bool {
	return o.ClusterID == NoiseClusterID
}

// Exclusion records an observation rejected before clustering
type Exclusion struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Exclusion reasons
const (
	ExclusionMissingCoordinates = "missing_coordinates"
	ExclusionOutOfRange         = "out_of_range"
)

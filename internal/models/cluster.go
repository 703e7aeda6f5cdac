package models

import (
	"encoding/json"
	"fmt"
)

// Cluster represents a place where the subject was observed repeatedly.
// On the wire the centroid is "center": [lat, lon] and the member count is "visits".
type Cluster struct {
	ClusterID   int     `json:"cluster_id"`
	CentroidLat float64 `json:"-"`         // Mean member latitude, 6 decimals
	CentroidLon float64 `json:"-"`         // Mean member longitude, 6 decimals
	VisitCount  int     `json:"-"`         // Number of member observations
	RadiusKm    float64 `json:"radius_km"` // Radius of gyration around the centroid
	Label       string  `json:"label"`
}

type clusterJSON struct {
	ClusterID int        `json:"cluster_id"`
	Center    [2]float64 `json:"center"`
	Visits    int        `json:"visits"`
	RadiusKm  float64    `json:"radius_km"`
	Label     string     `json:"label"`
}

// MarshalJSON encodes the cluster in its wire shape
func (c Cluster) MarshalJSON() ([]byte, error) {
	return json.Marshal(clusterJSON{
		ClusterID: c.ClusterID,
		Center:    [2]float64{c.CentroidLat, c.CentroidLon},
		Visits:    c.VisitCount,
		RadiusKm:  c.RadiusKm,
		Label:     c.Label,
	})
}

// UnmarshalJSON decodes the wire shape written by MarshalJSON
func (c *Cluster) UnmarshalJSON(data []byte) error {
	var raw clusterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Cluster{
		ClusterID:   raw.ClusterID,
		CentroidLat: raw.Center[0],
		CentroidLon: raw.Center[1],
		VisitCount:  raw.Visits,
		RadiusKm:    raw.RadiusKm,
		Label:       raw.Label,
	}
	return nil
}

// ClusterLabel returns the display label for a cluster id
func ClusterLabel(clusterID int) string {
	return fmt.Sprintf("Cluster %d", clusterID)
}

// ClusterDistance holds the centroid distance between two distinct clusters
type ClusterDistance struct {
	ClusterA      int     `json:"cluster_a"`
	ClusterB      int     `json:"cluster_b"`
	ClusterALabel string  `json:"cluster_a_label"`
	ClusterBLabel string  `json:"cluster_b_label"`
	DistanceKm    float64 `json:"distance_km"`
}

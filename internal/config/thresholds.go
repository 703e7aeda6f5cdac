package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidThreshold is returned when an analysis threshold violates its contract
var ErrInvalidThreshold = errors.New("invalid analysis threshold")

// Thresholds carries every tunable of the movement analysis
type Thresholds struct {
	EpsKm           float64 // DBSCAN neighbourhood radius in kilometers
	MinSamples      int     // Points (self included) needed within EpsKm for a core point
	VisitGapSeconds float64 // A gap longer than this starts a new visit at a cluster

	// Behavior speed bands (km/h), lower bound inclusive
	StationaryKmh float64 // below: stationary
	WalkingKmh    float64 // below: walking
	DrivingKmh    float64 // below: driving, at or above: anomaly/flight

	Workers int // Parallel neighbour query workers; 0 uses GOMAXPROCS
}

// DefaultThresholds returns the production thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		EpsKm:           0.5,
		MinSamples:      3,
		VisitGapSeconds: 3600,
		StationaryKmh:   1.0,
		WalkingKmh:      6.0,
		DrivingKmh:      120.0,
		Workers:         0,
	}
}

// Validate checks the threshold contract
func (t Thresholds) Validate() error {
	if !(t.EpsKm > 0) || math.IsInf(t.EpsKm, 0) {
		return fmt.Errorf("%w: eps must be a positive distance, got %v", ErrInvalidThreshold, t.EpsKm)
	}
	if t.MinSamples < 1 {
		return fmt.Errorf("%w: min samples must be at least 1, got %d", ErrInvalidThreshold, t.MinSamples)
	}
	if !(t.VisitGapSeconds > 0) {
		return fmt.Errorf("%w: visit gap must be positive, got %v", ErrInvalidThreshold, t.VisitGapSeconds)
	}
	if !(t.StationaryKmh > 0 && t.StationaryKmh < t.WalkingKmh && t.WalkingKmh < t.DrivingKmh) {
		return fmt.Errorf("%w: speed bands must be positive and increasing, got %v/%v/%v",
			ErrInvalidThreshold, t.StationaryKmh, t.WalkingKmh, t.DrivingKmh)
	}
	if t.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidThreshold, t.Workers)
	}
	return nil
}

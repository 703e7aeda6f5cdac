package spatial

import (
	"github.com/golang/geo/s1"
)

// Constants
const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers
)

// DistanceKm calculates the great-circle distance between two points in kilometers
// using the Haversine formula
func DistanceKm(a, b Point) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * EarthRadiusKm
}

// KmToAngle converts a surface distance in kilometers to the central angle it subtends
func KmToAngle(km float64) s1.Angle {
	return s1.Angle(km/EarthRadiusKm) * s1.Radian
}

package behavior

import "github.com/jengzang/geotrace-go/internal/models"

// Classifier maps segment speeds to behavior categories.
// Each band includes its lower bound: stationary < Stationary <= walking < Walking <= driving < Driving <= anomaly.
type Classifier struct {
	Stationary float64 // km/h
	Walking    float64 // km/h
	Driving    float64 // km/h
}

// DefaultClassifier returns the standard speed bands
func DefaultClassifier() Classifier {
	return Classifier{Stationary: 1.0, Walking: 6.0, Driving: 120.0}
}

// Classify returns the behavior for a speed; nil speed is unknown
func (c Classifier) Classify(speedKmh *float64) models.Behavior {
	if speedKmh == nil {
		return models.BehaviorUnknown
	}

	speed := *speedKmh
	if speed < c.Stationary {
		return models.BehaviorStationary
	} else if speed < c.Walking {
		return models.BehaviorWalking
	} else if speed < c.Driving {
		return models.BehaviorDriving
	} else {
		return models.BehaviorAnomaly
	}
}

package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/geotrace-go/internal/models"
)

// Report metadata constants
const (
	Version     = "1.0"
	GeneratedBy = "geotrace"
	Description = "Movement intelligence derived from geotagged image metadata"
)

// ErrInconsistentInput is returned when stage outputs contradict each other
var ErrInconsistentInput = errors.New("inconsistent report input")

// Input bundles the stage outputs composed into a report
type Input struct {
	PointCount       int // Clustered observations the segments were built from
	Summary          models.Summary
	Exposure         models.ExposureScore
	Segments         []models.Segment
	ClusterDistances []models.ClusterDistance
	DwellTimes       []models.DwellRecord
	TimeOfDay        models.TimeOfDayProfile
	Corridors        []models.CorridorRecord
	Routine          models.RoutineProfile
}

// Assemble composes the intelligence report. Slices are copied so the report
// shares no backing arrays with its inputs. Cluster ids in segments are not
// checked against the cluster list.
func Assemble(in Input, now time.Time) (*models.IntelligenceReport, error) {
	if want := max(0, in.PointCount-1); len(in.Segments) != want {
		return nil, fmt.Errorf("%w: %d segments for %d points, want %d",
			ErrInconsistentInput, len(in.Segments), in.PointCount, want)
	}

	summary := in.Summary
	summary.BehaviorBreakdown = make(map[models.Behavior]int, len(in.Summary.BehaviorBreakdown))
	for k, v := range in.Summary.BehaviorBreakdown {
		summary.BehaviorBreakdown[k] = v
	}

	return &models.IntelligenceReport{
		Meta: models.ReportMeta{
			ReportID:    uuid.NewString(),
			GeneratedBy: GeneratedBy,
			GeneratedAt: now.UTC(),
			Description: Description,
			Version:     Version,
		},
		Summary:          summary,
		Exposure:         in.Exposure,
		MovementSegments: clone(in.Segments),
		ClusterDistances: clone(in.ClusterDistances),
		DwellTimes:       clone(in.DwellTimes),
		TimeOfDayProfile: in.TimeOfDay,
		Corridors:        clone(in.Corridors),
		Routine:          cloneRoutine(in.Routine),
	}, nil
}

// cloneRoutine copies the routine profile's places and confidence list
func cloneRoutine(r models.RoutineProfile) models.RoutineProfile {
	out := r
	out.InferredHome = clonePlace(r.InferredHome)
	out.InferredWork = clonePlace(r.InferredWork)
	out.MostVisitedPlace = clonePlace(r.MostVisitedPlace)
	out.PointConfidence = clone(r.PointConfidence)
	return out
}

func clonePlace(p *models.RoutinePlace) *models.RoutinePlace {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// clone copies s, turning nil into an empty slice so it encodes as []
func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

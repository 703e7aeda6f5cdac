package behavior

import (
	"sort"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/spatial"
	"github.com/jengzang/geotrace-go/internal/stats"
	"github.com/jengzang/geotrace-go/internal/timeutil"
)

// unknownTimestamp is rendered for segment endpoints without a timestamp
const unknownTimestamp = "unknown"

// SortChronologically returns a copy of points ordered by parsed timestamp.
// Points without a timestamp keep their input order after all timestamped ones.
func SortChronologically(points []models.ClusteredObservation) []models.ClusteredObservation {
	sorted := make([]models.ClusteredObservation, len(points))
	copy(sorted, points)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Time == nil || b.Time == nil {
			return a.Time != nil && b.Time == nil
		}
		return a.Time.Before(*b.Time)
	})

	return sorted
}

// Segment builds one movement segment per adjacent pair of chronologically sorted points
func Segment(points []models.ClusteredObservation, classifier Classifier) []models.Segment {
	ordered := SortChronologically(points)
	if len(ordered) < 2 {
		return []models.Segment{}
	}

	segments := make([]models.Segment, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]

		distance := spatial.DistanceKm(
			spatial.Point{Lat: prev.Lat, Lon: prev.Lon},
			spatial.Point{Lat: curr.Lat, Lon: curr.Lon},
		)

		seg := models.Segment{
			From:       segmentPoint(prev),
			To:         segmentPoint(curr),
			DistanceKm: stats.Round(distance, 4),
		}

		var speed *float64
		if prev.HasTime() && curr.HasTime() {
			delta := curr.Time.Sub(*prev.Time).Seconds()
			seg.TimeDeltaSeconds = stats.Ptr(stats.Round(delta, 1))
			// Speed is only defined over a positive interval
			if delta > 0 {
				speed = stats.Ptr(distance / (delta / 3600))
				seg.SpeedKmh = stats.Ptr(stats.Round(*speed, 2))
			}
		}

		seg.TimeDeltaHuman = timeutil.FormatOptionalDuration(seg.TimeDeltaSeconds)
		// Bands apply to the unrounded speed
		seg.Behavior = classifier.Classify(speed)
		segments = append(segments, seg)
	}

	return segments
}

func segmentPoint(o models.ClusteredObservation) models.SegmentPoint {
	ts := o.Timestamp
	if !o.HasTime() {
		ts = unknownTimestamp
	}
	return models.SegmentPoint{
		ID:        o.ID,
		Lat:       o.Lat,
		Lon:       o.Lon,
		Timestamp: ts,
		ClusterID: o.ClusterID,
	}
}

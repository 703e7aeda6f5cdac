package summary

import (
	"fmt"
	"time"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/stats"
	"github.com/jengzang/geotrace-go/internal/timeutil"
)

// Input carries everything the summary is derived from
type Input struct {
	Points                []models.ClusteredObservation
	Segments              []models.Segment
	Clusters              []models.Cluster
	NoisePoints           int
	ExcludedPoints        int
	UnparseableTimestamps int
	MovementRadiusKm      float64
}

// Summarize computes batch-level aggregates
func Summarize(in Input) models.Summary {
	s := models.Summary{
		TotalPoints:           len(in.Points),
		TotalSegments:         len(in.Segments),
		TotalClusters:         len(in.Clusters),
		NoisePoints:           in.NoisePoints,
		ExcludedPoints:        in.ExcludedPoints,
		UnparseableTimestamps: in.UnparseableTimestamps,
		MovementRadiusKm:      in.MovementRadiusKm,
		TimeSpanHuman:         "N/A",
		BehaviorBreakdown:     make(map[models.Behavior]int),
	}

	distances := make([]float64, 0, len(in.Segments))
	var speeds []float64
	for _, seg := range in.Segments {
		distances = append(distances, seg.DistanceKm)
		if seg.SpeedKmh != nil && *seg.SpeedKmh > 0 {
			speeds = append(speeds, *seg.SpeedKmh)
		}
		s.BehaviorBreakdown[seg.Behavior]++
	}

	s.TotalDistanceKm = stats.Round(stats.Sum(distances), 4)
	s.TotalDistanceDisplay = fmt.Sprintf("%.2f km", s.TotalDistanceKm)

	if len(speeds) > 0 {
		s.AvgSpeedKmh = stats.Ptr(stats.Round(stats.Mean(speeds), 2))
		s.MaxSpeedKmh = stats.Ptr(stats.Round(stats.Max(speeds), 2))
		s.MinSpeedKmh = stats.Ptr(stats.Round(stats.Min(speeds), 2))
		s.MedianSpeedKmh = stats.Ptr(stats.Round(stats.Median(speeds), 2))
	}

	var first, last *models.ClusteredObservation
	for i := range in.Points {
		p := &in.Points[i]
		if !p.HasTime() {
			continue
		}
		s.TimestampedPoints++
		if first == nil || p.Time.Before(*first.Time) {
			first = p
		}
		if last == nil || p.Time.After(*last.Time) {
			last = p
		}
	}

	if s.TimestampedPoints >= 2 {
		span := stats.Round(last.Time.Sub(*first.Time).Seconds(), 1)
		s.TimeSpanSeconds = &span
		s.TimeSpanHuman = timeutil.FormatDuration(span)
	}
	if first != nil {
		s.FirstTimestamp = isoPtr(*first.Time)
		s.LastTimestamp = isoPtr(*last.Time)
	}

	return s
}

func isoPtr(t time.Time) *string {
	v := timeutil.FormatISO(t)
	return &v
}

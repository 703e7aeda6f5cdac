package analysis

import (
	"fmt"
	"log"
	"time"

	"github.com/jengzang/geotrace-go/internal/analysis/behavior"
	"github.com/jengzang/geotrace-go/internal/analysis/clustering"
	"github.com/jengzang/geotrace-go/internal/analysis/report"
	"github.com/jengzang/geotrace-go/internal/analysis/stats"
	"github.com/jengzang/geotrace-go/internal/analysis/summary"
	"github.com/jengzang/geotrace-go/internal/config"
	"github.com/jengzang/geotrace-go/internal/models"
)

// Result is the output of one engine run
type Result struct {
	Report           *models.IntelligenceReport    `json:"report"`
	Clusters         []models.Cluster              `json:"clusters"`
	Clustered        []models.ClusteredObservation `json:"clustered_observations"`
	Exclusions       []models.Exclusion            `json:"excluded"`
	NoisePoints      int                           `json:"noise_points"`
	MovementRadiusKm float64                       `json:"movement_radius_km"`
}

// Engine runs the movement intelligence stages in order:
// clustering, segmentation, cluster analytics, summary/exposure/routine and report assembly
type Engine struct {
	thresholds config.Thresholds
	clusterer  *clustering.Clusterer
	classifier behavior.Classifier
	now        func() time.Time
}

// NewEngine validates thresholds and builds an engine
func NewEngine(thresholds config.Thresholds) (*Engine, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	clusterer, err := clustering.NewClusterer(clustering.Params{
		EpsKm:      thresholds.EpsKm,
		MinSamples: thresholds.MinSamples,
		Workers:    thresholds.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clusterer: %w", err)
	}

	return &Engine{
		thresholds: thresholds,
		clusterer:  clusterer,
		classifier: behavior.Classifier{
			Stationary: thresholds.StationaryKmh,
			Walking:    thresholds.WalkingKmh,
			Driving:    thresholds.DrivingKmh,
		},
		now: time.Now,
	}, nil
}

// GetName returns the engine name
func (e *Engine) GetName() string {
	return "movement_intelligence"
}

// Thresholds returns the thresholds the engine was built with
func (e *Engine) Thresholds() config.Thresholds {
	return e.thresholds
}

// Run analyzes one batch. Input is never modified.
func (e *Engine) Run(observations []models.Observation) (*Result, error) {
	log.Printf("[Engine] Starting analysis (observations=%d)", len(observations))

	clustered := e.clusterer.Cluster(observations)
	if n := len(clustered.Exclusions); n > 0 {
		log.Printf("[Engine] Excluded %d observations without usable coordinates", n)
	}
	log.Printf("[Engine] Clustering complete: %d clusters, %d noise points", len(clustered.Clusters), clustered.NoisePoints)

	segments := behavior.Segment(clustered.Points, e.classifier)

	dwell := stats.Dwell(clustered.Points, e.thresholds.VisitGapSeconds)
	corridors := stats.Corridors(segments)
	distances := stats.ClusterDistances(clustered.Clusters)
	timeOfDay := stats.TimeOfDay(clustered.Points)

	sum := summary.Summarize(summary.Input{
		Points:                clustered.Points,
		Segments:              segments,
		Clusters:              clustered.Clusters,
		NoisePoints:           clustered.NoisePoints,
		ExcludedPoints:        len(clustered.Exclusions),
		UnparseableTimestamps: clustered.UnparseableTimestamps,
		MovementRadiusKm:      clustered.MovementRadiusKm,
	})
	exposure := summary.Score(summary.ExposureInput{
		TotalObservations: len(clustered.Points),
		DistinctClusters:  len(clustered.Clusters),
		NoisePoints:       clustered.NoisePoints,
	})

	routine := summary.Routine(summary.RoutineInput{
		Points:          clustered.Points,
		Clusters:        clustered.Clusters,
		Dwell:           dwell,
		TimeOfDay:       timeOfDay,
		TotalDistanceKm: sum.TotalDistanceKm,
		NoisePoints:     clustered.NoisePoints,
	})

	rep, err := report.Assemble(report.Input{
		PointCount:       len(clustered.Points),
		Summary:          sum,
		Exposure:         exposure,
		Segments:         segments,
		ClusterDistances: distances,
		DwellTimes:       dwell,
		TimeOfDay:        timeOfDay,
		Corridors:        corridors,
		Routine:          routine,
	}, e.now())
	if err != nil {
		return nil, fmt.Errorf("failed to assemble report: %w", err)
	}

	log.Printf("[Engine] Analysis complete: %d segments, %d corridors, exposure %d (%s)",
		len(segments), len(corridors), exposure.Score, exposure.Label)

	return &Result{
		Report:           rep,
		Clusters:         clustered.Clusters,
		Clustered:        clustered.Points,
		Exclusions:       clustered.Exclusions,
		NoisePoints:      clustered.NoisePoints,
		MovementRadiusKm: clustered.MovementRadiusKm,
	}, nil
}

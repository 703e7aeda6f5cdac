package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jengzang/geotrace-go/internal/analysis"
	"github.com/jengzang/geotrace-go/internal/metrics"
	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/repository"
)

// AnalysisService runs the movement intelligence engine and keeps recent reports in memory
type AnalysisService struct {
	engine  *analysis.Engine
	repo    *repository.ObservationRepository
	metrics *metrics.AnalysisMetrics
	reports *cache.Cache // report id → *models.IntelligenceReport
}

// NewAnalysisService creates a new analysis service. Reports expire after cacheTTL.
func NewAnalysisService(engine *analysis.Engine, repo *repository.ObservationRepository,
	m *metrics.AnalysisMetrics, cacheTTL time.Duration) *AnalysisService {
	return &AnalysisService{
		engine:  engine,
		repo:    repo,
		metrics: m,
		reports: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Analyze runs the engine over an ad-hoc batch and caches the report
func (s *AnalysisService) Analyze(observations []models.Observation) (*analysis.Result, error) {
	start := time.Now()
	result, err := s.engine.Run(observations)
	s.metrics.RecordRun(len(observations), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	for _, ex := range result.Exclusions {
		s.metrics.RecordExclusion(ex.Reason)
	}

	s.reports.SetDefault(result.Report.Meta.ReportID, result.Report)
	return result, nil
}

// AnalyzeBatch loads a stored batch and analyzes it
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, batchID string) (*analysis.Result, error) {
	observations, total, err := s.repo.ListByBatch(ctx, models.ObservationFilter{BatchID: batchID})
	if err != nil {
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}
	if total == 0 {
		return nil, ErrBatchNotFound
	}

	log.Printf("[AnalysisService] Analyzing batch %s (%d observations)", batchID, total)
	return s.Analyze(observations)
}

// GetReport returns a cached report by id
func (s *AnalysisService) GetReport(reportID string) (*models.IntelligenceReport, error) {
	cached, found := s.reports.Get(reportID)
	s.metrics.RecordCacheLookup(found)
	if !found {
		return nil, ErrReportNotFound
	}
	return cached.(*models.IntelligenceReport), nil
}

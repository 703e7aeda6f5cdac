// Package app wires configuration, storage, analysis and HTTP into a runnable server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jengzang/geotrace-go/internal/analysis"
	"github.com/jengzang/geotrace-go/internal/api"
	"github.com/jengzang/geotrace-go/internal/config"
	"github.com/jengzang/geotrace-go/internal/database"
	"github.com/jengzang/geotrace-go/internal/handler"
	"github.com/jengzang/geotrace-go/internal/metrics"
	"github.com/jengzang/geotrace-go/internal/middleware"
	"github.com/jengzang/geotrace-go/internal/repository"
	"github.com/jengzang/geotrace-go/internal/service"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the HTTP router and everything behind it.
// The returned cleanup stops background workers started for the router.
func NewRouter(cfg *config.Config, conn *sql.DB) (*gin.Engine, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	engine, err := analysis.NewEngine(cfg.Analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create engine: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	analysisMetrics, err := metrics.NewAnalysisMetrics(registry)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewObservationRepository(conn)
	observationService := service.NewObservationService(repo)
	analysisService := service.NewAnalysisService(engine, repo, analysisMetrics, cfg.ReportCacheTTL)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	router := api.SetupRouter(api.Dependencies{
		Batches:  handler.NewBatchHandler(observationService, analysisService),
		Reports:  handler.NewReportHandler(analysisService),
		Limiter:  limiter,
		Registry: registry,
	})

	cleanup := func() {
		if limiter != nil {
			limiter.Stop()
		}
	}
	return router, cleanup, nil
}

// Run opens the database, serves HTTP on cfg.Port and shuts down when ctx is done
func Run(ctx context.Context, cfg *config.Config) error {
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	router, cleanup, err := NewRouter(cfg, database.GetDB())
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/repository"
)

// MaxBatchSize caps the number of observations accepted in one request
const MaxBatchSize = 10000

// ObservationService handles business logic for stored observation batches
type ObservationService struct {
	repo *repository.ObservationRepository
}

// NewObservationService creates a new observation service
func NewObservationService(repo *repository.ObservationRepository) *ObservationService {
	return &ObservationService{
		repo: repo,
	}
}

// PrepareBatch validates a submitted batch and fills in missing observation ids.
// The input slice is not modified.
func PrepareBatch(observations []models.Observation) ([]models.Observation, error) {
	if len(observations) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(observations) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(observations), MaxBatchSize)
	}

	prepared := make([]models.Observation, len(observations))
	seen := make(map[string]struct{}, len(observations))
	for i, o := range observations {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if _, dup := seen[o.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, o.ID)
		}
		seen[o.ID] = struct{}{}
		prepared[i] = o
	}

	return prepared, nil
}

// CreateBatch stores observations under a new batch id
func (s *ObservationService) CreateBatch(ctx context.Context, observations []models.Observation) (*models.BatchCreated, error) {
	prepared, err := PrepareBatch(observations)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	if err := s.repo.InsertBatch(ctx, batchID, prepared); err != nil {
		return nil, fmt.Errorf("failed to store batch: %w", err)
	}

	return &models.BatchCreated{BatchID: batchID, Stored: len(prepared)}, nil
}

// GetObservations retrieves a batch's observations with filtering and pagination
func (s *ObservationService) GetObservations(ctx context.Context, filter models.ObservationFilter) (*models.ObservationsResponse, error) {
	// Validate filter
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	count, err := s.repo.CountByBatch(ctx, filter.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	if count == 0 {
		return nil, ErrBatchNotFound
	}

	observations, total, err := s.repo.ListByBatch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}

	// Calculate total pages
	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.ObservationsResponse{
		Data:       observations,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListBatches returns all stored batches
func (s *ObservationService) ListBatches(ctx context.Context) ([]models.BatchInfo, error) {
	batches, err := s.repo.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	return batches, nil
}

// DeleteBatch removes a stored batch
func (s *ObservationService) DeleteBatch(ctx context.Context, batchID string) error {
	deleted, err := s.repo.DeleteBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	if deleted == 0 {
		return ErrBatchNotFound
	}
	return nil
}

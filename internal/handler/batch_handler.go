package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/geotrace-go/internal/models"
	"github.com/jengzang/geotrace-go/internal/service"
	"github.com/jengzang/geotrace-go/pkg/response"
)

// ObservationsRequest is the body of batch upload and ad-hoc analysis requests
type ObservationsRequest struct {
	Observations []models.Observation `json:"observations"`
}

// BatchHandler handles HTTP requests for stored observation batches
type BatchHandler struct {
	observationService *service.ObservationService
	analysisService    *service.AnalysisService
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(observationService *service.ObservationService, analysisService *service.AnalysisService) *BatchHandler {
	return &BatchHandler{
		observationService: observationService,
		analysisService:    analysisService,
	}
}

// CreateBatch handles POST /api/v1/batches
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req ObservationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.observationService.CreateBatch(c.Request.Context(), req.Observations)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, created)
}

// ListBatches handles GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	batches, err := h.observationService.ListBatches(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, batches)
}

// GetObservations handles GET /api/v1/batches/:id/observations
func (h *BatchHandler) GetObservations(c *gin.Context) {
	var filter models.ObservationFilter

	// Parse query parameters
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	filter.BatchID = c.Param("id")

	result, err := h.observationService.GetObservations(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBatch handles DELETE /api/v1/batches/:id
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	if err := h.observationService.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"batch_id": c.Param("id"), "deleted": true})
}

// AnalyzeBatch handles POST /api/v1/batches/:id/report
func (h *BatchHandler) AnalyzeBatch(c *gin.Context) {
	result, err := h.analysisService.AnalyzeBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/geotrace-go/internal/service"
	"github.com/jengzang/geotrace-go/pkg/response"
)

// ReportHandler handles HTTP requests for intelligence reports
type ReportHandler struct {
	analysisService *service.AnalysisService
}

// NewReportHandler creates a new report handler
func NewReportHandler(analysisService *service.AnalysisService) *ReportHandler {
	return &ReportHandler{
		analysisService: analysisService,
	}
}

// CreateReport handles POST /api/v1/reports
// Observations are analyzed without being stored.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req ObservationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	observations, err := service.PrepareBatch(req.Observations)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.analysisService.Analyze(observations)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, result)
}

// GetReport handles GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.analysisService.GetReport(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, report)
}

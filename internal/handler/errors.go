package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/geotrace-go/internal/service"
	"github.com/jengzang/geotrace-go/pkg/response"
)

// writeError maps service errors to HTTP responses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge),
		errors.Is(err, service.ErrDuplicateID):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrBatchNotFound),
		errors.Is(err, service.ErrReportNotFound):
		response.NotFound(c, err.Error())
	default:
		log.Printf("[Handler] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		response.InternalError(c, "Internal server error")
	}
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/geotrace-go/internal/handler"
	"github.com/jengzang/geotrace-go/internal/middleware"
)

// Dependencies 路由依赖
type Dependencies struct {
	Batches  *handler.BatchHandler
	Reports  *handler.ReportHandler
	Limiter  *middleware.RateLimiter
	Registry *prometheus.Registry
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "GeoTrace API is running",
		})
	})

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})))

	// API 路由组
	api := r.Group("/api/v1")
	if deps.Limiter != nil {
		api.Use(middleware.RateLimit(deps.Limiter))
	}
	{
		// 观测批次接口
		batches := api.Group("/batches")
		{
			batches.POST("", deps.Batches.CreateBatch)
			batches.GET("", deps.Batches.ListBatches)
			batches.GET("/:id/observations", deps.Batches.GetObservations)
			batches.DELETE("/:id", deps.Batches.DeleteBatch)
			batches.POST("/:id/report", deps.Batches.AnalyzeBatch)
		}

		// 情报报告接口
		reports := api.Group("/reports")
		{
			reports.POST("", deps.Reports.CreateReport)
			reports.GET("/:id", deps.Reports.GetReport)
		}
	}

	return r
}

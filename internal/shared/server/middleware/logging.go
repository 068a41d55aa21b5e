package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"summary-backend/internal/shared/metrics"
	"summary-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	SummaryIDKey = "summaryId"
	OperationKey = "operation"
)

// Logging emits a structured log per request and counts it in metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()

		metrics.ObserveRequest(c.Request.Method, route, status)

		summaryID, _ := c.Get(SummaryIDKey)
		operation, _ := c.Get(OperationKey)
		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"summary_id":  summaryID,
			"operation":   operation,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}

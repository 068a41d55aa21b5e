package respond

import (
	"github.com/gin-gonic/gin"

	"summary-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized error body. Error carries the
// human-readable message so simple clients can display it directly.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// Error logs the failure and sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details error) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	body := ErrorResponse{Error: message, Code: code}
	if details != nil {
		fields["error"] = details.Error()
		body.Details = details.Error()
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, body)
}

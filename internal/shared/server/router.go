package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"summary-backend/internal/services/health"
	"summary-backend/internal/shared/config"
	"summary-backend/internal/shared/metrics"
	"summary-backend/internal/shared/server/middleware"
	"summary-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a feature's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps groups everything NewRouter wires.
type RouterDeps struct {
	Config    config.Config
	Health    *health.Service
	Summaries RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Config.IsDevLike() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		payload, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, payload)
			return
		}
		respond.OK(c, payload)
	})
	if deps.Summaries != nil {
		deps.Summaries.RegisterRoutes(api)
	}

	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

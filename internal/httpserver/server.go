package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/f3rva/workout-service/internal/config"
	"github.com/f3rva/workout-service/internal/handlers"
	"github.com/f3rva/workout-service/internal/service"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

// NewRouter wires the public endpoints.
// Root: /, /metrics
// Under cfg.APIPrefix: /health, /workouts/...
func NewRouter(cfg config.Config, svc service.Service, logger *slog.Logger) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		recovery(logger),
		requestID(),
		accessLog(logger),
		recordMetrics(),
		cors(),
		requestTimeout(cfg.RequestTimeout),
	)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": cfg.AppName + " API",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.APIPrefix)
	handlers.RegisterHealthRoutes(api, svc, cfg.HealthTimeout, logger)
	handlers.RegisterWorkoutRoutes(api, svc, logger)

	return r
}

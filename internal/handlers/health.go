package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/f3rva/workout-service/internal/observability"
	"github.com/f3rva/workout-service/internal/service"
)

// serviceName identifies this service in health payloads.
const serviceName = "f3rva-workout-service"

// RegisterHealthRoutes registers GET /health.
//
// The endpoint answers 200 whether or not the database is reachable; the body
// says which. It answers 503 only when the check itself could not finish
// within timeout.
func RegisterHealthRoutes(r gin.IRoutes, svc service.Service, timeout time.Duration, logger *slog.Logger) {
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		healthy := svc.CheckHealth(ctx)
		if err := ctx.Err(); err != nil {
			logger.ErrorContext(ctx, "health check did not complete", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Service unavailable"})
			return
		}
		observability.RecordHealthCheck(healthy)

		status, database := "healthy", "connected"
		if !healthy {
			status, database = "unhealthy", "disconnected"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   status,
			"service":  serviceName,
			"database": database,
		})
	})
}

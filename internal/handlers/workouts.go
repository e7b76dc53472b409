package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/f3rva/workout-service/internal/models"
	"github.com/f3rva/workout-service/internal/observability"
	"github.com/f3rva/workout-service/internal/service"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

const (
	minYear = 2000
	maxYear = 9999
)

// parsePathInt reads an integer path parameter.
func parsePathInt(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// RegisterWorkoutRoutes registers the lookup endpoints.
//
// GET  /workouts/:year/:month/:day/:slug
// POST /workouts/search
// - 200 with success=false when no workout matches
// - 400 for out-of-range fields or a non-existent calendar date
// - 422 for malformed input
func RegisterWorkoutRoutes(r gin.IRoutes, svc service.Service, logger *slog.Logger) {
	useJSONFieldNames()

	h := &workoutHandler{svc: svc, logger: logger}
	r.GET("/workouts/:year/:month/:day/:slug", h.getByPath)
	r.POST("/workouts/search", h.search)
}

type workoutHandler struct {
	svc    service.Service
	logger *slog.Logger
}

func (h *workoutHandler) getByPath(c *gin.Context) {
	parts := [3]int{}
	for i, name := range []string{"year", "month", "day"} {
		n, err := parsePathInt(c, name)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": name + " must be an integer"})
			return
		}
		parts[i] = n
	}
	year, month, day := parts[0], parts[1], parts[2]

	// Checked in order; the first failure wins.
	switch {
	case year < minYear || year > maxYear:
		c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Year must be between %d and %d", minYear, maxYear)})
		return
	case month < 1 || month > 12:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Month must be between 1 and 12"})
		return
	case day < 1 || day > 31:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Day must be between 1 and 31"})
		return
	}

	h.lookup(c, year, month, day, c.Param("slug"))
}

func (h *workoutHandler) search(c *gin.Context) {
	var req models.WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": bindingDetails(err)})
		return
	}

	h.lookup(c, req.Year, req.Month, req.Day, req.URLSlug)
}

// lookup builds the calendar date and answers with the workout envelope.
func (h *workoutHandler) lookup(c *gin.Context, year, month, day int, slug string) {
	date, err := models.NewDate(year, month, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid date: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	workout, found, err := h.svc.FindWorkout(ctx, date, slug)
	if err != nil {
		observability.RecordLookup(observability.LookupError)
		h.logger.ErrorContext(ctx, "workout lookup failed",
			"date", date.String(), "slug", slug, "request_id", c.GetString(RequestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if !found {
		observability.RecordLookup(observability.LookupNotFound)
		c.JSON(http.StatusOK, models.NotFoundResponse(date, slug))
		return
	}

	observability.RecordLookup(observability.LookupFound)
	c.JSON(http.StatusOK, models.FoundResponse(workout))
}

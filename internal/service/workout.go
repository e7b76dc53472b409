// Package service assembles workout records from the store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/f3rva/workout-service/internal/models"
	"github.com/f3rva/workout-service/internal/store"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/f3rva/workout-service/internal/service Service

// Service is the lookup surface consumed by the HTTP handlers.
type Service interface {
	// FindWorkout returns the workout for (date, slug). found=false with a nil
	// error means no such workout; a non-nil error is a storage or mapping fault.
	FindWorkout(ctx context.Context, date models.Date, slug string) (w models.Workout, found bool, err error)

	// CheckHealth reports whether the store answers a trivial round trip.
	CheckHealth(ctx context.Context) bool
}

// Ties on (workout_date, url_slug) resolve to the lowest id.
const headerQuery = `
	SELECT w.workout_date, w.url_slug, w.qic_name, w.qic_f3_name
	FROM workouts w
	WHERE w.workout_date = $1
	  AND w.url_slug = $2
	ORDER BY w.id
	LIMIT 1
`

const paxQuery = `
	SELECT p.pax_name, p.f3_name
	FROM workout_pax wp
	JOIN pax p ON wp.pax_id = p.id
	JOIN workouts w ON wp.workout_id = w.id
	WHERE w.workout_date = $1
	  AND w.url_slug = $2
	ORDER BY wp.id
`

const aosQuery = `
	SELECT a.aos_name, a.description
	FROM workout_aos wa
	JOIN aos a ON wa.aos_id = a.id
	JOIN workouts w ON wa.workout_id = w.id
	WHERE w.workout_date = $1
	  AND w.url_slug = $2
	ORDER BY wa.id
`

const healthQuery = `SELECT 1 AS status`

// WorkoutService implements Service on top of a store.Gateway.
type WorkoutService struct {
	gw     store.Gateway
	logger *slog.Logger
}

var _ Service = (*WorkoutService)(nil)

// New constructs a WorkoutService.
func New(gw store.Gateway, logger *slog.Logger) *WorkoutService {
	return &WorkoutService{gw: gw, logger: logger}
}

// FindWorkout runs the header, participant and segment queries on one connection.
// The dependent queries are skipped when the header is absent.
func (s *WorkoutService) FindWorkout(ctx context.Context, date models.Date, slug string) (models.Workout, bool, error) {
	var (
		workout models.Workout
		found   bool
	)

	day := date.Time()
	err := s.gw.Session(ctx, func(q store.Querier) error {
		header, ok, err := q.QueryOne(ctx, headerQuery, day, slug)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		workout, err = workoutFromHeader(header)
		if err != nil {
			return err
		}

		paxRows, err := q.Query(ctx, paxQuery, day, slug)
		if err != nil {
			return err
		}
		if workout.PAX, err = paxFromRows(paxRows); err != nil {
			return err
		}

		aosRows, err := q.Query(ctx, aosQuery, day, slug)
		if err != nil {
			return err
		}
		if workout.AOS, err = aosFromRows(aosRows); err != nil {
			return err
		}

		found = true
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "retrieve workout failed", "date", date.String(), "slug", slug, "error", err)
		return models.Workout{}, false, err
	}

	if !found {
		s.logger.InfoContext(ctx, "no workout found", "date", date.String(), "slug", slug)
		return models.Workout{}, false, nil
	}

	s.logger.InfoContext(ctx, "retrieved workout", "date", date.String(), "slug", slug,
		"pax", len(workout.PAX), "aos", len(workout.AOS))
	return workout, true, nil
}

// CheckHealth is true iff the round trip returns a row whose status is 1.
// Errors are logged and reported as unhealthy.
func (s *WorkoutService) CheckHealth(ctx context.Context) bool {
	row, ok, err := s.gw.QueryOne(ctx, healthQuery)
	if err != nil {
		s.logger.ErrorContext(ctx, "health check failed", "error", err)
		return false
	}
	if !ok {
		return false
	}
	return isOne(row["status"])
}

func workoutFromHeader(row store.Row) (models.Workout, error) {
	day, ok := row["workout_date"].(time.Time)
	if !ok {
		return models.Workout{}, fmt.Errorf("workout header: column workout_date: unexpected %T", row["workout_date"])
	}
	slug, err := requiredString(row, "url_slug")
	if err != nil {
		return models.Workout{}, fmt.Errorf("workout header: %w", err)
	}
	name, err := requiredString(row, "qic_name")
	if err != nil {
		return models.Workout{}, fmt.Errorf("workout header: %w", err)
	}
	f3Name, err := optionalString(row, "qic_f3_name")
	if err != nil {
		return models.Workout{}, fmt.Errorf("workout header: %w", err)
	}

	return models.Workout{
		WorkoutDate: models.DateOf(day),
		QIC:         models.QIC{Name: name, F3Name: f3Name},
		PAX:         []models.PAX{},
		AOS:         []models.AOS{},
		URLSlug:     slug,
	}, nil
}

func paxFromRows(rows []store.Row) ([]models.PAX, error) {
	out := make([]models.PAX, 0, len(rows))
	for i, row := range rows {
		name, err := requiredString(row, "pax_name")
		if err != nil {
			return nil, fmt.Errorf("pax row %d: %w", i, err)
		}
		f3Name, err := optionalString(row, "f3_name")
		if err != nil {
			return nil, fmt.Errorf("pax row %d: %w", i, err)
		}
		out = append(out, models.PAX{Name: name, F3Name: f3Name})
	}
	return out, nil
}

func aosFromRows(rows []store.Row) ([]models.AOS, error) {
	out := make([]models.AOS, 0, len(rows))
	for i, row := range rows {
		name, err := requiredString(row, "aos_name")
		if err != nil {
			return nil, fmt.Errorf("aos row %d: %w", i, err)
		}
		desc, err := optionalString(row, "description")
		if err != nil {
			return nil, fmt.Errorf("aos row %d: %w", i, err)
		}
		out = append(out, models.AOS{Name: name, Description: desc})
	}
	return out, nil
}

func requiredString(row store.Row, col string) (string, error) {
	s, ok := row[col].(string)
	if !ok {
		return "", fmt.Errorf("column %s: expected text, got %T", col, row[col])
	}
	return s, nil
}

func optionalString(row store.Row, col string) (*string, error) {
	switch v := row[col].(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	default:
		return nil, fmt.Errorf("column %s: expected text or NULL, got %T", col, v)
	}
}

// isOne accepts whichever integer width the driver chose for the literal.
func isOne(v any) bool {
	switch n := v.(type) {
	case int16:
		return n == 1
	case int32:
		return n == 1
	case int64:
		return n == 1
	case int:
		return n == 1
	default:
		return false
	}
}

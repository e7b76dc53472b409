package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/f3rva/workout-service/internal/config"
	"github.com/f3rva/workout-service/internal/models"
	"github.com/f3rva/workout-service/internal/service/mocks"
)

////////////////////////////////////////////////////////////////////////////////
// END-TO-END SUITE
//
// These tests drive the full router over a real HTTP listener:
//
//   Client → middleware → handlers → (mocked) lookup service → JSON
//
////////////////////////////////////////////////////////////////////////////////

func testConfig() config.Config {
	return config.Config{
		AppName:        "F3RVA Workout Service",
		APIPrefix:      "/api/v1",
		RequestTimeout: 5 * time.Second,
		HealthTimeout:  time.Second,
	}
}

func startServer(t *testing.T) (*httptest.Server, *mocks.MockService) {
	t.Helper()

	svc := mocks.NewMockService(gomock.NewController(t))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(testConfig(), svc, logger))
	t.Cleanup(srv.Close)
	return srv, svc
}

////////////////////////////////////////////////////////////////////////////////
// GENERIC HTTP HELPERS
////////////////////////////////////////////////////////////////////////////////

// do performs a request with optional JSON payload and headers.
func do(t *testing.T, method, url string, payload any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}

	req, _ := http.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := (&http.Client{Timeout: 5 * time.Second}).Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func ripken() models.Workout {
	return models.Workout{
		WorkoutDate: models.Date{Year: 2024, Month: time.January, Day: 15},
		QIC:         models.QIC{Name: "Ripken"},
		PAX:         []models.PAX{{Name: "Donatello"}, {Name: "Leonardo"}},
		AOS:         []models.AOS{{Name: "Warm-Up"}, {Name: "The Thang"}},
		URLSlug:     "test-workout",
	}
}

////////////////////////////////////////////////////////////////////////////////
// ROOT, HEALTH & METRICS
////////////////////////////////////////////////////////////////////////////////

func TestRoot_ReportsNameAndVersion(t *testing.T) {
	srv, _ := startServer(t)

	resp, b := do(t, http.MethodGet, srv.URL+"/", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"F3RVA Workout Service API","version":"0.1.0"}`, string(b))
}

func TestHealth_MountedUnderPrefix(t *testing.T) {
	srv, svc := startServer(t)
	svc.EXPECT().CheckHealth(gomock.Any()).Return(true)

	resp, b := do(t, http.MethodGet, srv.URL+"/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), `"status":"healthy"`)

	resp, _ = do(t, http.MethodGet, srv.URL+"/health", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetrics_ExposesRequestCounters(t *testing.T) {
	srv, _ := startServer(t)
	do(t, http.MethodGet, srv.URL+"/", nil, nil)

	resp, b := do(t, http.MethodGet, srv.URL+"/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "workout_service_http_requests_total")
}

////////////////////////////////////////////////////////////////////////////////
// WORKOUT LOOKUPS
////////////////////////////////////////////////////////////////////////////////

func TestGetWorkout_EndToEndFound(t *testing.T) {
	srv, svc := startServer(t)
	svc.EXPECT().FindWorkout(gomock.Any(), ripken().WorkoutDate, "test-workout").Return(ripken(), true, nil)

	resp, b := do(t, http.MethodGet, srv.URL+"/api/v1/workouts/2024/1/15/test-workout", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Success bool `json:"success"`
		Data    struct {
			WorkoutDate string `json:"workout_date"`
			QIC         struct {
				Name string `json:"name"`
			} `json:"qic"`
			PAX     []map[string]any `json:"pax"`
			AOS     []map[string]any `json:"aos"`
			URLSlug string           `json:"url_slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &env))
	assert.True(t, env.Success)
	assert.Equal(t, "2024-01-15", env.Data.WorkoutDate)
	assert.Equal(t, "Ripken", env.Data.QIC.Name)
	assert.Len(t, env.Data.PAX, 2)
	assert.Len(t, env.Data.AOS, 2)
	assert.Equal(t, "test-workout", env.Data.URLSlug)
}

func TestGetWorkout_EndToEndNotFound(t *testing.T) {
	srv, svc := startServer(t)
	svc.EXPECT().FindWorkout(gomock.Any(), ripken().WorkoutDate, "nonexistent").Return(models.Workout{}, false, nil)

	resp, b := do(t, http.MethodGet, srv.URL+"/api/v1/workouts/2024/1/15/nonexistent", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env map[string]any
	require.NoError(t, json.Unmarshal(b, &env))
	assert.Equal(t, false, env["success"])
	assert.Nil(t, env["data"])
	assert.Contains(t, env["message"], "No workout found")
}

func TestSearchWorkout_EndToEndValidation(t *testing.T) {
	srv, _ := startServer(t)

	resp, _ := do(t, http.MethodPost, srv.URL+"/api/v1/workouts/search", map[string]any{
		"year": 1999, "month": 1, "day": 15, "url_slug": "test-workout",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, b := do(t, http.MethodPost, srv.URL+"/api/v1/workouts/search", map[string]any{
		"year": 2024, "month": 2, "day": 30, "url_slug": "test-workout",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(b), "Invalid date")
}

////////////////////////////////////////////////////////////////////////////////
// MIDDLEWARE
////////////////////////////////////////////////////////////////////////////////

func TestRequestID_GeneratedWhenAbsent(t *testing.T) {
	srv, _ := startServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/", nil, nil)
	id := resp.Header.Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, 4, strings.Count(id, "-"))
}

func TestRequestID_EchoesCaller(t *testing.T) {
	srv, _ := startServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/", nil, map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	srv, _ := startServer(t)

	resp, _ := do(t, http.MethodOptions, srv.URL+"/api/v1/workouts/search", nil, map[string]string{
		"Origin":                         "https://f3rva.org",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "Content-Type",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "https://f3rva.org", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))
}

func TestRecovery_PanicIsGeneric500(t *testing.T) {
	srv, svc := startServer(t)
	svc.EXPECT().FindWorkout(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Date, string) (models.Workout, bool, error) {
			panic("nil map write")
		})

	resp, b := do(t, http.MethodGet, srv.URL+"/api/v1/workouts/2024/1/15/test-workout", nil, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, string(b))
}

package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded by RecordLookup.
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	workoutLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "lookup",
		Name:      "workouts_total",
		Help:      "Workout lookups, by outcome.",
	}, []string{"result"})
	healthChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "lookup",
		Name:      "health_checks_total",
		Help:      "Database health checks, by outcome.",
	}, []string{"healthy"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, workoutLookups, healthChecks)
}

// RecordRequest observes one served HTTP request. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordLookup counts a workout lookup by outcome.
func RecordLookup(result string) {
	workoutLookups.WithLabelValues(result).Inc()
}

// RecordHealthCheck counts a health check by outcome.
func RecordHealthCheck(healthy bool) {
	healthChecks.WithLabelValues(strconv.FormatBool(healthy)).Inc()
}

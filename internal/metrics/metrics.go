package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transitcoop_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transitcoop_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	assignmentResets = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transitcoop_assignment_resets_total",
			Help: "Assignment reset runs by trigger and outcome",
		},
		[]string{"trigger", "outcome"},
	)

	assignmentsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transitcoop_assignments_reset_records_total",
			Help: "Assignment records processed by resets",
		},
	)

	provisioningResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transitcoop_provisioning_results_total",
			Help: "Provisioned accounts by status",
		},
		[]string{"status"},
	)
)

// Middleware records request counts and latency labelled by chi route
// pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func ObserveReset(trigger string, processed int64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	assignmentResets.WithLabelValues(trigger, outcome).Inc()
	assignmentsProcessed.Add(float64(processed))
}

func ObserveProvisioning(status string) {
	provisioningResults.WithLabelValues(status).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	lifecycleTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifecycle_transitions_total",
			Help: "Total number of entity lifecycle transitions applied",
		},
		[]string{"entity", "action"},
	)

	notificationJobsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_jobs_dispatched_total",
			Help: "Total number of detached side-effect jobs dispatched",
		},
		[]string{"outcome"},
	)

	tokensRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registration_tokens_redeemed_total",
			Help: "Total number of registration tokens redeemed",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with count, duration and in-flight gauges.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordTransition(entityName, action string) {
	lifecycleTransitions.WithLabelValues(entityName, action).Inc()
}

func RecordDispatch(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	notificationJobsDispatched.WithLabelValues(outcome).Inc()
}

func RecordTokenRedemption() {
	tokensRedeemed.Inc()
}

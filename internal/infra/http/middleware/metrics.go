package middleware

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

	formsCaptured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "abandoned_forms_captured_total",
			Help: "Total number of abandoned form snapshots stored",
		},
	)

	recoveryEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recovery_emails_sent_total",
			Help: "Total number of recovery emails dispatched",
		},
		[]string{"template"},
	)

	emailOpens = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "email_opens_total",
			Help: "Total number of tracked email opens",
		},
	)

	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created",
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

func Metrics(next http.Handler) http.Handler {
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

func RecordFormCaptured() {
	formsCaptured.Inc()
}

func RecordRecoveryEmailSent(template string) {
	recoveryEmailsSent.WithLabelValues(template).Inc()
}

func RecordEmailOpen() {
	emailOpens.Inc()
}

func RecordBookingCreated() {
	bookingsCreated.Inc()
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes handler latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "clockwise_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status code",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// BalanceAdjustments counts committed leave balance mutations.
	BalanceAdjustments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clockwise_balance_adjustments_total",
		Help: "Total number of committed leave balance adjustments",
	})

	// NotificationsEmitted counts persisted notification events by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clockwise_notifications_emitted_total",
		Help: "Total number of notification events emitted by type",
	}, []string{"type"})

	// SweepRuns counts day-close sweep executions.
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clockwise_sweep_runs_total",
		Help: "Total number of day-close sweep runs",
	})

	// SweepMaterialized counts attendance records the sweep wrote.
	SweepMaterialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clockwise_sweep_records_materialized_total",
		Help: "Total number of attendance records materialized by the sweep",
	})

	// SweepErrors counts per-employee sweep failures.
	SweepErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clockwise_sweep_errors_total",
		Help: "Total number of day-close sweep failures",
	})
)

// Middleware records request duration for every routed request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestDuration.WithLabelValues(
			r.Method,
			route,
			strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}

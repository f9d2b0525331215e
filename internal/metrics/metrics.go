// internal/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wfl_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wfl_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BusReportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wfl_bus_reports_total",
			Help: "Total number of accepted bus location reports",
		},
	)

	BusesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wfl_buses_deleted_total",
			Help: "Total number of bus records removed by bulk delete",
		},
	)

	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wfl_store_errors_total",
			Help: "Total number of failed bus store operations",
		},
		[]string{"operation"},
	)

	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wfl_auth_failures_total",
			Help: "Total number of rejected admin requests",
		},
		[]string{"reason"}, // unauthorized, forbidden
	)

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wfl_websocket_clients",
			Help: "Current number of live-update websocket clients",
		},
	)
)

// RecordAPIRequest records one finished request. route is the matched
// pattern, not the raw path, to keep cardinality bounded.
func RecordAPIRequest(method, route, status string, d time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Package metrics holds the Prometheus collectors of the service.
//
// All collectors are registered on the default registry via promauto and
// exposed by the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lasercare"

// HTTP metrics
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks concurrent requests
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)
)

// Database metrics
var (
	// TxTotal counts finished transactions by outcome.
	TxTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "transactions_total",
			Help:      "Total number of database transactions by outcome",
		},
		[]string{"outcome"}, // committed, rolled_back, rollback_failed, commit_failed, begin_failed
	)

	txDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "transaction_duration_seconds",
			Help:      "Time from BEGIN to COMMIT/ROLLBACK in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	dbConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "connections",
			Help:      "Number of database connections",
		},
		[]string{"state"}, // idle, in_use, max
	)
)

// Transaction outcomes.
const (
	TxCommitted      = "committed"
	TxRolledBack     = "rolled_back"
	TxRollbackFailed = "rollback_failed"
	TxCommitFailed   = "commit_failed"
	TxBeginFailed    = "begin_failed"
)

// ObserveHTTPRequest records one finished request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration, size int) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	if size > 0 {
		httpResponseSize.WithLabelValues(method, path).Observe(float64(size))
	}
}

// ObserveTransaction records the outcome of one transaction.
func ObserveTransaction(outcome string, duration time.Duration) {
	TxTotal.WithLabelValues(outcome).Inc()
	txDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// UpdateDBConnections updates database connection metrics
func UpdateDBConnections(idle, inUse, max int32) {
	dbConnections.WithLabelValues("idle").Set(float64(idle))
	dbConnections.WithLabelValues("in_use").Set(float64(inUse))
	dbConnections.WithLabelValues("max").Set(float64(max))
}

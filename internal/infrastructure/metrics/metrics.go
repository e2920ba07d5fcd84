package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Backend metrics: every call against the remote data source
	BackendCalls    *prometheus.CounterVec
	BackendErrors   *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// Store metrics
	StoreCommands *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Balance write-skew: transaction rows whose follow-up balance
	// update failed on the two-step write path
	BalanceUpdateFailures prometheus.Counter
}

// New creates all metrics on the given registerer. Tests pass a fresh
// registry so registration never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BackendCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecopay_backend_calls_total",
				Help: "Total data source calls",
			},
			[]string{"backend", "operation"},
		),
		BackendErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecopay_backend_errors_total",
				Help: "Total failed data source calls",
			},
			[]string{"backend", "operation"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vecopay_backend_call_duration_seconds",
				Help:    "Data source call duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "operation"},
		),
		StoreCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecopay_store_commands_total",
				Help: "Total store commands executed",
			},
			[]string{"command"},
		),
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vecopay_auth_attempts_total",
				Help: "Total authentication attempts by outcome",
			},
			[]string{"status"},
		),
		BalanceUpdateFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "vecopay_balance_update_failures_total",
			Help: "Transactions created whose account balance update failed",
		}),
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus collectors
type Metrics struct {
	Registry *prometheus.Registry

	// TransfersTotal counts transfer attempts by outcome
	// (committed, rejected, failed)
	TransfersTotal *prometheus.CounterVec

	// TransferredAmount sums committed contribution amounts
	TransferredAmount prometheus.Counter

	// GoalsCompleted counts goals flipped to completed by a transfer or edit
	GoalsCompleted prometheus.Counter

	// HTTPDuration observes request latency by route and status
	HTTPDuration *prometheus.HistogramVec
}

// New creates the metric set on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		TransfersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goalvault",
			Name:      "transfers_total",
			Help:      "Number of transfer attempts by outcome.",
		}, []string{"outcome"}),
		TransferredAmount: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "goalvault",
			Name:      "transferred_amount_total",
			Help:      "Sum of committed contribution amounts.",
		}),
		GoalsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "goalvault",
			Name:      "goals_completed_total",
			Help:      "Number of goals that reached their target.",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "goalvault",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

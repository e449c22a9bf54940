package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels.
const (
	OpSearch = "search"
	OpList   = "list"
	OpGet    = "get"
)

// Pass labels for the two store passes of a paginated query.
const (
	PassCount = "count"
	PassPage  = "page"
)

// StatusOK labels a successful request; failures are labelled with their error kind.
const StatusOK = "ok"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total restaurant queries by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end restaurant query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	StorePassDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "store_pass_duration_seconds",
			Help:      "Duration of a single count or page pass in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"pass"},
	)

	SearchResultsTotal = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_matched_restaurants",
			Help:      "Restaurants matched by the shared filter prefix",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
		[]string{"operation"},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers the search metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(StorePassDuration)
		prometheus.MustRegister(SearchResultsTotal)
	})
}

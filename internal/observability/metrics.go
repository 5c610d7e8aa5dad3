package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the scholar search service.
// Counters and histograms are registered via promauto against the default
// registry; the resource label distinguishes works and authors searches.
type Metrics struct {
	// SearchesStarted counts searches initiated, labeled by resource.
	SearchesStarted *prometheus.CounterVec

	// SearchesCompleted counts successful searches, labeled by resource.
	SearchesCompleted *prometheus.CounterVec

	// SearchesFailed counts failed searches, labeled by resource and error kind.
	SearchesFailed *prometheus.CounterVec

	// SearchDuration observes search duration in seconds, labeled by resource.
	SearchDuration *prometheus.HistogramVec

	// ResultsPerSearch observes the number of results returned per search,
	// labeled by resource.
	ResultsPerSearch *prometheus.HistogramVec

	// UpstreamRequestsTotal counts individual HTTP request attempts sent
	// to the OpenAlex API, including retries.
	UpstreamRequestsTotal prometheus.Counter

	// UpstreamRequestsFailed counts HTTP request attempts that failed or
	// came back retryable (429, 5xx).
	UpstreamRequestsFailed prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SearchesStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_started_total",
			Help:      "Total number of searches started by resource",
		}, []string{"resource"}),
		SearchesCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_completed_total",
			Help:      "Total number of searches completed by resource",
		}, []string{"resource"}),
		SearchesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_failed_total",
			Help:      "Total number of searches that failed by resource and error kind",
		}, []string{"resource", "error"}),
		SearchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of searches in seconds by resource",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"resource"}),
		ResultsPerSearch: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "results_per_search",
			Help:      "Number of results returned per search by resource",
			Buckets:   []float64{0, 1, 5, 10, 25, 50},
		}, []string{"resource"}),
		UpstreamRequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of HTTP requests sent to the OpenAlex API",
		}),
		UpstreamRequestsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of HTTP requests to the OpenAlex API that failed",
		}),
	}
}

// RecordSearchStarted records the start of a search for the given resource.
func (m *Metrics) RecordSearchStarted(resource string) {
	m.SearchesStarted.WithLabelValues(resource).Inc()
}

// RecordSearchCompleted records a successful search with its duration and
// result count.
func (m *Metrics) RecordSearchCompleted(resource string, durationSeconds float64, results int) {
	m.SearchesCompleted.WithLabelValues(resource).Inc()
	m.SearchDuration.WithLabelValues(resource).Observe(durationSeconds)
	m.ResultsPerSearch.WithLabelValues(resource).Observe(float64(results))
}

// RecordSearchFailed records a failed search with its error kind.
func (m *Metrics) RecordSearchFailed(resource, errorKind string) {
	m.SearchesFailed.WithLabelValues(resource, errorKind).Inc()
}

// RecordUpstreamRequest records one HTTP request attempt to the upstream API.
func (m *Metrics) RecordUpstreamRequest() {
	m.UpstreamRequestsTotal.Inc()
}

// RecordUpstreamFailure records one failed HTTP request attempt.
func (m *Metrics) RecordUpstreamFailure() {
	m.UpstreamRequestsFailed.Inc()
}

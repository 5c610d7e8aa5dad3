package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: prometheus/promauto registers metrics globally, so we need to use
// unique namespaces per test to avoid registration conflicts.

func TestNewMetrics(t *testing.T) {
	m := NewMetrics("test_scholar_search_new")

	assert.NotNil(t, m.SearchesStarted)
	assert.NotNil(t, m.SearchesCompleted)
	assert.NotNil(t, m.SearchesFailed)
	assert.NotNil(t, m.SearchDuration)
	assert.NotNil(t, m.ResultsPerSearch)
	assert.NotNil(t, m.UpstreamRequestsTotal)
	assert.NotNil(t, m.UpstreamRequestsFailed)
}

func TestRecordSearchStarted(t *testing.T) {
	m := NewMetrics("test_search_started")

	m.RecordSearchStarted("works")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesStarted.WithLabelValues("works")))

	m.RecordSearchStarted("authors")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesStarted.WithLabelValues("authors")))
}

func TestRecordSearchCompleted(t *testing.T) {
	m := NewMetrics("test_search_completed")

	m.RecordSearchCompleted("works", 0.4, 25)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesCompleted.WithLabelValues("works")))

	count, err := histogramSampleCount(m.SearchDuration.WithLabelValues("works"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	count, err = histogramSampleCount(m.ResultsPerSearch.WithLabelValues("works"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestRecordSearchFailed(t *testing.T) {
	m := NewMetrics("test_search_failed")

	m.RecordSearchFailed("authors", "upstream")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchesFailed.WithLabelValues("authors", "upstream")))
}

func TestRecordUpstreamRequests(t *testing.T) {
	m := NewMetrics("test_upstream_requests")

	m.RecordUpstreamRequest()
	m.RecordUpstreamRequest()
	m.RecordUpstreamFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamRequestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequestsFailed))
}

// histogramSampleCount extracts the sample count from a histogram observer.
func histogramSampleCount(o prometheus.Observer) (uint64, error) {
	metric, ok := o.(prometheus.Metric)
	if !ok {
		return 0, assert.AnError
	}

	var pb dto.Metric
	if err := metric.Write(&pb); err != nil {
		return 0, err
	}
	return pb.GetHistogram().GetSampleCount(), nil
}

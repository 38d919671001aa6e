package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAnalysis(t *testing.T) {
	m := NewAnalysisMetrics("test")

	m.ObserveAnalysis(OutcomeSuccess, time.Now(), 12)
	m.ObserveAnalysis(OutcomeRejected, time.Now(), 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.MessagesAnalyzed))
}

func TestObserveReportAndCache(t *testing.T) {
	m := NewAnalysisMetrics("test")
	score := 72.5

	m.ObserveReport(OutcomeSuccess, &score)
	m.ObserveReport(OutcomeSuccess, nil)
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveRetry()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 72.5, testutil.ToFloat64(m.HealthScore))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportCacheTotal.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistRetriesTotal))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *AnalysisMetrics
	assert.NotPanics(t, func() {
		m.ObserveAnalysis(OutcomeFailed, time.Now(), 3)
		m.ObserveRetry()
		m.ObserveReport(OutcomeFailed, nil)
		m.ObserveCache(true)
	})
}

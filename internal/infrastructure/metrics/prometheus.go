package metrics

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Outcome labels for analysis and report counters
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// AnalysisMetrics holds the Prometheus metrics of the analysis service
type AnalysisMetrics struct {
	registry *prometheus.Registry

	AnalysesTotal       *prometheus.CounterVec
	AnalysisSeconds     prometheus.Histogram
	MessagesAnalyzed    prometheus.Counter
	PersistRetriesTotal prometheus.Counter
	ReportsTotal        *prometheus.CounterVec
	ReportCacheTotal    *prometheus.CounterVec
	HealthScore         prometheus.Gauge
}

// NewAnalysisMetrics creates the metric set on a dedicated registry
func NewAnalysisMetrics(namespace string) *AnalysisMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &AnalysisMetrics{
		registry: reg,
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meeting_analyses_total",
				Help:      "Transcript analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "meeting_analysis_seconds",
				Help:      "Latency of a full analysis pass including persistence",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
		),
		MessagesAnalyzed: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_analyzed_total",
				Help:      "Utterances scored by the message analyzer",
			},
		),
		PersistRetriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persist_retries_total",
				Help:      "Persistence passes retried after a transient conflict",
			},
		),
		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "team_reports_total",
				Help:      "Team reports built by outcome",
			},
			[]string{"outcome"},
		),
		ReportCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "team_report_cache_total",
				Help:      "Team report cache lookups by result",
			},
			[]string{"result"},
		),
		HealthScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "team_health_score",
				Help:      "Health index of the most recently built team report",
			},
		),
	}
}

// Registry returns the registry holding the analysis metrics
func (m *AnalysisMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDB exposes connection pool statistics for db
func (m *AnalysisMetrics) RegisterDB(db *sql.DB, name string) error {
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// ObserveAnalysis records one finished analysis
func (m *AnalysisMetrics) ObserveAnalysis(outcome string, started time.Time, messages int) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalysisSeconds.Observe(time.Since(started).Seconds())
	if messages > 0 {
		m.MessagesAnalyzed.Add(float64(messages))
	}
}

// ObserveRetry records a retried persistence pass
func (m *AnalysisMetrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.PersistRetriesTotal.Inc()
}

// ObserveReport records a team report build and the health score it produced
func (m *AnalysisMetrics) ObserveReport(outcome string, health *float64) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(outcome).Inc()
	if health != nil {
		m.HealthScore.Set(*health)
	}
}

// ObserveCache records a report cache hit or miss
func (m *AnalysisMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ReportCacheTotal.WithLabelValues(result).Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled
func (m *AnalysisMetrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if logger != nil {
		logger.Info("📈 Serving metrics", zap.String("addr", addr))
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

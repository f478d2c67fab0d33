package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the crawler.
type Metrics struct {
	PagesFetched    prometheus.Counter
	FetchFailures   *prometheus.CounterVec
	ReportsArchived prometheus.Counter
	ErrorsTotal     *prometheus.CounterVec
	FrontierSize    prometheus.Gauge
	CrawlDuration   prometheus.Histogram
}

// NewMetrics registers the crawler metrics with reg. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PagesFetched: factory.NewCounter(prometheus.CounterOpts{
			Name: "crawler_pages_fetched_total",
			Help: "The total number of pages fetched successfully",
		}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_fetch_failures_total",
			Help: "The total number of fetch failures by reason",
		}, []string{"reason"}),
		ReportsArchived: factory.NewCounter(prometheus.CounterOpts{
			Name: "crawler_reports_archived_total",
			Help: "The total number of report pages archived to disk",
		}),
		ErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "crawler_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g., 'archive_failed', 'run_failed'
		FrontierSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "crawler_frontier_size",
			Help: "Number of URLs queued for the current depth level",
		}),
		CrawlDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "crawler_run_duration_seconds",
			Help:    "Duration of full crawl runs",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
}

func (m *Metrics) IncFetchFailure(reason string) {
	m.FetchFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

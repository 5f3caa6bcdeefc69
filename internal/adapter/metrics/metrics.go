package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExtractMetrics holds all Prometheus metrics for the extract service.
type ExtractMetrics struct {
	IndexBuildsTotal    prometheus.Counter
	CacheResultsTotal   *prometheus.CounterVec
	LinesExtractedTotal prometheus.Counter
	BytesScannedTotal   prometheus.Counter
	ExtractDuration     prometheus.Histogram
}

// NewExtractMetrics initializes and registers the Prometheus metrics.
func NewExtractMetrics() *ExtractMetrics {
	return &ExtractMetrics{
		IndexBuildsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "log_extractor",
			Subsystem: "index",
			Name:      "builds_total",
			Help:      "Total number of full index builds.",
		}),
		CacheResultsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "log_extractor",
			Subsystem: "index",
			Name:      "cache_results_total",
			Help:      "Total number of index cache lookups by result.",
		}, []string{"result"}), // result: hit, miss, stale, corrupt
		LinesExtractedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "log_extractor",
			Subsystem: "extract",
			Name:      "lines_total",
			Help:      "Total number of lines written to extraction output.",
		}),
		BytesScannedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "log_extractor",
			Subsystem: "index",
			Name:      "bytes_scanned_total",
			Help:      "Total number of source bytes read during index builds.",
		}),
		ExtractDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "log_extractor",
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Wall time of extraction queries.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

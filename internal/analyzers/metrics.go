package analyzers

import (
	"cdn-insights/internal/shared/metrics"
)

var (
	metricBatchAnalyzedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "batch_analyzed_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricBatchEntries observes the number of log records per analyzed batch.
	metricBatchEntries = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "batch_entries",
			Buckets:   metrics.ExponentialBuckets(1, 4, 10),
		},
		[]string{},
	)

	// metricBatchEndpoints observes the number of distinct endpoint URLs per analyzed batch.
	metricBatchEndpoints = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "batch_endpoints",
			Buckets:   metrics.ExponentialBuckets(1, 2, 12),
		},
		[]string{},
	)
)

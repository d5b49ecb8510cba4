package aggregators

import (
	"cdn-insights/internal/shared/metrics"
)

// metricAggregatedRecordsTotal counts the log records folded into endpoint accumulators.
//
// The cache_status label carries the normalized cache outcome of the record (HIT, MISS, EXPIRED,
// BYPASS, STALE, UPDATING, REVALIDATED). Any other value is reported as OTHER so that the label
// cardinality stays bounded no matter what the CDN sends.
var (
	metricAggregatedRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_total",
		},
		[]string{"cache_status"},
	)
)

package streams

import (
	"cdn-insights/internal/shared/metrics"
)

var (
	metricMessagesPublishedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "messages_published_total",
		},
		[]string{"queue", "partition"},
	)

	metricOpenPartitions = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "open_partitions",
		},
		[]string{"queue"},
	)
)

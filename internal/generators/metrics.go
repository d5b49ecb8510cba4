package generators

import (
	"cdn-insights/internal/shared/metrics"
)

var (
	// metricEntriesGeneratedTotal counts the synthetic log entries written per scenario.
	metricEntriesGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGenerator,
			Name:      "entries_generated_total",
		},
		[]string{"scenario"},
	)
)

package statistics

import (
	"math"
	"slices"

	"cdn-insights/internal/models"
)

const (
	fractionMedian = 0.5
	fractionP95    = 0.95
	fractionP99    = 0.99
)

// Compute derives mean, median, p95 and p99 from samples. samples is not modified.
//
// Percentiles use linear interpolation between adjacent ranks of the sorted samples:
//
//	idx = p * (n - 1), result = sorted[floor(idx)]*(1-w) + sorted[ceil(idx)]*w, w = idx - floor(idx)
func Compute(samples []float64) models.Statistics {
	switch len(samples) {
	case 0:
		return models.Statistics{}
	case 1:
		v := samples[0]
		return models.Statistics{Median: v, Mean: v, NinetyFifthPercentile: v, NinetyNinthPercentile: v}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	return models.Statistics{
		Median:                percentile(sorted, fractionMedian),
		Mean:                  Mean(samples),
		NinetyFifthPercentile: percentile(sorted, fractionP95),
		NinetyNinthPercentile: percentile(sorted, fractionP99),
	}
}

// Mean returns the arithmetic mean of samples, or 0 when samples is empty.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func percentile(sorted []float64, p float64) float64 {
	idx := p * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

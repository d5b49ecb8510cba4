package statistics

import (
	"math/rand/v2"

	"cdn-insights/internal/models"
)

const reservoirSeed = 0x5eed_cd17

// Series collects the samples of one numeric dimension.
//
// With limit <= 0 every sample is retained and Statistics is exact. With limit > 0 the series
// keeps a uniform reservoir of at most limit samples (Algorithm R). The mean stays exact because
// it is computed from a running sum; percentiles come from the reservoir and are approximate
// once more than limit samples were added.
type Series struct {
	limit   int
	count   int64
	sum     float64
	samples []float64
	rng     *rand.Rand
}

func NewSeries(limit int) *Series {
	return &Series{limit: limit}
}

func (s *Series) Add(v float64) {
	s.count++
	s.sum += v

	if s.limit <= 0 || len(s.samples) < s.limit {
		s.samples = append(s.samples, v)
		return
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(reservoirSeed, uint64(s.limit)))
	}
	if j := s.rng.Int64N(s.count); j < int64(s.limit) {
		s.samples[j] = v
	}
}

// Count returns the number of samples added, retained or not.
func (s *Series) Count() int64 {
	return s.count
}

// Retained returns the samples currently held by the series.
func (s *Series) Retained() []float64 {
	return s.samples
}

// Mean returns the exact mean of every sample added.
func (s *Series) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Sampled reports whether percentiles are computed from a reservoir rather than all samples.
func (s *Series) Sampled() bool {
	return s.count > int64(len(s.samples))
}

func (s *Series) Statistics() models.Statistics {
	stats := Compute(s.samples)
	if s.Sampled() {
		stats.Mean = s.Mean()
	}
	return stats
}

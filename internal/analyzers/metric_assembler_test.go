package analyzers

import (
	"testing"

	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/models"
	"cdn-insights/internal/summarizers"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(1e-12, 1e-9)

func strPtr(s string) *string {
	return &s
}

func entry(url string, mutate func(e *models.LogEntry)) *models.LogEntry {
	e := &models.LogEntry{
		URL:                url,
		Method:             models.MethodGet,
		EdgeResponseStatus: 200,
		CacheStatus:        models.CacheHit,
		WAFAction:          models.WAFAllow,
		ASN:                13335,
	}
	if mutate != nil {
		mutate(e)
	}
	return e
}

func assemble(entries []*models.LogEntry) []models.EndpointMetric {
	assembler := NewMetricAssembler(summarizers.NewTopKSummarizer(summarizers.DefaultConfig()))
	return assembler.Assemble(aggregators.NewAggregator(0).Aggregate(entries))
}

func TestMetricAssembler_CacheOutcomes(t *testing.T) {
	t.Parallel()

	var entries []*models.LogEntry
	for _, status := range []models.CacheStatus{"HIT", "MISS", "HIT", "EXPIRED", "BYPASS"} {
		entries = append(entries, entry("/api/endpoint", func(e *models.LogEntry) { e.CacheStatus = status }))
	}

	metrics := assemble(entries)

	require.Len(t, metrics, 1)
	m := metrics[0]
	assert.Equal(t, "/api/endpoint", m.EndpointURL)
	assert.Equal(t, int64(5), m.TotalRequests)
	assert.Equal(t, int64(2), m.CacheHits)
	assert.Equal(t, int64(1), m.CacheMisses)
	assert.Equal(t, int64(1), m.CacheExpires)
	assert.Equal(t, int64(1), m.CacheBypasses)
	assert.Equal(t, int64(0), m.CacheStale)
}

func TestMetricAssembler_ByteStatistics(t *testing.T) {
	t.Parallel()

	var entries []*models.LogEntry
	for _, b := range []float64{1000, 2000, 3000} {
		entries = append(entries, entry("/bytes", func(e *models.LogEntry) { e.Bytes = b }))
	}

	m := assemble(entries)[0]

	assert.Equal(t, 2000.0, m.ByteAmounts.Mean)
	assert.Equal(t, 2000.0, m.ByteAmounts.Median)
	assert.Empty(t, cmp.Diff(models.Statistics{Median: 2000, Mean: 2000, NinetyFifthPercentile: 2900, NinetyNinthPercentile: 2980}, m.ByteAmounts, approx))
}

func TestMetricAssembler_SplitsByURL(t *testing.T) {
	t.Parallel()

	metrics := assemble([]*models.LogEntry{entry("/a", nil), entry("/b", nil), entry("/a", nil)})

	require.Len(t, metrics, 2)
	byURL := map[string]int64{}
	for _, m := range metrics {
		byURL[m.EndpointURL] = m.TotalRequests
	}
	assert.Equal(t, map[string]int64{"/a": 2, "/b": 1}, byURL)
}

func TestMetricAssembler_Distributions(t *testing.T) {
	t.Parallel()

	entries := []*models.LogEntry{
		entry("/waf", nil),
		entry("/waf", nil),
		entry("/waf", func(e *models.LogEntry) {
			e.WAFAction = models.WAFBlock
			e.EdgeResponseStatus = 403
			e.Method = models.MethodPost
		}),
	}

	m := assemble(entries)[0]

	assert.Equal(t, map[string]int64{"ALLOW": 2, "BLOCK": 1}, m.WAFActions)
	assert.Equal(t, map[int]int64{200: 2, 403: 1}, m.StatusCodeDistribution)
	assert.Equal(t, map[string]int64{"GET": 2, "POST": 1}, m.MethodDistribution)
	assert.Equal(t, map[int]int64{13335: 3}, m.TopASNs)
}

func TestMetricAssembler_EmptyInput(t *testing.T) {
	t.Parallel()

	metrics := assemble(nil)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
}

func TestMetricAssembler_NoOriginIP(t *testing.T) {
	t.Parallel()

	var entries []*models.LogEntry
	for range 6 {
		entries = append(entries, entry("/edge-only", func(e *models.LogEntry) { e.OriginIP = nil }))
	}

	m := assemble(entries)[0]

	assert.NotNil(t, m.OriginIPDistribution)
	assert.Empty(t, m.OriginIPDistribution)
	assert.Equal(t, map[string]models.QueryParamStats{
		aggregators.NoQueryKey: {Requests: 6, CacheHitRate: 1, AvgResponseMs: 0},
	}, m.QueryParamImpact)
}

func TestMetricAssembler_OriginAndQueryImpact(t *testing.T) {
	t.Parallel()

	var entries []*models.LogEntry
	for i := range 10 {
		entries = append(entries, entry("/api/slow", func(e *models.LogEntry) {
			e.OriginIP = strPtr("192.0.2.1")
			e.OriginResponseDurationMs = 100
			e.ResponseTimeMs = 150
			e.ClientRequestQuery = "?nocache=1"
			e.CacheStatus = models.CacheMiss
			if i < 3 {
				e.EdgeResponseStatus = 502
			}
		}))
	}
	// Below the request threshold
	for range 4 {
		entries = append(entries, entry("/api/slow", func(e *models.LogEntry) {
			e.OriginIP = strPtr("198.51.100.1")
			e.ClientRequestQuery = "?rare=1"
		}))
	}

	m := assemble(entries)[0]

	assert.Empty(t, cmp.Diff(map[string]models.OriginIPStats{
		"192.0.2.1": {Requests: 10, AvgResponseMs: 100, ServerErrorRate: 0.3},
	}, m.OriginIPDistribution, approx))
	assert.Empty(t, cmp.Diff(map[string]models.QueryParamStats{
		"?nocache=1": {Requests: 10, CacheHitRate: 0, AvgResponseMs: 150},
	}, m.QueryParamImpact, approx))
}

func TestMetricAssembler_OutputMapsAreIndependent(t *testing.T) {
	t.Parallel()

	endpoints := aggregators.NewAggregator(0).Aggregate([]*models.LogEntry{entry("/a", nil)})
	assembler := NewMetricAssembler(summarizers.NewTopKSummarizer(summarizers.DefaultConfig()))

	m := assembler.Assemble(endpoints)[0]
	m.WAFActions["ALLOW"] = 100

	acc, _ := endpoints.Get("/a")
	assert.Equal(t, int64(1), acc.WAFActions["ALLOW"])
}

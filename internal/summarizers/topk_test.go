package summarizers

import (
	"fmt"
	"testing"

	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/models"
	"cdn-insights/internal/statistics"

	"github.com/stretchr/testify/assert"
)

func asnCounter(counts ...[2]int) *aggregators.Counter[int] {
	c := aggregators.NewCounter[int]()
	for _, kv := range counts {
		for range kv[1] {
			c.Inc(kv[0])
		}
	}
	return c
}

type originSpec struct {
	ip           string
	requests     int
	clientErrors int64
	serverErrors int64
	responseMs   float64
}

func originMap(specs ...originSpec) *aggregators.OrderedMap[string, *aggregators.OriginIPAccumulator] {
	m := aggregators.NewOrderedMap[string, *aggregators.OriginIPAccumulator]()
	for _, spec := range specs {
		acc := m.Upsert(spec.ip, func() *aggregators.OriginIPAccumulator {
			return &aggregators.OriginIPAccumulator{ResponseTimes: statistics.NewSeries(0)}
		})
		acc.Requests += int64(spec.requests)
		acc.ClientErrors += spec.clientErrors
		acc.ServerErrors += spec.serverErrors
		for range spec.requests {
			acc.ResponseTimes.Add(spec.responseMs)
		}
	}
	return m
}

func TestTopKSummarizer_TopASNs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      Config
		counter  *aggregators.Counter[int]
		expected map[int]int64
	}{
		{
			name:     "empty",
			cfg:      DefaultConfig(),
			counter:  aggregators.NewCounter[int](),
			expected: map[int]int64{},
		},
		{
			name:     "no threshold for ASNs",
			cfg:      DefaultConfig(),
			counter:  asnCounter([2]int{15169, 1}, [2]int{13335, 2}),
			expected: map[int]int64{15169: 1, 13335: 2},
		},
		{
			name:     "keeps top k by count",
			cfg:      Config{TopASNs: 2},
			counter:  asnCounter([2]int{1, 1}, [2]int{2, 5}, [2]int{3, 3}, [2]int{4, 4}),
			expected: map[int]int64{2: 5, 4: 4},
		},
		{
			name:     "ties resolve by first-seen order",
			cfg:      Config{TopASNs: 2},
			counter:  asnCounter([2]int{8075, 3}, [2]int{16509, 3}, [2]int{20940, 3}),
			expected: map[int]int64{8075: 3, 16509: 3},
		},
		{
			name:     "ties ignore numeric ASN order",
			cfg:      Config{TopASNs: 2},
			counter:  asnCounter([2]int{20940, 3}, [2]int{8075, 3}, [2]int{16509, 3}),
			expected: map[int]int64{20940: 3, 8075: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NewTopKSummarizer(tt.cfg).TopASNs(tt.counter)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTopKSummarizer_TopASNs_DefaultLimit(t *testing.T) {
	t.Parallel()

	c := aggregators.NewCounter[int]()
	for asn := 1; asn <= 25; asn++ {
		for range asn {
			c.Inc(asn)
		}
	}

	got := NewTopKSummarizer(DefaultConfig()).TopASNs(c)

	assert.Len(t, got, 10)
	for asn := 16; asn <= 25; asn++ {
		assert.Equal(t, int64(asn), got[asn])
	}
}

func TestTopKSummarizer_TopOriginIPs(t *testing.T) {
	t.Parallel()

	origins := originMap(
		originSpec{ip: "192.0.2.1", requests: 10, clientErrors: 2, serverErrors: 1, responseMs: 100},
		originSpec{ip: "192.0.2.2", requests: 4, responseMs: 50},
		originSpec{ip: "192.0.2.3", requests: 5, serverErrors: 5, responseMs: 2000},
		originSpec{ip: "198.51.100.1", requests: 20, responseMs: 10},
	)

	got := NewTopKSummarizer(Config{TopOriginIPs: 2, MinRequests: 5}).TopOriginIPs(origins)

	assert.Equal(t, map[string]models.OriginIPStats{
		"198.51.100.1": {Requests: 20, AvgResponseMs: 10},
		"192.0.2.1":    {Requests: 10, AvgResponseMs: 100, ClientErrorRate: 0.2, ServerErrorRate: 0.1},
	}, got)
}

func TestTopKSummarizer_TopOriginIPs_Threshold(t *testing.T) {
	t.Parallel()

	origins := originMap(
		originSpec{ip: "192.0.2.1", requests: 4, responseMs: 100},
		originSpec{ip: "192.0.2.2", requests: 5, serverErrors: 5, responseMs: 2000},
	)

	got := NewTopKSummarizer(DefaultConfig()).TopOriginIPs(origins)

	assert.Equal(t, map[string]models.OriginIPStats{
		"192.0.2.2": {Requests: 5, AvgResponseMs: 2000, ServerErrorRate: 1},
	}, got)
}

func TestTopKSummarizer_TopQueryParams(t *testing.T) {
	t.Parallel()

	queries := aggregators.NewOrderedMap[string, *aggregators.QueryParamAccumulator]()
	add := func(query string, requests, hits int64, responseMs float64) {
		acc := queries.Upsert(query, func() *aggregators.QueryParamAccumulator {
			return &aggregators.QueryParamAccumulator{ResponseTimes: statistics.NewSeries(0)}
		})
		acc.Requests += requests
		acc.CacheHits += hits
		for range requests {
			acc.ResponseTimes.Add(responseMs)
		}
	}
	add(aggregators.NoQueryKey, 8, 8, 20)
	add("?nocache=1", 6, 0, 400)
	add("?page=2", 3, 3, 10)

	got := NewTopKSummarizer(DefaultConfig()).TopQueryParams(queries)

	assert.Equal(t, map[string]models.QueryParamStats{
		aggregators.NoQueryKey: {Requests: 8, CacheHitRate: 1, AvgResponseMs: 20},
		"?nocache=1":           {Requests: 6, CacheHitRate: 0, AvgResponseMs: 400},
	}, got)
}

func TestTopKSummarizer_TopQueryParams_Limit(t *testing.T) {
	t.Parallel()

	queries := aggregators.NewOrderedMap[string, *aggregators.QueryParamAccumulator]()
	for i := range 15 {
		acc := queries.Upsert(fmt.Sprintf("?id=%d", i), func() *aggregators.QueryParamAccumulator {
			return &aggregators.QueryParamAccumulator{ResponseTimes: statistics.NewSeries(0)}
		})
		acc.Requests = int64(5 + i)
	}

	got := NewTopKSummarizer(DefaultConfig()).TopQueryParams(queries)

	assert.Len(t, got, 10)
	assert.Contains(t, got, "?id=14")
	assert.Contains(t, got, "?id=5")
	assert.NotContains(t, got, "?id=4")
	assert.Zero(t, got["?id=14"].AvgResponseMs)
}

func TestTopKSummarizer_TopUserAgents(t *testing.T) {
	t.Parallel()

	c := aggregators.NewCounter[string]()
	for _, ua := range []string{"Chrome", "curl", "Firefox", "Chrome", "Firefox", "Chrome"} {
		c.Inc(ua)
	}

	got := NewTopKSummarizer(Config{TopUserAgents: 2}).TopUserAgents(c)

	assert.Equal(t, map[string]int64{"Chrome": 3, "Firefox": 2}, got)
}

func TestRank(t *testing.T) {
	t.Parallel()

	counts := map[string]int64{"a": 1, "b": 3, "c": 3, "d": 7, "e": 0}
	count := func(k string) int64 { return counts[k] }
	keys := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name     string
		minCount int64
		k        int
		expected []string
	}{
		{name: "all", minCount: 0, k: 10, expected: []string{"d", "b", "c", "a", "e"}},
		{name: "threshold", minCount: 3, k: 10, expected: []string{"d", "b", "c"}},
		{name: "limit", minCount: 0, k: 2, expected: []string{"d", "b"}},
		{name: "zero k", minCount: 0, k: 0, expected: nil},
		{name: "nothing passes threshold", minCount: 100, k: 5, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, rank(keys, count, tt.minCount, tt.k))
		})
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys, "input keys must not be reordered")
}

package summarizers

import (
	"slices"

	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/models"
)

// Config holds the rank limits and the request threshold used by the Top-K summaries.
type Config struct {
	TopASNs        int
	TopOriginIPs   int
	TopQueryParams int
	TopUserAgents  int
	// MinRequests drops origin IPs and query strings seen fewer times than this.
	MinRequests int64
}

func DefaultConfig() Config {
	return Config{
		TopASNs:        10,
		TopOriginIPs:   5,
		TopQueryParams: 10,
		TopUserAgents:  10,
		MinRequests:    5,
	}
}

//go:generate mockgen -source=topk.go -destination=./mocks/topk_mock.go -package=mocks
type TopKSummarizer interface {
	TopASNs(asns *aggregators.Counter[int]) map[int]int64
	TopOriginIPs(origins *aggregators.OrderedMap[string, *aggregators.OriginIPAccumulator]) map[string]models.OriginIPStats
	TopQueryParams(queries *aggregators.OrderedMap[string, *aggregators.QueryParamAccumulator]) map[string]models.QueryParamStats
	TopUserAgents(agents *aggregators.Counter[string]) map[string]int64
}

type topKSummarizer struct {
	cfg Config
}

func NewTopKSummarizer(cfg Config) TopKSummarizer {
	return &topKSummarizer{cfg: cfg}
}

// TopASNs keeps the TopASNs most frequent ASNs. No request threshold applies.
func (s *topKSummarizer) TopASNs(asns *aggregators.Counter[int]) map[int]int64 {
	top := rank(asns.Keys(), asns.Count, 0, s.cfg.TopASNs)

	out := make(map[int]int64, len(top))
	for _, asn := range top {
		out[asn] = asns.Count(asn)
	}
	return out
}

// TopOriginIPs keeps the busiest origin IPs with at least MinRequests requests.
func (s *topKSummarizer) TopOriginIPs(origins *aggregators.OrderedMap[string, *aggregators.OriginIPAccumulator]) map[string]models.OriginIPStats {
	requests := func(ip string) int64 {
		acc, _ := origins.Get(ip)
		return acc.Requests
	}
	top := rank(origins.Keys(), requests, s.cfg.MinRequests, s.cfg.TopOriginIPs)

	out := make(map[string]models.OriginIPStats, len(top))
	for _, ip := range top {
		acc, _ := origins.Get(ip)
		out[ip] = models.OriginIPStats{
			Requests:        acc.Requests,
			AvgResponseMs:   acc.ResponseTimes.Mean(),
			ClientErrorRate: ratio(acc.ClientErrors, acc.Requests),
			ServerErrorRate: ratio(acc.ServerErrors, acc.Requests),
		}
	}
	return out
}

// TopQueryParams keeps the most requested query strings with at least MinRequests requests.
func (s *topKSummarizer) TopQueryParams(queries *aggregators.OrderedMap[string, *aggregators.QueryParamAccumulator]) map[string]models.QueryParamStats {
	requests := func(query string) int64 {
		acc, _ := queries.Get(query)
		return acc.Requests
	}
	top := rank(queries.Keys(), requests, s.cfg.MinRequests, s.cfg.TopQueryParams)

	out := make(map[string]models.QueryParamStats, len(top))
	for _, query := range top {
		acc, _ := queries.Get(query)
		out[query] = models.QueryParamStats{
			Requests:      acc.Requests,
			CacheHitRate:  ratio(acc.CacheHits, acc.Requests),
			AvgResponseMs: acc.ResponseTimes.Mean(),
		}
	}
	return out
}

// TopUserAgents keeps the TopUserAgents most frequent user-agent families.
func (s *topKSummarizer) TopUserAgents(agents *aggregators.Counter[string]) map[string]int64 {
	top := rank(agents.Keys(), agents.Count, 0, s.cfg.TopUserAgents)

	out := make(map[string]int64, len(top))
	for _, ua := range top {
		out[ua] = agents.Count(ua)
	}
	return out
}

// rank returns up to k keys with count >= minCount, ordered by count descending.
// keys must be in first-seen order; equal counts keep that order.
func rank[K comparable](keys []K, count func(K) int64, minCount int64, k int) []K {
	if k <= 0 {
		return nil
	}

	ranked := make([]K, 0, len(keys))
	for _, key := range keys {
		if count(key) >= minCount {
			ranked = append(ranked, key)
		}
	}

	slices.SortStableFunc(ranked, func(a, b K) int {
		ca, cb := count(a), count(b)
		switch {
		case ca > cb:
			return -1
		case ca < cb:
			return 1
		}
		return 0
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

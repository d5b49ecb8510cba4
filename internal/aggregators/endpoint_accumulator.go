package aggregators

import (
	"cdn-insights/internal/statistics"
)

// OriginIPAccumulator tracks the requests one endpoint sent to one origin IP.
type OriginIPAccumulator struct {
	Requests      int64
	ResponseTimes *statistics.Series
	ClientErrors  int64 // 4xx
	ServerErrors  int64 // 5xx
}

// QueryParamAccumulator tracks the requests one endpoint received with one query string.
type QueryParamAccumulator struct {
	Requests      int64
	CacheHits     int64
	ResponseTimes *statistics.Series
}

// EndpointAccumulator holds the raw counts and samples for one endpoint URL during a single
// aggregation pass. It is discarded once the endpoint metric is assembled.
type EndpointAccumulator struct {
	URL string

	Requests      int64
	CacheHits     int64
	CacheMisses   int64
	CacheExpires  int64
	CacheBypasses int64
	CacheStale    int64

	Bytes           *statistics.Series
	OriginDurations *statistics.Series
	BotScores       *statistics.Series
	ThreatScores    *statistics.Series

	WAFActions  map[string]int64
	StatusCodes map[int]int64
	Methods     map[string]int64

	ASNs        *Counter[int]
	UserAgents  *Counter[string]
	OriginIPs   *OrderedMap[string, *OriginIPAccumulator]
	QueryParams *OrderedMap[string, *QueryParamAccumulator]

	maxSamples int
}

func newEndpointAccumulator(url string, maxSamples int) *EndpointAccumulator {
	return &EndpointAccumulator{
		URL:             url,
		Bytes:           statistics.NewSeries(maxSamples),
		OriginDurations: statistics.NewSeries(maxSamples),
		BotScores:       statistics.NewSeries(maxSamples),
		ThreatScores:    statistics.NewSeries(maxSamples),
		WAFActions:      make(map[string]int64),
		StatusCodes:     make(map[int]int64),
		Methods:         make(map[string]int64),
		ASNs:            NewCounter[int](),
		UserAgents:      NewCounter[string](),
		OriginIPs:       NewOrderedMap[string, *OriginIPAccumulator](),
		QueryParams:     NewOrderedMap[string, *QueryParamAccumulator](),
		maxSamples:      maxSamples,
	}
}

func (acc *EndpointAccumulator) originIP(ip string) *OriginIPAccumulator {
	return acc.OriginIPs.Upsert(ip, func() *OriginIPAccumulator {
		return &OriginIPAccumulator{ResponseTimes: statistics.NewSeries(acc.maxSamples)}
	})
}

func (acc *EndpointAccumulator) queryParam(query string) *QueryParamAccumulator {
	return acc.QueryParams.Upsert(query, func() *QueryParamAccumulator {
		return &QueryParamAccumulator{ResponseTimes: statistics.NewSeries(acc.maxSamples)}
	})
}

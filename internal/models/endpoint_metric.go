package models

// Statistics summarizes one numeric sample series.
type Statistics struct {
	Median                float64 `json:"Median"`
	Mean                  float64 `json:"Mean"`
	NinetyFifthPercentile float64 `json:"NinetyFifthPercentile"`
	NinetyNinthPercentile float64 `json:"NinetyNinthPercentile"`
}

type OriginIPStats struct {
	Requests        int64   `json:"requests"`
	AvgResponseMs   float64 `json:"avgResponseMs"`
	ClientErrorRate float64 `json:"clientErrorRate"` // 4xx / requests
	ServerErrorRate float64 `json:"serverErrorRate"` // 5xx / requests
}

type QueryParamStats struct {
	Requests      int64   `json:"requests"`
	CacheHitRate  float64 `json:"cacheHitRate"`
	AvgResponseMs float64 `json:"avgResponseMs"`
}

// EndpointMetric is the per-URL result of one analysis call.
//
// WAFActions, StatusCodeDistribution and MethodDistribution are complete. TopASNs,
// OriginIPDistribution, QueryParamImpact and TopUserAgents are bounded top-K views.
type EndpointMetric struct {
	EndpointURL   string `json:"EndpointURL"`
	TotalRequests int64  `json:"TotalRequests"`
	CacheHits     int64  `json:"CacheHits"`
	CacheMisses   int64  `json:"CacheMisses"`
	CacheExpires  int64  `json:"CacheExpires"`
	CacheBypasses int64  `json:"CacheBypasses"`
	CacheStale    int64  `json:"CacheStale"`

	OriginResponseTimes Statistics `json:"OriginResponseTimes"`
	ByteAmounts         Statistics `json:"ByteAmounts"`
	BotScores           Statistics `json:"BotScores"`
	ThreatScores        Statistics `json:"ThreatScores"`

	WAFActions             map[string]int64 `json:"WAFActions"`
	StatusCodeDistribution map[int]int64    `json:"StatusCodeDistribution"`
	MethodDistribution     map[string]int64 `json:"MethodDistribution"`

	TopASNs              map[int]int64              `json:"TopASNs"`
	OriginIPDistribution map[string]OriginIPStats   `json:"OriginIPDistribution"`
	QueryParamImpact     map[string]QueryParamStats `json:"QueryParamImpact"`
	TopUserAgents        map[string]int64           `json:"TopUserAgents"`
}

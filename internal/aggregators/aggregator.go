package aggregators

import (
	"strings"

	"cdn-insights/internal/models"

	"github.com/mileusna/useragent"
)

// NoQueryKey groups requests that carried no query string.
const NoQueryKey = "(none)"

// EndpointAccumulators maps endpoint URL to its accumulator in first-seen order.
type EndpointAccumulators = OrderedMap[string, *EndpointAccumulator]

//go:generate mockgen -source=aggregator.go -destination=./mocks/aggregator_mock.go -package=mocks
type Aggregator interface {
	// Aggregate groups entries by URL in a single pass. The entries are not modified.
	Aggregate(entries []*models.LogEntry) *EndpointAccumulators
}

type aggregator struct {
	maxSamplesPerSeries int
}

// NewAggregator returns an Aggregator. maxSamplesPerSeries bounds every numeric series
// with a reservoir sample; 0 keeps every sample.
func NewAggregator(maxSamplesPerSeries int) Aggregator {
	return &aggregator{maxSamplesPerSeries: maxSamplesPerSeries}
}

func (a *aggregator) Aggregate(entries []*models.LogEntry) *EndpointAccumulators {
	endpoints := NewOrderedMap[string, *EndpointAccumulator]()

	for _, entry := range entries {
		// the batch validator rejects null records; this only guards direct callers
		if entry == nil {
			continue
		}

		acc := endpoints.Upsert(entry.URL, func() *EndpointAccumulator {
			return newEndpointAccumulator(entry.URL, a.maxSamplesPerSeries)
		})
		a.accumulate(acc, entry)
	}

	return endpoints
}

func (a *aggregator) accumulate(acc *EndpointAccumulator, entry *models.LogEntry) {
	acc.Requests++

	cacheStatus := entry.CacheStatus.Normalized()
	switch cacheStatus {
	case models.CacheHit:
		acc.CacheHits++
	case models.CacheMiss:
		acc.CacheMisses++
	case models.CacheExpired:
		acc.CacheExpires++
	case models.CacheBypass:
		acc.CacheBypasses++
	case models.CacheStale:
		acc.CacheStale++
	}
	metricAggregatedRecordsTotal.WithLabelValues(cacheStatusLabel(cacheStatus)).Inc()

	acc.Bytes.Add(entry.Bytes)
	acc.OriginDurations.Add(entry.OriginResponseDurationMs)
	acc.BotScores.Add(entry.BotScore)
	acc.ThreatScores.Add(entry.ThreatScore)

	acc.WAFActions[entry.WAFAction.Normalized()]++
	acc.StatusCodes[entry.EdgeResponseStatus]++
	acc.Methods[entry.Method.Normalized()]++
	acc.ASNs.Inc(entry.ASN)

	if ua := strings.TrimSpace(entry.ClientRequestUserAgent); ua != "" {
		acc.UserAgents.Inc(normalizeUserAgent(ua))
	}

	if ip := entry.OriginIPValue(); ip != "" {
		origin := acc.originIP(ip)
		origin.Requests++
		origin.ResponseTimes.Add(entry.OriginResponseDurationMs)
		switch status := entry.EdgeResponseStatus; {
		case status >= 500:
			origin.ServerErrors++
		case status >= 400:
			origin.ClientErrors++
		}
	}

	query := entry.ClientRequestQuery
	if query == "" {
		query = NoQueryKey
	}
	param := acc.queryParam(query)
	param.Requests++
	if cacheStatus == models.CacheHit {
		param.CacheHits++
	}
	param.ResponseTimes.Add(entry.ResponseTimeMs)
}

// normalizeUserAgent parses the user agent to extract its family, or returns the original
// string if parsing yields no name.
func normalizeUserAgent(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}

func cacheStatusLabel(status models.CacheStatus) string {
	switch status {
	case models.CacheHit, models.CacheMiss, models.CacheExpired, models.CacheBypass,
		models.CacheStale, models.CacheUpdating, models.CacheRevalidated:
		return string(status)
	}
	return models.OtherKey
}

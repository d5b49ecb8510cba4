package analyzers

import (
	"maps"

	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/models"
	"cdn-insights/internal/summarizers"
)

//go:generate mockgen -source=metric_assembler.go -destination=./mocks/metric_assembler_mock.go -package=mocks
type MetricAssembler interface {
	// Assemble builds one EndpointMetric per accumulator, in the accumulators' order.
	Assemble(endpoints *aggregators.EndpointAccumulators) []models.EndpointMetric
}

type metricAssembler struct {
	topK summarizers.TopKSummarizer
}

func NewMetricAssembler(topK summarizers.TopKSummarizer) MetricAssembler {
	return &metricAssembler{topK: topK}
}

func (a *metricAssembler) Assemble(endpoints *aggregators.EndpointAccumulators) []models.EndpointMetric {
	result := make([]models.EndpointMetric, 0, endpoints.Len())
	for _, url := range endpoints.Keys() {
		acc, _ := endpoints.Get(url)
		result = append(result, a.assembleEndpoint(acc))
	}
	return result
}

func (a *metricAssembler) assembleEndpoint(acc *aggregators.EndpointAccumulator) models.EndpointMetric {
	return models.EndpointMetric{
		EndpointURL:   acc.URL,
		TotalRequests: acc.Requests,
		CacheHits:     acc.CacheHits,
		CacheMisses:   acc.CacheMisses,
		CacheExpires:  acc.CacheExpires,
		CacheBypasses: acc.CacheBypasses,
		CacheStale:    acc.CacheStale,

		OriginResponseTimes: acc.OriginDurations.Statistics(),
		ByteAmounts:         acc.Bytes.Statistics(),
		BotScores:           acc.BotScores.Statistics(),
		ThreatScores:        acc.ThreatScores.Statistics(),

		WAFActions:             maps.Clone(acc.WAFActions),
		StatusCodeDistribution: maps.Clone(acc.StatusCodes),
		MethodDistribution:     maps.Clone(acc.Methods),

		TopASNs:              a.topK.TopASNs(acc.ASNs),
		OriginIPDistribution: a.topK.TopOriginIPs(acc.OriginIPs),
		QueryParamImpact:     a.topK.TopQueryParams(acc.QueryParams),
		TopUserAgents:        a.topK.TopUserAgents(acc.UserAgents),
	}
}

package generators

import (
	"math"
	"math/rand/v2"
	"time"

	"cdn-insights/internal/models"
)

// TimestampLayout is the ISO-8601 layout with milliseconds used for generated timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Generator produces synthetic CDN log entries. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator returns a Generator whose output depends only on seed and now.
func NewGenerator(seed uint64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now.UTC(),
	}
}

// Generate returns count entries of the scenario. A non-positive count uses the scenario default.
func (g *Generator) Generate(scenario Scenario, count int) []*models.LogEntry {
	if count <= 0 {
		count = scenario.DefaultCount
	}

	entries := make([]*models.LogEntry, 0, count)
	for range count {
		entries = append(entries, scenario.build(g))
	}
	return entries
}

// Batch wraps count generated entries into a request ready for the analyze endpoint.
func (g *Generator) Batch(scenario Scenario, count int) *models.AnalyzeRequest {
	entries := g.Generate(scenario, count)
	return &models.AnalyzeRequest{
		Logs: entries,
		Metadata: models.BatchMetadata{
			FileCount:    1,
			TotalEntries: len(entries),
			Timestamp:    g.now.Format(TimestampLayout),
		},
	}
}

// baseEntry returns a record with every field drawn independently. Cached outcomes never
// reach an origin, so they carry no origin IP and a zero origin duration.
func (g *Generator) baseEntry() *models.LogEntry {
	edgeStart := g.now.Add(-time.Duration(g.rng.Float64() * float64(time.Hour)))
	processingMs := g.rng.Float64() * 500
	edgeEnd := edgeStart.Add(time.Duration(processingMs * float64(time.Millisecond)))

	cacheStatus := pick(g, cacheStatuses)
	entry := &models.LogEntry{
		EdgeStartTimestamp: edgeStart.Format(TimestampLayout),
		EdgeEndTimestamp:   edgeEnd.Format(TimestampLayout),
		ClientRequestQuery: pick(g, queryParams),
		EdgeResponseStatus: pick(g, statusCodes),
		CacheStatus:        cacheStatus,
		WAFAction:          pick(g, wafActions),
		BotScore:           float64(g.rng.IntN(100)),
		ThreatScore:        float64(g.rng.IntN(100)),
		ASN:                pick(g, asns),
		ClientSSLProtocol:  pick(g, sslProtocols),
		ClientCipher:       pick(g, cipherSuites),
		Method:             pick(g, methods),
		URL:                pick(g, urls),
		ResponseTimeMs:     math.Round(processingMs),
		Bytes:              float64(g.rng.IntN(50000)),
	}
	if g.rng.Float64() < 0.9 {
		entry.ClientRequestUserAgent = pick(g, userAgents)
	}

	if !isCached(cacheStatus) {
		g.setOrigin(entry, pick(g, originIPs), g.rng.Float64()*200)
	}
	return entry
}

func (g *Generator) setOrigin(entry *models.LogEntry, ip string, durationMs float64) {
	tls := pick(g, tlsVersions)
	entry.OriginIP = &ip
	entry.OriginTLSVersion = &tls
	entry.OriginResponseDurationMs = math.Round(durationMs)
}

func (g *Generator) clearOrigin(entry *models.LogEntry) {
	entry.OriginIP = nil
	entry.OriginTLSVersion = nil
	entry.OriginResponseDurationMs = 0
}

// chance reports true with probability p.
func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// between returns a uniform value in [lo, lo+width).
func (g *Generator) between(lo, width float64) float64 {
	return lo + g.rng.Float64()*width
}

func pick[T any](g *Generator, values []T) T {
	return values[g.rng.IntN(len(values))]
}

func isCached(status models.CacheStatus) bool {
	return status == models.CacheHit || status == models.CacheStale || status == models.CacheRevalidated
}

package generators

import (
	"math"
	"slices"

	"cdn-insights/internal/models"
)

// Scenario is a named traffic pattern.
type Scenario struct {
	Name         string
	Description  string
	DefaultCount int
	build        func(g *Generator) *models.LogEntry
}

var scenarios = []Scenario{
	{
		Name:         "ddos_attack",
		Description:  "70% of traffic from three suspicious ASNs hitting /api/data with high bot scores and WAF blocks",
		DefaultCount: 100,
		build:        buildDDoSAttack,
	},
	{
		Name:         "load_balancer_issue",
		Description:  "80% of origin traffic pinned to one degraded origin IP with slow responses and 502s",
		DefaultCount: 50,
		build:        buildLoadBalancerIssue,
	},
	{
		Name:         "cache_miss_query",
		Description:  "one dynamic query string on /api/users defeating the cache",
		DefaultCount: 60,
		build:        buildCacheMissQuery,
	},
	{
		Name:         "origin_response_spike",
		Description:  "origin response times of 1.5-4.5s on /api/data while other endpoints stay fast",
		DefaultCount: 50,
		build:        buildOriginResponseSpike,
	},
	{
		Name:         "normal_traffic",
		Description:  "baseline traffic with every field drawn independently",
		DefaultCount: 50,
		build:        (*Generator).baseEntry,
	},
}

// Scenarios returns every known scenario in a stable order.
func Scenarios() []Scenario {
	return slices.Clone(scenarios)
}

// Lookup returns the scenario with the given name.
func Lookup(name string) (Scenario, bool) {
	i := slices.IndexFunc(scenarios, func(s Scenario) bool { return s.Name == name })
	if i < 0 {
		return Scenario{}, false
	}
	return scenarios[i], true
}

var attackerASNs = []int{12345, 23456, 34567}

func buildDDoSAttack(g *Generator) *models.LogEntry {
	e := g.baseEntry()
	e.Method = models.MethodGet
	e.ResponseTimeMs = float64(g.rng.IntN(101))

	if !g.chance(0.7) {
		e.URL = pick(g, urls)
		e.ASN = pick(g, asns)
		e.BotScore = float64(g.rng.IntN(30))
		e.ThreatScore = float64(g.rng.IntN(30))
		e.WAFAction = models.WAFAllow
		e.EdgeResponseStatus = pick(g, statusCodes)
		return e
	}

	e.URL = "/api/data"
	e.ASN = pick(g, attackerASNs)
	e.BotScore = float64(80 + g.rng.IntN(20))
	e.ThreatScore = float64(70 + g.rng.IntN(30))
	e.ClientRequestUserAgent = pick(g, botUserAgents)
	e.WAFAction = models.WAFChallenge
	if g.chance(0.6) {
		e.WAFAction = models.WAFBlock
	}
	e.EdgeResponseStatus = 429
	if g.chance(0.5) {
		e.EdgeResponseStatus = 403
	}
	return e
}

func buildLoadBalancerIssue(g *Generator) *models.LogEntry {
	e := g.baseEntry()
	e.CacheStatus = models.CacheMiss
	e.WAFAction = models.WAFAllow
	e.BotScore = float64(g.rng.IntN(30))
	e.ThreatScore = float64(g.rng.IntN(20))
	e.EdgeResponseStatus = 200

	if g.chance(0.8) {
		g.setOrigin(e, "192.0.2.1", g.between(800, 2000))
		if g.chance(0.2) {
			e.EdgeResponseStatus = 502
		}
	} else {
		g.setOrigin(e, pick(g, []string{"192.0.2.2", "192.0.2.3"}), g.between(50, 150))
	}
	e.ResponseTimeMs = math.Round(e.OriginResponseDurationMs + g.rng.Float64()*100)
	return e
}

func buildCacheMissQuery(g *Generator) *models.LogEntry {
	e := g.baseEntry()
	e.URL = "/api/users"
	e.EdgeResponseStatus = 200
	e.WAFAction = models.WAFAllow
	e.BotScore = float64(g.rng.IntN(30))
	e.ThreatScore = float64(g.rng.IntN(20))

	if g.chance(0.6) {
		e.ClientRequestQuery = "?user_id=dynamic"
		e.CacheStatus = models.CacheMiss
		g.setOrigin(e, pick(g, originIPs), g.between(100, 200))
		e.ResponseTimeMs = math.Round(g.between(150, 200))
		return e
	}

	e.ClientRequestQuery = pick(g, []string{"", "?page=1", "?sort=desc"})
	e.CacheStatus = models.CacheMiss
	if g.chance(0.8) {
		e.CacheStatus = models.CacheHit
	}
	g.clearOrigin(e)
	e.ResponseTimeMs = math.Round(g.between(10, 50))
	return e
}

func buildOriginResponseSpike(g *Generator) *models.LogEntry {
	e := g.baseEntry()
	e.CacheStatus = models.CacheMiss
	e.WAFAction = models.WAFAllow
	e.BotScore = float64(g.rng.IntN(30))
	e.ThreatScore = float64(g.rng.IntN(20))
	e.EdgeResponseStatus = 200

	if g.chance(0.5) {
		e.URL = "/api/data"
		e.Method = models.MethodPost
		g.setOrigin(e, pick(g, originIPs), g.between(1500, 3000))
		if g.chance(0.1) {
			e.EdgeResponseStatus = 504
		}
	} else {
		e.URL = pick(g, []string{"/", "/images/logo.png", "/blog/post1"})
		e.Method = models.MethodGet
		g.setOrigin(e, pick(g, originIPs), g.between(50, 150))
	}
	e.ResponseTimeMs = math.Round(e.OriginResponseDurationMs + g.rng.Float64()*100)
	return e
}

package aggregators

import (
	"testing"

	"cdn-insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func newEntry(url string) *models.LogEntry {
	return &models.LogEntry{
		URL:                      url,
		Method:                   models.MethodGet,
		EdgeResponseStatus:       200,
		CacheStatus:              models.CacheHit,
		WAFAction:                models.WAFAllow,
		ASN:                      15169,
		OriginIP:                 strPtr("192.0.2.1"),
		OriginResponseDurationMs: 100,
		ResponseTimeMs:           120,
		Bytes:                    1024,
		BotScore:                 90,
		ThreatScore:              1,
	}
}

func TestAggregator_Aggregate_GroupsByURLInFirstSeenOrder(t *testing.T) {
	t.Parallel()

	entries := []*models.LogEntry{
		newEntry("/b"),
		newEntry("/a"),
		newEntry("/b"),
		newEntry(""),
		newEntry("/a"),
		newEntry("/b"),
	}

	endpoints := NewAggregator(0).Aggregate(entries)

	require.Equal(t, []string{"/b", "/a", ""}, endpoints.Keys())

	var total int64
	for _, url := range endpoints.Keys() {
		acc, ok := endpoints.Get(url)
		require.True(t, ok)
		assert.Equal(t, url, acc.URL)
		total += acc.Requests
	}
	assert.Equal(t, int64(len(entries)), total)

	b, _ := endpoints.Get("/b")
	assert.Equal(t, int64(3), b.Requests)
}

func TestAggregator_Aggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	endpoints := NewAggregator(0).Aggregate(nil)
	assert.Equal(t, 0, endpoints.Len())
}

func TestAggregator_Aggregate_CacheCounters(t *testing.T) {
	t.Parallel()

	statuses := []models.CacheStatus{
		"HIT", "hit", "MISS", "EXPIRED", "BYPASS", "STALE", "UPDATING", "REVALIDATED", "DYNAMIC", "",
	}
	entries := make([]*models.LogEntry, 0, len(statuses))
	for _, status := range statuses {
		e := newEntry("/cache")
		e.CacheStatus = status
		entries = append(entries, e)
	}

	acc, _ := NewAggregator(0).Aggregate(entries).Get("/cache")

	assert.Equal(t, int64(10), acc.Requests)
	assert.Equal(t, int64(2), acc.CacheHits)
	assert.Equal(t, int64(1), acc.CacheMisses)
	assert.Equal(t, int64(1), acc.CacheExpires)
	assert.Equal(t, int64(1), acc.CacheBypasses)
	assert.Equal(t, int64(1), acc.CacheStale)
	assert.LessOrEqual(t, acc.CacheHits+acc.CacheMisses+acc.CacheExpires+acc.CacheBypasses+acc.CacheStale, acc.Requests)
}

func TestAggregator_Aggregate_FrequencyMaps(t *testing.T) {
	t.Parallel()

	e1 := newEntry("/api")
	e2 := newEntry("/api")
	e2.WAFAction = "block"
	e2.Method = "post"
	e2.EdgeResponseStatus = 403
	e2.ASN = 13335
	e3 := newEntry("/api")
	e3.WAFAction = "SKIP"
	e3.Method = "TRACE"
	e3.EdgeResponseStatus = 200

	acc, _ := NewAggregator(0).Aggregate([]*models.LogEntry{e1, e2, e3}).Get("/api")

	assert.Equal(t, map[string]int64{"ALLOW": 1, "BLOCK": 1, "OTHER": 1}, acc.WAFActions)
	assert.Equal(t, map[string]int64{"GET": 1, "POST": 1, "OTHER": 1}, acc.Methods)
	assert.Equal(t, map[int]int64{200: 2, 403: 1}, acc.StatusCodes)
	assert.Equal(t, []int{15169, 13335}, acc.ASNs.Keys())
	assert.Equal(t, int64(2), acc.ASNs.Count(15169))
	assert.Equal(t, int64(1), acc.ASNs.Count(13335))
}

func TestAggregator_Aggregate_SeriesIncludeZeroValues(t *testing.T) {
	t.Parallel()

	e1 := newEntry("/s")
	e2 := newEntry("/s")
	e2.OriginResponseDurationMs = 0
	e2.Bytes = 0
	e2.OriginIP = nil

	acc, _ := NewAggregator(0).Aggregate([]*models.LogEntry{e1, e2}).Get("/s")

	assert.Equal(t, int64(2), acc.OriginDurations.Count())
	assert.Equal(t, int64(2), acc.Bytes.Count())
	assert.InDelta(t, 50, acc.OriginDurations.Mean(), 1e-9)
	assert.InDelta(t, 512, acc.Bytes.Mean(), 1e-9)
	assert.Equal(t, int64(2), acc.BotScores.Count())
	assert.Equal(t, int64(2), acc.ThreatScores.Count())
}

func TestAggregator_Aggregate_OriginIPs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		originIP *string
		status   int
	}{
		{name: "ok", originIP: strPtr("192.0.2.1"), status: 200},
		{name: "client error", originIP: strPtr("192.0.2.1"), status: 404},
		{name: "upper client bound", originIP: strPtr("192.0.2.1"), status: 499},
		{name: "server error", originIP: strPtr("192.0.2.1"), status: 500},
		{name: "server error 503", originIP: strPtr(" 192.0.2.1 "), status: 503},
		{name: "redirect", originIP: strPtr("198.51.100.1"), status: 301},
		{name: "null origin", originIP: nil, status: 500},
		{name: "empty origin", originIP: strPtr(""), status: 500},
	}

	entries := make([]*models.LogEntry, 0, len(tests))
	for _, tt := range tests {
		e := newEntry("/origin")
		e.OriginIP = tt.originIP
		e.EdgeResponseStatus = tt.status
		entries = append(entries, e)
	}

	acc, _ := NewAggregator(0).Aggregate(entries).Get("/origin")

	require.Equal(t, []string{"192.0.2.1", "198.51.100.1"}, acc.OriginIPs.Keys())

	primary, _ := acc.OriginIPs.Get("192.0.2.1")
	assert.Equal(t, int64(5), primary.Requests)
	assert.Equal(t, int64(2), primary.ClientErrors)
	assert.Equal(t, int64(2), primary.ServerErrors)
	assert.Equal(t, int64(5), primary.ResponseTimes.Count())

	secondary, _ := acc.OriginIPs.Get("198.51.100.1")
	assert.Equal(t, int64(1), secondary.Requests)
	assert.Zero(t, secondary.ClientErrors)
	assert.Zero(t, secondary.ServerErrors)
}

func TestAggregator_Aggregate_QueryParams(t *testing.T) {
	t.Parallel()

	e1 := newEntry("/q")
	e1.ClientRequestQuery = "?page=1"
	e1.ResponseTimeMs = 100
	e2 := newEntry("/q")
	e2.ClientRequestQuery = "?page=1"
	e2.CacheStatus = models.CacheMiss
	e2.ResponseTimeMs = 300
	e2.OriginResponseDurationMs = 999
	e3 := newEntry("/q")
	e3.ClientRequestQuery = ""

	acc, _ := NewAggregator(0).Aggregate([]*models.LogEntry{e1, e2, e3}).Get("/q")

	require.Equal(t, []string{"?page=1", NoQueryKey}, acc.QueryParams.Keys())

	page, _ := acc.QueryParams.Get("?page=1")
	assert.Equal(t, int64(2), page.Requests)
	assert.Equal(t, int64(1), page.CacheHits)
	// The query series tracks end-to-end response time, not origin duration
	assert.InDelta(t, 200, page.ResponseTimes.Mean(), 1e-9)

	none, _ := acc.QueryParams.Get(NoQueryKey)
	assert.Equal(t, int64(1), none.Requests)
}

func TestAggregator_Aggregate_UserAgents(t *testing.T) {
	t.Parallel()

	agents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:123.0) Gecko/20100101 Firefox/123.0",
		"",
		"   ",
	}
	entries := make([]*models.LogEntry, 0, len(agents))
	for _, ua := range agents {
		e := newEntry("/ua")
		e.ClientRequestUserAgent = ua
		entries = append(entries, e)
	}

	acc, _ := NewAggregator(0).Aggregate(entries).Get("/ua")

	assert.Equal(t, []string{"Firefox"}, acc.UserAgents.Keys())
	assert.Equal(t, int64(2), acc.UserAgents.Count("Firefox"))
}

func TestAggregator_Aggregate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	e := newEntry("/immutable")
	e.CacheStatus = "hit"
	e.WAFAction = "block"
	e.OriginIP = strPtr(" 192.0.2.9 ")
	before := *e

	NewAggregator(0).Aggregate([]*models.LogEntry{e})

	assert.Equal(t, before, *e)
	assert.Equal(t, " 192.0.2.9 ", *e.OriginIP)
}

func TestAggregator_Aggregate_FreshStatePerCall(t *testing.T) {
	t.Parallel()

	agg := NewAggregator(0)
	entries := []*models.LogEntry{newEntry("/a"), newEntry("/a")}

	first, _ := agg.Aggregate(entries).Get("/a")
	second, _ := agg.Aggregate(entries).Get("/a")

	assert.Equal(t, int64(2), first.Requests)
	assert.Equal(t, int64(2), second.Requests)
}

func TestAggregator_Aggregate_BoundedSeries(t *testing.T) {
	t.Parallel()

	entries := make([]*models.LogEntry, 0, 50)
	for i := range 50 {
		e := newEntry("/bounded")
		e.Bytes = float64(i)
		entries = append(entries, e)
	}

	acc, _ := NewAggregator(8).Aggregate(entries).Get("/bounded")

	assert.Equal(t, int64(50), acc.Bytes.Count())
	assert.Len(t, acc.Bytes.Retained(), 8)
	assert.InDelta(t, 24.5, acc.Bytes.Mean(), 1e-9)
}

package generators

import "cdn-insights/internal/models"

var (
	methods = []models.HTTPMethod{
		models.MethodGet, models.MethodPost, models.MethodPut, models.MethodDelete,
		models.MethodPatch, models.MethodHead, models.MethodOptions,
	}
	cacheStatuses = []models.CacheStatus{
		models.CacheHit, models.CacheMiss, models.CacheExpired, models.CacheBypass,
		models.CacheStale, models.CacheUpdating, models.CacheRevalidated,
	}
	urls = []string{
		"/",
		"/images/logo.png",
		"/api/data",
		"/blog/post1",
		"/css/styles.css",
		"/js/app.js",
		"/api/users",
		"/products/123",
		"/dashboard",
	}
	// Repeated values weight the draw.
	statusCodes  = []int{200, 200, 200, 304, 301, 404, 500, 502, 403}
	wafActions   = []models.WAFAction{models.WAFAllow, models.WAFAllow, models.WAFAllow, models.WAFBlock, models.WAFChallenge, models.WAFLog}
	originIPs    = []string{"192.0.2.1", "192.0.2.2", "192.0.2.3", "198.51.100.1"}
	tlsVersions  = []string{"TLSv1.2", "TLSv1.3"}
	sslProtocols = []string{"TLSv1.2", "TLSv1.3", "TLSv1.1"}
	cipherSuites = []string{
		"ECDHE-RSA-AES128-GCM-SHA256",
		"ECDHE-RSA-AES256-GCM-SHA384",
		"ECDHE-RSA-CHACHA20-POLY1305",
		"AES128-GCM-SHA256",
		"AES256-GCM-SHA384",
	}
	queryParams = []string{"", "?id=123", "?page=1", "?sort=desc&limit=10", "?utm_source=google"}
	// Google, Amazon, Cloudflare, Microsoft, Akamai
	asns       = []int{15169, 16509, 13335, 8075, 20940}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:123.0) Gecko/20100101 Firefox/123.0",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
		"curl/8.4.0",
	}
	botUserAgents = []string{
		"python-requests/2.31.0",
		"Go-http-client/1.1",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	}
)

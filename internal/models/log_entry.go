package models

import "strings"

type CacheStatus string

const (
	CacheHit         CacheStatus = "HIT"
	CacheMiss        CacheStatus = "MISS"
	CacheExpired     CacheStatus = "EXPIRED"
	CacheBypass      CacheStatus = "BYPASS"
	CacheStale       CacheStatus = "STALE"
	CacheUpdating    CacheStatus = "UPDATING"
	CacheRevalidated CacheStatus = "REVALIDATED"
)

type WAFAction string

const (
	WAFAllow     WAFAction = "ALLOW"
	WAFBlock     WAFAction = "BLOCK"
	WAFChallenge WAFAction = "CHALLENGE"
	WAFLog       WAFAction = "LOG"
)

type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodPatch   HTTPMethod = "PATCH"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
)

// OtherKey buckets WAF actions and methods outside the known value sets.
const OtherKey = "OTHER"

// LogEntry is one CDN access-log line. Field names follow the Cloudflare Logpush schema.
type LogEntry struct {
	EdgeStartTimestamp       string      `json:"EdgeStartTimestamp"`
	EdgeEndTimestamp         string      `json:"EdgeEndTimestamp"`
	ClientRequestQuery       string      `json:"ClientRequestQuery"`
	EdgeResponseStatus       int         `json:"EdgeResponseStatus"`
	CacheStatus              CacheStatus `json:"CacheStatus"`
	OriginIP                 *string     `json:"OriginIP"`
	OriginTLSVersion         *string     `json:"OriginTLSVersion"`
	OriginResponseDurationMs float64     `json:"OriginResponseDurationMs"`
	WAFAction                WAFAction   `json:"WAFAction"`
	BotScore                 float64     `json:"BotScore"`
	ThreatScore              float64     `json:"ThreatScore"`
	ASN                      int         `json:"ASN"`
	ClientSSLProtocol        string      `json:"ClientSSLProtocol"`
	ClientCipher             string      `json:"ClientCipher"`
	Method                   HTTPMethod  `json:"Method"`
	URL                      string      `json:"URL"`
	ResponseTimeMs           float64     `json:"ResponseTimeMs"`
	Bytes                    float64     `json:"Bytes"`
	ClientRequestUserAgent   string      `json:"ClientRequestUserAgent,omitempty"`
}

// OriginIPValue returns the origin IP, or "" when the request never reached an origin.
func (e *LogEntry) OriginIPValue() string {
	if e.OriginIP == nil {
		return ""
	}
	return strings.TrimSpace(*e.OriginIP)
}

// Normalized returns the upper-cased WAF action, or OtherKey when it is not a known action.
func (a WAFAction) Normalized() string {
	switch v := WAFAction(strings.ToUpper(strings.TrimSpace(string(a)))); v {
	case WAFAllow, WAFBlock, WAFChallenge, WAFLog:
		return string(v)
	}
	return OtherKey
}

// Normalized returns the upper-cased method, or OtherKey when it is not a known method.
func (m HTTPMethod) Normalized() string {
	switch v := HTTPMethod(strings.ToUpper(strings.TrimSpace(string(m)))); v {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch, MethodHead, MethodOptions:
		return string(v)
	}
	return OtherKey
}

// Normalized returns the upper-cased cache status. Unknown values are returned as-is.
func (c CacheStatus) Normalized() CacheStatus {
	return CacheStatus(strings.ToUpper(strings.TrimSpace(string(c))))
}

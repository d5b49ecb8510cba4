package models

// AnalyzeRequest is the batch submitted for analysis.
//
// Example JSON:
//
//	{
//	  "logs": [
//	    {"URL": "/api/data", "CacheStatus": "HIT", "EdgeResponseStatus": 200, "ASN": 13335, ...}
//	  ],
//	  "metadata": {
//	    "fileCount": 1,
//	    "totalEntries": 1,
//	    "timestamp": "2025-12-28T18:03:00.000Z"
//	  }
//	}
//
// fileCount and totalEntries are informational and are not checked against len(logs).
type AnalyzeRequest struct {
	Logs     []*LogEntry   `json:"logs"`
	Metadata BatchMetadata `json:"metadata"`
}

// BatchMetadata describes where a batch came from. Timestamp is an RFC 3339 instant;
// fractional seconds are accepted.
type BatchMetadata struct {
	FileCount    int    `json:"fileCount" validate:"min=0"`
	TotalEntries int    `json:"totalEntries" validate:"min=0"`
	Timestamp    string `json:"timestamp" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

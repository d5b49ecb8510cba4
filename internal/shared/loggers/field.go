package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration      = "duration"
	FieldRequestID     = "request_id"
	FieldErrorStack    = "error_stack"
	FieldErrorCode     = "error_code"
	FieldResponseBytes = "response_bytes"

	FieldAnalysisID    = "analysis_id"
	FieldEntryCount    = "entry_count"
	FieldEndpointCount = "endpoint_count"
	FieldScenario      = "scenario"
	FieldFileKey       = "file_key"
)

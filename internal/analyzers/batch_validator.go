package analyzers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cdn-insights/internal/models"
	"cdn-insights/internal/shared/validators"

	"github.com/tidwall/gjson"
)

const (
	FormatJSON = "json"
)

// requiredPaths are the batch fields that must be present in the raw document.
// Presence is checked before decoding so that zero values are told apart from absent fields.
var requiredPaths = []string{
	"logs",
	"metadata",
	"metadata.fileCount",
	"metadata.totalEntries",
	"metadata.timestamp",
}

//go:generate mockgen -source=batch_validator.go -destination=./mocks/batch_validator_mock.go -package=mocks
type BatchValidator interface {
	// Validate reads the batch from r and returns it decoded. format is the declared content type.
	Validate(format string, r io.Reader) (*models.AnalyzeRequest, error)
}

type batchValidator struct {
	maxBatchBytes int64
	validate      *validators.Validate
}

func NewBatchValidator(maxBatchBytes int64) BatchValidator {
	return &batchValidator{
		maxBatchBytes: maxBatchBytes,
		validate:      validators.NewWithJSONNames(),
	}
}

func (v *batchValidator) Validate(format string, r io.Reader) (*models.AnalyzeRequest, error) {
	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errUnsupportedFormat(fmt.Sprintf("unsupported input format: %q", format))
	}

	if r == nil {
		return nil, errParseFailed("empty request body", nil)
	}

	buf, err := v.readWithLimit(r)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(buf)) == 0 {
		return nil, errParseFailed("empty request body", nil)
	}
	if !gjson.ValidBytes(buf) {
		return nil, errParseFailed("invalid json", nil)
	}

	doc := gjson.ParseBytes(buf)
	if !doc.IsObject() {
		return nil, errParseFailed("batch must be a JSON object", nil)
	}
	if err := v.checkRequiredFields(doc); err != nil {
		return nil, err
	}

	var req models.AnalyzeRequest
	if err := json.Unmarshal(buf, &req); err != nil {
		return nil, errParseFailed("batch does not match the expected shape", err)
	}

	if err := v.validate.Struct(&req); err != nil {
		return nil, v.toValidationError(err)
	}

	return &req, nil
}

// readWithLimit reads the whole body and fails once more than maxBatchBytes were read.
func (v *batchValidator) readWithLimit(r io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, v.maxBatchBytes+1))
	if err != nil {
		return nil, errParseFailed("failed to read request body", err)
	}
	if int64(len(buf)) > v.maxBatchBytes {
		return nil, errValidationFailed(fmt.Sprintf("batch too large: must be <= %d bytes", v.maxBatchBytes), nil)
	}
	return buf, nil
}

func (v *batchValidator) checkRequiredFields(doc gjson.Result) error {
	var missing []string
	for _, path := range requiredPaths {
		if field := doc.Get(path); !field.Exists() || field.Type == gjson.Null {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return errValidationFailed(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")), nil)
	}

	logs := doc.Get("logs")
	if !logs.IsArray() {
		return errValidationFailed("logs must be an array", nil)
	}
	// each element is one request record
	for i, record := range logs.Array() {
		if !record.IsObject() {
			return errValidationFailed(fmt.Sprintf("logs[%d] must be an object", i), nil)
		}
	}
	if !doc.Get("metadata").IsObject() {
		return errValidationFailed("metadata must be an object", nil)
	}
	return nil
}

func (v *batchValidator) toValidationError(err error) error {
	ve, ok := err.(validators.ValidationErrors)
	if !ok {
		return errValidationFailed("batch validation failed", err)
	}

	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, formatFieldError(e))
	}
	return errValidationFailed(fmt.Sprintf("batch validation failed: %s", strings.Join(msgs, ", ")), err)
}

// formatFieldError renders a field error as "metadata.timestamp (datetime)".
func formatFieldError(e validators.FieldError) string {
	field := e.Field()
	// Drop the root type name: "AnalyzeRequest.metadata.fileCount" -> "metadata.fileCount"
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		field = rest
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	case "datetime":
		return fmt.Sprintf("%s (must be an ISO-8601 timestamp)", field)
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}

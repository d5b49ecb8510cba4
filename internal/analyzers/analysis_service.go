package analyzers

import (
	"context"
	"io"
	"time"

	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/models"
	"cdn-insights/internal/shared/loggers"
	"cdn-insights/internal/shared/metrics"
	"cdn-insights/internal/shared/svcerrors"
	"cdn-insights/internal/shared/ulid"
)

// AnalysisResult is the outcome of one analysis call.
type AnalysisResult struct {
	AnalysisID string
	Metadata   models.BatchMetadata
	Endpoints  []models.EndpointMetric
}

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze validates a raw batch and computes the per-endpoint metrics.
	Analyze(ctx context.Context, format string, r io.Reader) (*AnalysisResult, error)
	// AnalyzeEntries computes the per-endpoint metrics of already decoded entries.
	AnalyzeEntries(ctx context.Context, entries []*models.LogEntry) []models.EndpointMetric
}

type analysisService struct {
	validator  BatchValidator
	aggregator aggregators.Aggregator
	assembler  MetricAssembler
}

func NewAnalysisService(validator BatchValidator, aggregator aggregators.Aggregator, assembler MetricAssembler) AnalysisService {
	return &analysisService{
		validator:  validator,
		aggregator: aggregator,
		assembler:  assembler,
	}
}

func (s *analysisService) Analyze(ctx context.Context, format string, r io.Reader) (*AnalysisResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started analyzing batch with format: %s", format)

	req, err := s.validator.Validate(format, r)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricBatchAnalyzedTotal.WithLabelValues(svcErr.Code).Inc()
		}
		return nil, err
	}

	analysisID := ulid.NewULID()
	logger.Info().
		Str(loggers.FieldAnalysisID, analysisID).
		Int(loggers.FieldEntryCount, len(req.Logs)).
		Msgf("analyzing %d log entries from %d files", req.Metadata.TotalEntries, req.Metadata.FileCount)

	endpoints := s.AnalyzeEntries(ctx, req.Logs)

	metricBatchAnalyzedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricBatchEntries.WithLabelValues().Observe(float64(len(req.Logs)))
	metricBatchEndpoints.WithLabelValues().Observe(float64(len(endpoints)))

	return &AnalysisResult{
		AnalysisID: analysisID,
		Metadata:   req.Metadata,
		Endpoints:  endpoints,
	}, nil
}

func (s *analysisService) AnalyzeEntries(ctx context.Context, entries []*models.LogEntry) []models.EndpointMetric {
	start := time.Now()

	accumulators := s.aggregator.Aggregate(entries)
	endpoints := s.assembler.Assemble(accumulators)

	loggers.Ctx(ctx).Debug().
		Int(loggers.FieldEntryCount, len(entries)).
		Int(loggers.FieldEndpointCount, len(endpoints)).
		Dur(loggers.FieldDuration, time.Since(start)).
		Msg("computed endpoint metrics")

	return endpoints
}

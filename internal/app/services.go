package app

import (
	"cdn-insights/internal/aggregators"
	"cdn-insights/internal/analyzers"
	"cdn-insights/internal/generators"
	"cdn-insights/internal/shared/configs"
	"cdn-insights/internal/shared/filestorages"
	"cdn-insights/internal/stores"
	"cdn-insights/internal/summarizers"
)

// SummarizerConfig maps the analysis settings onto the Top-K summarizer configuration.
func SummarizerConfig(cfg configs.AnalysisConfig) summarizers.Config {
	return summarizers.Config{
		TopASNs:        cfg.TopASNs,
		TopOriginIPs:   cfg.TopOriginIPs,
		TopQueryParams: cfg.TopQueryParams,
		TopUserAgents:  cfg.TopUserAgents,
		MinRequests:    cfg.MinRequestsThreshold,
	}
}

// NewAnalysisService wires the validator, aggregator and assembler stages for one configuration.
// The HTTP server and the CLI share it so that both produce identical metrics.
func NewAnalysisService(cfg configs.AnalysisConfig) analyzers.AnalysisService {
	batchValidator := analyzers.NewBatchValidator(cfg.MaxBatchBytes)
	aggregator := newAggregator(cfg)
	topKSummarizer := summarizers.NewTopKSummarizer(SummarizerConfig(cfg))
	metricAssembler := analyzers.NewMetricAssembler(topKSummarizer)

	return analyzers.NewAnalysisService(batchValidator, aggregator, metricAssembler)
}

// newAggregator aggregates sequentially unless more than one partition is configured.
func newAggregator(cfg configs.AnalysisConfig) aggregators.Aggregator {
	if cfg.AggregationPartitions > 1 {
		return aggregators.NewPartitionedAggregator(cfg.MaxSamplesPerSeries, cfg.AggregationPartitions)
	}
	return aggregators.NewAggregator(cfg.MaxSamplesPerSeries)
}

// NewScenarioStore opens the file storage rooted at rootDir for generated scenarios.
func NewScenarioStore(rootDir string) (stores.ScenarioStore, error) {
	fileStorage, err := filestorages.NewFileStorage(rootDir)
	if err != nil {
		return nil, err
	}
	return stores.NewScenarioStore(fileStorage), nil
}

// NewGenerationService returns a scenario generator writing below rootDir.
func NewGenerationService(rootDir string) (generators.GenerationService, error) {
	scenarioStore, err := NewScenarioStore(rootDir)
	if err != nil {
		return nil, err
	}
	return generators.NewGenerationService(scenarioStore), nil
}

package generators

import (
	"context"
	"errors"
	"time"

	"cdn-insights/internal/shared/loggers"
	"cdn-insights/internal/stores"
)

type GenerateRequest struct {
	Scenario  string
	Count     int // 0 uses the scenario default
	Seed      uint64
	Overwrite bool
}

type GenerateResult struct {
	Scenario string
	FileKey  string
	Entries  int
}

//go:generate mockgen -source=generation_service.go -destination=./mocks/generation_service_mock.go -package=mocks
type GenerationService interface {
	// Generate builds a scenario batch and stores it as a ready-to-post analyze request.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

type generationService struct {
	scenarioStore stores.ScenarioStore
	now           func() time.Time
}

func NewGenerationService(scenarioStore stores.ScenarioStore) GenerationService {
	return &generationService{
		scenarioStore: scenarioStore,
		now:           time.Now,
	}
}

func (s *generationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	logger := loggers.Ctx(ctx)

	scenario, ok := Lookup(req.Scenario)
	if !ok {
		return nil, errUnknownScenario(req.Scenario)
	}

	batch := NewGenerator(req.Seed, s.now()).Batch(scenario, req.Count)

	key, err := s.scenarioStore.Put(ctx, scenario.Name, batch, req.Overwrite)
	if err != nil {
		if errors.Is(err, stores.ErrScenarioAlreadyExist) {
			return nil, errScenarioAlreadyExists(scenario.Name, err)
		}
		return nil, errInternalScenarioStoreFailed(err)
	}

	metricEntriesGeneratedTotal.WithLabelValues(scenario.Name).Add(float64(len(batch.Logs)))
	logger.Info().
		Str(loggers.FieldScenario, scenario.Name).
		Str(loggers.FieldFileKey, key).
		Int(loggers.FieldEntryCount, len(batch.Logs)).
		Msg("generated scenario")

	return &GenerateResult{
		Scenario: scenario.Name,
		FileKey:  key,
		Entries:  len(batch.Logs),
	}, nil
}

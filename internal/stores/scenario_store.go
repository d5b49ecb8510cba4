package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"cdn-insights/internal/models"
	"cdn-insights/internal/shared/filestorages"
)

const scenarioDir = "scenarios"

var (
	ErrScenarioAlreadyExist = errors.New("scenario already exists")
	ErrScenarioNotFound     = errors.New("scenario not found")
)

// ScenarioStore keeps generated batches as "scenarios/<name>.json", ready to be posted to the
// analyze endpoint. Put without overwrite is an atomic create-if-not-exists, so two generators
// writing the same scenario name never interleave their files.
//
//go:generate mockgen -source=scenario_store.go -destination=./mocks/scenario_store_mock.go -package=mocks
type ScenarioStore interface {
	Put(ctx context.Context, name string, batch *models.AnalyzeRequest, overwrite bool) (string, error)
	Get(ctx context.Context, name string) (*models.AnalyzeRequest, error)
	// List returns the stored scenario names, sorted.
	List(ctx context.Context) ([]string, error)
}

type scenarioStore struct {
	fileStorage filestorages.FileStorage
}

func NewScenarioStore(fileStorage filestorages.FileStorage) ScenarioStore {
	return &scenarioStore{fileStorage: fileStorage}
}

func ScenarioKey(name string) string {
	return fmt.Sprintf("%s/%s.json", scenarioDir, name)
}

func (s *scenarioStore) Put(ctx context.Context, name string, batch *models.AnalyzeRequest, overwrite bool) (string, error) {
	jsonData, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario: %w", err)
	}

	key := ScenarioKey(name)
	_, err = s.fileStorage.Put(ctx, key, bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: overwrite})
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return "", ErrScenarioAlreadyExist
		}
		return "", fmt.Errorf("failed to put scenario: %w", err)
	}
	return key, nil
}

func (s *scenarioStore) Get(ctx context.Context, name string) (*models.AnalyzeRequest, error) {
	rc, err := s.fileStorage.Get(ctx, ScenarioKey(name))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	defer rc.Close()

	var batch models.AnalyzeRequest
	if err := json.NewDecoder(rc).Decode(&batch); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %q: %w", name, err)
	}
	return &batch, nil
}

func (s *scenarioStore) List(ctx context.Context) ([]string, error) {
	keys, err := s.fileStorage.List(ctx, scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		// Only direct children of the scenario directory are scenarios
		if path.Dir(key) != scenarioDir || path.Ext(key) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(path.Base(key), ".json"))
	}
	return names, nil
}

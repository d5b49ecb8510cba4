package generators

import (
	"fmt"

	"cdn-insights/internal/shared/svcerrors"
)

// GenerationService errors
const (
	codeUnknownScenario       = "GEN_1000"
	codeScenarioAlreadyExists = "GEN_1001"

	codeInternalScenarioStoreFailed = "GEN_9000"
)

func errUnknownScenario(name string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnknownScenario, fmt.Sprintf("unknown scenario: %q", name), nil)
}

// errScenarioAlreadyExists returns an error when the scenario file exists and overwrite was not requested.
func errScenarioAlreadyExists(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeScenarioAlreadyExists, fmt.Sprintf("scenario %q already exists", name), cause)
}

// errInternalScenarioStoreFailed returns an error when the scenario store operation fails.
func errInternalScenarioStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalScenarioStoreFailed, fmt.Errorf("scenarioStoreFailed: %w", cause))
}

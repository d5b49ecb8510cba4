package cli

import "cdn-insights/internal/shared/svcerrors"

const (
	exitCodeFailure      = 1
	exitCodeInvalidInput = 2
)

// ExitCode maps a command error to the process exit status: 2 when the input was rejected,
// 1 for every other failure.
func ExitCode(err error) int {
	if svcErr, ok := svcerrors.AsServiceError(err); ok && svcErr.IsClientError() {
		return exitCodeInvalidInput
	}
	return exitCodeFailure
}

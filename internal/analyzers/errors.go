package analyzers

import (
	"cdn-insights/internal/shared/svcerrors"
)

// AnalysisService errors
const (
	codeParseFailed       = "ANL_1000"
	codeValidationFailed  = "ANL_1001"
	codeUnsupportedFormat = "ANL_1002"
)

// errParseFailed returns an error when the body is not JSON or does not decode into a batch.
func errParseFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeParseFailed, msg, cause)
}

// errValidationFailed returns an error when the batch is missing required fields or breaks a limit.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errUnsupportedFormat(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedFormat, msg, nil)
}

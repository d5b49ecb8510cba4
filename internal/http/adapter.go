package http

import (
	"net/http"

	"cdn-insights/internal/shared/loggers"
	"cdn-insights/internal/shared/svcerrors"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	RequestID        string `json:"requestId"`
	ErrorCategory    string `json:"errorCategory"`
	ErrorCode        string `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

func newErrorResponse(requestID string, svcErr *svcerrors.ServiceError) ErrorResponse {
	return ErrorResponse{
		RequestID:        requestID,
		ErrorCategory:    svcErr.Category,
		ErrorCode:        svcErr.Code,
		ErrorDescription: svcErr.Message,
	}
}

// errorHandlingAdapter turns an AppHttpHandler into an http.HandlerFunc that renders
// returned errors as ErrorResponse bodies.
func errorHandlingAdapter(httpHandler AppHttpHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := httpHandler.Handle(w, r); err != nil {
			handleError(w, r, err)
		}
	}
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr, ok := svcerrors.AsServiceError(err)
	if !ok {
		svcErr = svcerrors.NewInternalErrorUndefined(err)
	}

	logger := loggers.Ctx(r.Context())
	switch {
	case svcErr.IsInternalError():
		logger.Error().
			Err(svcErr.Cause).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("internal error in handler")
	case svcErr.IsClientError():
		// the description names the offending field of a rejected batch
		logger.Warn().
			Str(loggers.FieldErrorCode, svcErr.Code).
			Str("errorDescription", svcErr.Message).
			Msg("request rejected")
	}

	writeErrorResponse(w, r, svcErr)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, svcErr *svcerrors.ServiceError) {
	// set serviceError for middlewares
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetServiceError(svcErr)
	}

	loggers.Ctx(r.Context()).Debug().
		Str(loggers.FieldErrorCode, svcErr.Code).
		Str("errorCategory", svcErr.Category).
		Int("httpStatusCode", svcErr.HttpStatusCode).
		Msg("error response")

	_ = writeJSON(w, svcErr.HttpStatusCode, newErrorResponse(requestID(r), svcErr))
}

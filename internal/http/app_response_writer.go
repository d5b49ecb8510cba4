package http

import (
	"net/http"

	"cdn-insights/internal/shared/svcerrors"

	"github.com/go-chi/chi/v5/middleware"
)

// appResponseWriter wraps the http.ResponseWriter and carries the outcome of the handler
// (service error, analysis ID) to the metrics and logging middlewares.
type appResponseWriter struct {
	middleware.WrapResponseWriter
	svcError   *svcerrors.ServiceError
	analysisID string
}

func newAppResponseWriter(w http.ResponseWriter, protoMajor int) *appResponseWriter {
	return &appResponseWriter{
		WrapResponseWriter: middleware.NewWrapResponseWriter(w, protoMajor),
	}
}

func (w *appResponseWriter) SetServiceError(svcError *svcerrors.ServiceError) {
	w.svcError = svcError
}

func (w *appResponseWriter) ErrorCode() string {
	if w.svcError != nil {
		return w.svcError.Code
	}
	return ""
}

func (w *appResponseWriter) SetAnalysisID(analysisID string) {
	w.analysisID = analysisID
}

func (w *appResponseWriter) AnalysisID() string {
	return w.analysisID
}

// setAnalysisID exposes the analysis ID as a response header and, when w is the
// appResponseWriter, to the request completion log.
func setAnalysisID(w http.ResponseWriter, analysisID string) {
	w.Header().Set(headerAnalysisID, analysisID)
	if appWriter, ok := w.(*appResponseWriter); ok {
		appWriter.SetAnalysisID(analysisID)
	}
}

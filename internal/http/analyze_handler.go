package http

import (
	"net/http"

	"cdn-insights/internal/analyzers"
)

type analyzeHandler struct {
	analysisService analyzers.AnalysisService
}

func NewAnalyzeHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &analyzeHandler{
		analysisService: analysisService,
	}
}

// Handle processes POST /api/analyze requests and responds with the endpoint metrics array.
func (h *analyzeHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.analysisService.Analyze(r.Context(), contentType(r), r.Body)
	if err != nil {
		return err
	}

	setAnalysisID(w, result.AnalysisID)
	// The response body has been committed, encoding errors can only be logged by the caller
	_ = writeJSON(w, http.StatusOK, result.Endpoints)
	return nil
}

package http

import (
	"net/http"

	"cdn-insights/internal/analyzers"
	"cdn-insights/internal/shared/loggers"
	"cdn-insights/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(analysisService analyzers.AnalysisService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	analyzeHandler := NewAnalyzeHandler(analysisService)
	connectivity := NewConnectivityHandler()

	// Routes
	router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", errorHandlingAdapter(analyzeHandler))
		r.Get("/test", errorHandlingAdapter(connectivity))
	})
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)
	router.NotFound(errorHandlingAdapter(notFoundHandler{}))

	return router
}

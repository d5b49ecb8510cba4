package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	internalhttp "cdn-insights/internal/http"
	"cdn-insights/internal/shared/configs"
	"cdn-insights/internal/shared/loggers"
)

const appName = "cdn-insights"

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	baseLogger, err := loggers.NewWithOptions(loggers.Options{
		Level:  config.Log.Level,
		Format: loggers.Format(config.Log.Format),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger := baseLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	// Initialize analysis service
	analysisService := NewAnalysisService(config.Analysis)

	// Initialize http router
	httpLogger := loggers.Component(baseLogger, appName, "http")
	router := internalhttp.NewRouter(analysisService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
	}, nil
}

// Handler returns the HTTP handler served by the app.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	analysis := app.config.Analysis
	app.appLogger.Info().
		Msgf("Starting %s service on port %d (log_level=%s, min_requests_threshold=%d, max_samples_per_series=%d, max_batch_bytes=%d)",
			appName,
			app.config.Server.Port,
			app.config.Log.Level,
			analysis.MinRequestsThreshold,
			analysis.MaxSamplesPerSeries,
			analysis.MaxBatchBytes)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}

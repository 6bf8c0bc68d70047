package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/handlers"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/render"
	"github.com/ternarybob/cafefinder/internal/services/description"
	"github.com/ternarybob/cafefinder/internal/services/finder"
	"github.com/ternarybob/cafefinder/internal/services/places"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Services
	PlacesService      interfaces.PlacesService
	DescriptionService interfaces.DescriptionService
	FinderService      interfaces.FinderService
	Renderer           interfaces.Renderer

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	FinderHandler *handlers.FinderHandler
	PhotoHandler  *handlers.PhotoHandler
}

// New initializes the application. Missing API keys are logged, not fatal:
// the search page renders without them and searches degrade to empty results.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if missing := cfg.MissingKeys(); len(missing) > 0 {
		logger.Warn().
			Strs("missing_keys", missing).
			Msg("API keys not configured, searches will return degraded results")
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("description_provider", string(cfg.Description.Provider)).
		Str("description_model", cfg.Description.ModelName()).
		Msg("Application initialization complete")

	return app, nil
}

// initServices builds the services once; they are shared read-only by all requests
func (a *App) initServices() error {
	a.PlacesService = places.NewService(&a.Config.Places, a.Logger)

	descriptionService, err := description.NewFromConfig(context.Background(), &a.Config.Description, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create description service: %w", err)
	}
	a.DescriptionService = descriptionService

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	a.Renderer = renderer

	a.FinderService = finder.NewService(a.PlacesService, a.DescriptionService, a.Renderer, a.Logger)
	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Config, a.Logger)
	a.FinderHandler = handlers.NewFinderHandler(a.FinderService, a.APIHandler.NotFoundHandler, a.Logger)
	a.PhotoHandler = handlers.NewPhotoHandler(a.PlacesService, a.Logger)
}

// Close releases application resources
func (a *App) Close() error {
	a.Logger.Info().Msg("Application closed")
	return nil
}

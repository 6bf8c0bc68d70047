package finder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/models"
	"github.com/ternarybob/cafefinder/internal/services/description"
)

// MaxResults caps the number of places enriched and rendered per search
const MaxResults = 5

// Service implements the FinderService interface
type Service struct {
	places      interfaces.PlacesService
	description interfaces.DescriptionService
	renderer    interfaces.Renderer
	logger      arbor.ILogger
}

// NewService creates a new finder service
func NewService(
	places interfaces.PlacesService,
	description interfaces.DescriptionService,
	renderer interfaces.Renderer,
	logger arbor.ILogger,
) *Service {
	return &Service{
		places:      places,
		description: description,
		renderer:    renderer,
		logger:      logger,
	}
}

// Handle returns the full page (form only, no external calls) or, for fragment requests,
// the rendered cards of the top results. Upstream failures degrade the output and are
// never returned; the error is reserved for rendering failures.
func (s *Service) Handle(ctx context.Context, query models.SearchQuery, isFragmentRequest bool) (string, error) {
	if !isFragmentRequest {
		return s.renderer.RenderPage("", query)
	}

	startTime := time.Now()
	places := s.FindPlaces(ctx, query)

	html, err := s.renderer.RenderCards(places)
	if err != nil {
		return "", fmt.Errorf("failed to render result cards: %w", err)
	}

	s.logger.Info().
		Str("location", query.Location).
		Str("keyword", query.Keyword).
		Str("type", query.Type).
		Int("place_count", len(places)).
		Dur("duration", time.Since(startTime)).
		Msg("Search fragment assembled")

	return html, nil
}

// FindPlaces searches and enriches up to MaxResults places, preserving search order
func (s *Service) FindPlaces(ctx context.Context, query models.SearchQuery) []models.Place {
	summaries, err := s.places.SearchPlaces(ctx, query.Location, query.Keyword, query.Type)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("location", query.Location).
			Str("keyword", query.Keyword).
			Msg("Place search failed, returning no results")
		return []models.Place{}
	}
	if len(summaries) == 0 {
		s.logger.Info().
			Str("location", query.Location).
			Str("keyword", query.Keyword).
			Msg("Place search matched nothing")
		return []models.Place{}
	}

	if len(summaries) > MaxResults {
		summaries = summaries[:MaxResults]
	}

	// Each slot starts degraded so a panicking enrichment still yields a card
	results := make([]models.Place, len(summaries))
	for i, summary := range summaries {
		results[i] = models.NewPlace(summary.Name, s.places.PhotoURL(summary), description.FallbackDescription)
	}

	var wg sync.WaitGroup
	for i := range summaries {
		common.SafeGo(&wg, s.logger, "enrichPlace", func() {
			results[i] = s.enrich(ctx, summaries[i], query.UserPrompt)
		})
	}
	wg.Wait()

	return results
}

// enrich turns one search result into a Place: details, then description, then photo URL
func (s *Service) enrich(ctx context.Context, summary models.PlaceSummary, userPrompt string) models.Place {
	details, err := s.places.GetPlaceDetails(ctx, summary.PlaceID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("place_id", summary.PlaceID).
			Str("name", summary.Name).
			Msg("Place details unavailable, describing without them")
		details = models.PlaceDetails{}
	}

	text, err := s.description.DescribePlace(ctx, details, userPrompt)
	if err != nil || text == "" {
		s.logger.Warn().
			Err(err).
			Str("place_id", summary.PlaceID).
			Str("name", summary.Name).
			Msg("Description unavailable, using fallback")
		text = description.FallbackDescription
	}

	return models.NewPlace(summary.Name, s.places.PhotoURL(summary), text)
}

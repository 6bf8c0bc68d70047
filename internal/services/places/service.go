package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/common"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/models"
)

const (
	// SearchRadius is the fixed Nearby Search radius in meters
	SearchRadius = 500

	// DetailsFields is the fixed field list requested from Place Details
	DetailsFields = "name,rating,formatted_phone_number,reviews,opening_hours"

	// PhotoProxyPath is the same-origin endpoint that redeems photo references
	PhotoProxyPath = "/photo"

	// PlaceholderPhotoURL is used for places without photos
	PlaceholderPhotoURL = "/static/no_image.svg"
)

// ErrUpstream is wrapped by every error caused by the Places API or the transport to it
var ErrUpstream = errors.New("places upstream failure")

// Service implements the PlacesService interface
type Service struct {
	config     *common.PlacesConfig
	logger     arbor.ILogger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewService creates a new Places service instance
func NewService(config *common.PlacesConfig, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		logger:  logger,
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout(),
		},
	}
}

// SearchPlaces performs a Google Places Nearby Search and returns the results in API order
func (s *Service) SearchPlaces(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("radius", strconv.Itoa(SearchRadius))
	params.Set("type", placeType)
	params.Set("keyword", keyword)

	s.logger.Debug().
		Str("location", location).
		Str("keyword", keyword).
		Str("type", placeType).
		Msg("Calling Google Places Nearby Search API")

	var apiResp nearbySearchResponse
	if err := s.getJSON(ctx, "/nearbysearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != statusOK && apiResp.Status != statusZeroResults {
		return nil, fmt.Errorf("%w: nearby search status %s: %s", ErrUpstream, apiResp.Status, apiResp.ErrorMessage)
	}

	samplePlaces := []string{}
	for i, place := range apiResp.Results {
		if i < 3 {
			samplePlaces = append(samplePlaces, place.Name)
		}
	}

	s.logger.Info().
		Str("keyword", keyword).
		Str("type", placeType).
		Int("results_count", len(apiResp.Results)).
		Int("farthest_m", farthestDistance(location, apiResp.Results)).
		Str("status", apiResp.Status).
		Strs("sample_places", samplePlaces).
		Msg("Google Places Nearby Search completed")

	return apiResp.Results, nil
}

// GetPlaceDetails fetches the fixed details field set for a place
func (s *Service) GetPlaceDetails(ctx context.Context, placeID string) (models.PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", DetailsFields)

	var apiResp detailsResponse
	if err := s.getJSON(ctx, "/details/json", params, &apiResp); err != nil {
		return models.PlaceDetails{}, err
	}

	if apiResp.Status != "" && apiResp.Status != statusOK {
		return models.PlaceDetails{}, fmt.Errorf("%w: details status %s: %s", ErrUpstream, apiResp.Status, apiResp.ErrorMessage)
	}
	if apiResp.Result == nil {
		return models.PlaceDetails{}, fmt.Errorf("%w: details response for %s has no result", ErrUpstream, placeID)
	}

	return *apiResp.Result, nil
}

// PhotoURL returns the photo proxy path for the first photo reference, or the placeholder
func (s *Service) PhotoURL(summary models.PlaceSummary) string {
	return PhotoURL(summary)
}

// PhotoURL is the stateless form of Service.PhotoURL
func PhotoURL(summary models.PlaceSummary) string {
	if len(summary.Photos) == 0 || summary.Photos[0].PhotoReference == "" {
		return PlaceholderPhotoURL
	}
	return PhotoProxyPath + "?reference=" + url.QueryEscape(summary.Photos[0].PhotoReference)
}

// FetchPhoto downloads a place photo; the API key never leaves the server
func (s *Service) FetchPhoto(ctx context.Context, reference string) (*interfaces.Photo, error) {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(s.config.PhotoMaxWidth))
	params.Set("photoreference", reference)

	resp, err := s.get(ctx, "/photo", params)
	if err != nil {
		return nil, err
	}

	return &interfaces.Photo{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// getJSON performs a GET and decodes the JSON body into result
func (s *Service) getJSON(ctx context.Context, path string, params url.Values, result interface{}) error {
	resp, err := s.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrUpstream, path, err)
	}
	return nil
}

// get performs an authenticated GET; any non-2xx status is an error and closes the body
func (s *Service) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	logURL := fmt.Sprintf("%s%s?%s&key=***REDACTED***", s.baseURL, path, params.Encode())

	params.Set("key", s.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrUpstream, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// The transport error embeds the URL, including the key
		return nil, fmt.Errorf("%w: failed to call %s: %s", ErrUpstream, logURL, redact(err.Error(), s.apiKey))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrUpstream, logURL, resp.StatusCode, string(body))
	}

	return resp, nil
}

// farthestDistance returns the distance in whole meters of the farthest result from the
// search center, or 0 when the center cannot be parsed
func farthestDistance(location string, results []models.PlaceSummary) int {
	center, err := models.ParseLocation(location)
	if err != nil {
		return 0
	}
	farthest := 0.0
	for _, place := range results {
		if d, ok := place.DistanceFrom(center); ok && d > farthest {
			farthest = d
		}
	}
	return int(farthest)
}

func redact(text, secret string) string {
	if secret == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "***REDACTED***")
}

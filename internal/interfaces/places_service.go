package interfaces

import (
	"context"
	"io"

	"github.com/ternarybob/cafefinder/internal/models"
)

// PlacesService defines the interface for Google Places API operations
type PlacesService interface {
	// SearchPlaces performs a Nearby Search around location (fixed 500m radius).
	// Results are returned in API order. Any upstream failure is returned as an error;
	// callers decide how to degrade.
	SearchPlaces(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error)

	// GetPlaceDetails looks up the description context fields of a place
	GetPlaceDetails(ctx context.Context, placeID string) (models.PlaceDetails, error)

	// PhotoURL returns the same-origin photo proxy path for the first photo of the place,
	// or the placeholder image path when the place has no photos.
	PhotoURL(summary models.PlaceSummary) string

	// FetchPhoto downloads the photo binary for a photo reference.
	// The caller must close the returned Photo.
	FetchPhoto(ctx context.Context, reference string) (*Photo, error)
}

// Photo is a streamed photo binary with its upstream content type
type Photo struct {
	Body        io.ReadCloser
	ContentType string
}

// Close releases the photo body
func (p *Photo) Close() error {
	if p == nil || p.Body == nil {
		return nil
	}
	return p.Body.Close()
}

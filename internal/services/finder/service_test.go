package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/models"
	"github.com/ternarybob/cafefinder/internal/render"
	"github.com/ternarybob/cafefinder/internal/services/description"
	"github.com/ternarybob/cafefinder/internal/services/places"
)

// mockPlacesService implements interfaces.PlacesService for testing
type mockPlacesService struct {
	searchFunc  func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error)
	detailsFunc func(ctx context.Context, placeID string) (models.PlaceDetails, error)
	calls       int32
}

func (m *mockPlacesService) SearchPlaces(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.searchFunc != nil {
		return m.searchFunc(ctx, location, keyword, placeType)
	}
	return nil, nil
}

func (m *mockPlacesService) GetPlaceDetails(ctx context.Context, placeID string) (models.PlaceDetails, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.detailsFunc != nil {
		return m.detailsFunc(ctx, placeID)
	}
	return models.PlaceDetails{Name: "details-" + placeID}, nil
}

func (m *mockPlacesService) PhotoURL(summary models.PlaceSummary) string {
	return places.PhotoURL(summary)
}

func (m *mockPlacesService) FetchPhoto(ctx context.Context, reference string) (*interfaces.Photo, error) {
	return nil, errors.New("not used")
}

// mockDescriptionService implements interfaces.DescriptionService for testing
type mockDescriptionService struct {
	describeFunc func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error)
	calls        int32
}

func (m *mockDescriptionService) DescribePlace(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.describeFunc != nil {
		return m.describeFunc(ctx, details, userPrompt)
	}
	return "About " + details.Name, nil
}

func summaries(n int) []models.PlaceSummary {
	results := make([]models.PlaceSummary, 0, n)
	for i := 0; i < n; i++ {
		summary := models.PlaceSummary{
			PlaceID: fmt.Sprintf("id-%d", i),
			Name:    fmt.Sprintf("Cafe %d", i),
		}
		if i%2 == 0 {
			summary.Photos = []models.PlacePhoto{{PhotoReference: fmt.Sprintf("ref-%d", i)}}
		}
		results = append(results, summary)
	}
	return results
}

func newTestService(placesSvc *mockPlacesService, descriptionSvc *mockDescriptionService) *Service {
	return NewService(placesSvc, descriptionSvc, render.MustNew(), arbor.NewLogger())
}

func cards(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Find("div.border")
}

func TestHandle_FullPageMakesNoServiceCalls(t *testing.T) {
	placesSvc := &mockPlacesService{}
	descriptionSvc := &mockDescriptionService{}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), false)
	require.NoError(t, err)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, models.DefaultLocation)
	assert.Equal(t, int32(0), atomic.LoadInt32(&placesSvc.calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&descriptionSvc.calls))
}

func TestHandle_FragmentCapsAndPreservesOrder(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(8), nil
		},
	}
	descriptionSvc := &mockDescriptionService{}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)
	assert.NotContains(t, html, "<!DOCTYPE html>")

	found := cards(t, html)
	require.Equal(t, MaxResults, found.Length())
	found.Each(func(i int, card *goquery.Selection) {
		assert.Equal(t, fmt.Sprintf("Cafe %d", i), card.Find("h3").Text())
		assert.Equal(t, fmt.Sprintf("About details-id-%d", i), card.Find("div.text-gray-700").Text())
	})
	assert.Equal(t, int32(MaxResults), atomic.LoadInt32(&descriptionSvc.calls))
}

func TestHandle_FragmentOrderIgnoresLatency(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(MaxResults), nil
		},
		detailsFunc: func(ctx context.Context, placeID string) (models.PlaceDetails, error) {
			var index int
			_, err := fmt.Sscanf(placeID, "id-%d", &index)
			assert.NoError(t, err)
			// Earlier results finish last
			time.Sleep(time.Duration(MaxResults-index) * 20 * time.Millisecond)
			return models.PlaceDetails{Name: "details-" + placeID}, nil
		},
	}
	service := newTestService(placesSvc, &mockDescriptionService{})

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)

	found := cards(t, html)
	require.Equal(t, MaxResults, found.Length())
	found.Each(func(i int, card *goquery.Selection) {
		assert.Equal(t, fmt.Sprintf("Cafe %d", i), card.Find("h3").Text())
		assert.Equal(t, fmt.Sprintf("About details-id-%d", i), card.Find("div.text-gray-700").Text())
	})
}

func TestHandle_FragmentPhotoURLs(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(2), nil
		},
	}
	service := newTestService(placesSvc, &mockDescriptionService{})

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)

	found := cards(t, html)
	require.Equal(t, 2, found.Length())
	src, _ := found.Eq(0).Find("img").Attr("src")
	assert.Equal(t, "/photo?reference=ref-0", src)
	src, _ = found.Eq(1).Find("img").Attr("src")
	assert.Equal(t, places.PlaceholderPhotoURL, src)
}

func TestHandle_SearchFailureYieldsNoCards(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return nil, fmt.Errorf("%w: connection reset", places.ErrUpstream)
		},
	}
	descriptionSvc := &mockDescriptionService{}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)
	assert.Equal(t, "", html)
	assert.Equal(t, int32(0), atomic.LoadInt32(&descriptionSvc.calls))
}

func TestHandle_ZeroResultsYieldsNoCards(t *testing.T) {
	service := newTestService(&mockPlacesService{}, &mockDescriptionService{})

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)
	assert.Equal(t, "", html)
}

func TestHandle_DescribeFailureIsIsolated(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(5), nil
		},
	}
	descriptionSvc := &mockDescriptionService{
		describeFunc: func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
			if details.Name == "details-id-2" {
				return "", fmt.Errorf("%w: timeout", description.ErrNoDescription)
			}
			return "About " + details.Name, nil
		},
	}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)

	found := cards(t, html)
	require.Equal(t, 5, found.Length())
	found.Each(func(i int, card *goquery.Selection) {
		text := card.Find("div.text-gray-700").Text()
		if i == 2 {
			assert.Equal(t, description.FallbackDescription, text)
		} else {
			assert.Equal(t, fmt.Sprintf("About details-id-%d", i), text)
		}
	})
}

func TestHandle_DetailsFailureDescribesEmptyRecord(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(1), nil
		},
		detailsFunc: func(ctx context.Context, placeID string) (models.PlaceDetails, error) {
			return models.PlaceDetails{}, places.ErrUpstream
		},
	}
	var received models.PlaceDetails
	descriptionSvc := &mockDescriptionService{
		describeFunc: func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
			received = details
			return "Generic", nil
		},
	}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)
	assert.True(t, received.IsEmpty())
	assert.Equal(t, "Generic", cards(t, html).Find("div.text-gray-700").Text())
}

func TestHandle_EmptyDescriptionUsesFallback(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(1), nil
		},
	}
	descriptionSvc := &mockDescriptionService{
		describeFunc: func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
			return "", nil
		},
	}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)
	assert.Equal(t, description.FallbackDescription, cards(t, html).Find("div.text-gray-700").Text())
}

func TestHandle_PanicInEnrichmentKeepsCard(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(3), nil
		},
	}
	descriptionSvc := &mockDescriptionService{
		describeFunc: func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
			if details.Name == "details-id-1" {
				panic("backend exploded")
			}
			return "About " + details.Name, nil
		},
	}
	service := newTestService(placesSvc, descriptionSvc)

	html, err := service.Handle(context.Background(), models.DefaultSearchQuery(), true)
	require.NoError(t, err)

	found := cards(t, html)
	require.Equal(t, 3, found.Length())
	assert.Equal(t, "Cafe 1", found.Eq(1).Find("h3").Text())
	assert.Equal(t, description.FallbackDescription, found.Eq(1).Find("div.text-gray-700").Text())
	assert.Equal(t, "About details-id-2", found.Eq(2).Find("div.text-gray-700").Text())
}

func TestHandle_PassesQueryThrough(t *testing.T) {
	query := models.SearchQuery{Location: "1,2", Keyword: "vegan", Type: "restaurant", UserPrompt: "Is it quiet?"}

	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			assert.Equal(t, "1,2", location)
			assert.Equal(t, "vegan", keyword)
			assert.Equal(t, "restaurant", placeType)
			return summaries(2), nil
		},
	}
	descriptionSvc := &mockDescriptionService{
		describeFunc: func(ctx context.Context, details models.PlaceDetails, userPrompt string) (string, error) {
			assert.Equal(t, "Is it quiet?", userPrompt)
			return "ok", nil
		},
	}
	service := newTestService(placesSvc, descriptionSvc)

	_, err := service.Handle(context.Background(), query, true)
	require.NoError(t, err)
}

func TestHandle_FragmentIsStateless(t *testing.T) {
	placesSvc := &mockPlacesService{
		searchFunc: func(ctx context.Context, location, keyword, placeType string) ([]models.PlaceSummary, error) {
			return summaries(3), nil
		},
	}
	service := newTestService(placesSvc, &mockDescriptionService{})
	query := models.DefaultSearchQuery()

	direct, err := service.Handle(context.Background(), query, true)
	require.NoError(t, err)

	_, err = service.Handle(context.Background(), query, false)
	require.NoError(t, err)
	afterPage, err := service.Handle(context.Background(), query, true)
	require.NoError(t, err)

	assert.Equal(t, direct, afterPage)
}

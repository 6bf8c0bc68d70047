package places

import "github.com/ternarybob/cafefinder/internal/models"

// nearbySearchResponse represents the Google Places Nearby Search API response
type nearbySearchResponse struct {
	HTMLAttributions []string              `json:"html_attributions"`
	Results          []models.PlaceSummary `json:"results"`
	Status           string                `json:"status"`
	ErrorMessage     string                `json:"error_message,omitempty"`
	NextPageToken    string                `json:"next_page_token,omitempty"`
}

// detailsResponse represents the Google Place Details API response
type detailsResponse struct {
	HTMLAttributions []string             `json:"html_attributions"`
	Result           *models.PlaceDetails `json:"result"`
	Status           string               `json:"status"`
	ErrorMessage     string               `json:"error_message,omitempty"`
}

// apiStatus values accepted as success
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	point, err := ParseLocation(DefaultLocation)
	require.NoError(t, err)
	assert.InDelta(t, 47.487915018023436, point.Lat(), 1e-12)
	assert.InDelta(t, 19.068177992485133, point.Lon(), 1e-12)

	point, err = ParseLocation("47.5, 19.05")
	require.NoError(t, err)
	assert.InDelta(t, 19.05, point.Lon(), 1e-12)
}

func TestParseLocation_Invalid(t *testing.T) {
	for _, location := range []string{"", "47.5", "north,east", "47.5,east", "91,0", "0,181", "1,2,3"} {
		_, err := ParseLocation(location)
		assert.Error(t, err, location)
	}
}

func TestPlaceDetailsIsEmpty(t *testing.T) {
	assert.True(t, PlaceDetails{}.IsEmpty())
	assert.False(t, PlaceDetails{Name: "Espresso Embassy"}.IsEmpty())
	assert.False(t, PlaceDetails{OpeningHours: &OpeningHours{OpenNow: true}}.IsEmpty())
}

func TestNewPlace(t *testing.T) {
	place := NewPlace("Espresso Embassy", "/photo?reference=abc", "Great flat white.")
	assert.Equal(t, "Espresso Embassy", place.Name())
	assert.Equal(t, "/photo?reference=abc", place.PhotoURL())
	assert.Equal(t, "Great flat white.", place.Description())
}

func TestPlaceSummaryDistanceFrom(t *testing.T) {
	center, err := ParseLocation("47.4979,19.0402")
	require.NoError(t, err)

	_, ok := PlaceSummary{Name: "No geometry"}.DistanceFrom(center)
	assert.False(t, ok)

	// Roughly 0.0045 degrees of latitude north of the center
	summary := PlaceSummary{Geometry: &Geometry{Location: &LatLng{Lat: 47.5024, Lng: 19.0402}}}
	distance, ok := summary.DistanceFrom(center)
	require.True(t, ok)
	assert.InDelta(t, 500, distance, 10)
}

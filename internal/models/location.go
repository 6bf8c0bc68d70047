package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// ParseLocation parses a "lat,lng" string into a point (orb points are [lng, lat]).
// The finder never rejects a request on a parse failure; the result is only used for logging.
func ParseLocation(location string) (orb.Point, error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("location %q is not in lat,lng form", location)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid latitude in %q: %w", location, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid longitude in %q: %w", location, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, fmt.Errorf("location %q is out of range", location)
	}

	return orb.Point{lng, lat}, nil
}

// Point returns the place's coordinates, if the search result carried them
func (p PlaceSummary) Point() (orb.Point, bool) {
	if p.Geometry == nil || p.Geometry.Location == nil {
		return orb.Point{}, false
	}
	return orb.Point{p.Geometry.Location.Lng, p.Geometry.Location.Lat}, true
}

// DistanceFrom returns the great-circle distance in meters from center
func (p PlaceSummary) DistanceFrom(center orb.Point) (float64, bool) {
	point, ok := p.Point()
	if !ok {
		return 0, false
	}
	return geo.Distance(center, point), true
}

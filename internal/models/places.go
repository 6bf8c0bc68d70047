package models

// Defaults applied when a search parameter is absent from the request
const (
	DefaultLocation = "47.487915018023436,19.068177992485133"
	DefaultKeyword  = "speciality"
	DefaultType     = "cafe"
	DefaultPrompt   = ""
)

// SearchQuery holds the parameters of one finder request
type SearchQuery struct {
	Location   string `json:"location"` // "lat,lng"
	Keyword    string `json:"keyword"`
	Type       string `json:"type"`
	UserPrompt string `json:"prompt"`
}

// DefaultSearchQuery returns a query with every field at its default
func DefaultSearchQuery() SearchQuery {
	return SearchQuery{
		Location:   DefaultLocation,
		Keyword:    DefaultKeyword,
		Type:       DefaultType,
		UserPrompt: DefaultPrompt,
	}
}

// PlaceSummary represents a single result of a Google Places Nearby Search
type PlaceSummary struct {
	PlaceID          string       `json:"place_id"`
	Name             string       `json:"name"`
	Photos           []PlacePhoto `json:"photos,omitempty"`
	Vicinity         string       `json:"vicinity,omitempty"`
	Rating           float64      `json:"rating,omitempty"`
	UserRatingsTotal int          `json:"user_ratings_total,omitempty"`
	Types            []string     `json:"types,omitempty"`
	Geometry         *Geometry    `json:"geometry,omitempty"`
}

// PlacePhoto represents a place photo reference
type PlacePhoto struct {
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width,omitempty"`
	Height           int      `json:"height,omitempty"`
	HTMLAttributions []string `json:"html_attributions,omitempty"`
}

// Geometry represents the geometry information of a place
type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// LatLng represents a geographic coordinate
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceDetails is the subset of a Place Details result used as description context.
// It is serialized to JSON as-is, so absent fields are omitted.
type PlaceDetails struct {
	Name                 string        `json:"name,omitempty"`
	Rating               float64       `json:"rating,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Reviews              []Review      `json:"reviews,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
}

// IsEmpty reports whether no detail field is populated
func (d PlaceDetails) IsEmpty() bool {
	return d.Name == "" && d.Rating == 0 && d.FormattedPhoneNumber == "" &&
		len(d.Reviews) == 0 && d.OpeningHours == nil
}

// Review represents a single user review
type Review struct {
	AuthorName              string `json:"author_name,omitempty"`
	Language                string `json:"language,omitempty"`
	Rating                  int    `json:"rating,omitempty"`
	RelativeTimeDescription string `json:"relative_time_description,omitempty"`
	Text                    string `json:"text,omitempty"`
	Time                    int64  `json:"time,omitempty"`
}

// OpeningHours represents the opening hours of a place
type OpeningHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	Periods     []Period `json:"periods,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Period represents a single opening period
type Period struct {
	Open  *DayTime `json:"open,omitempty"`
	Close *DayTime `json:"close,omitempty"`
}

// DayTime represents a specific day and time
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Place is one rendered result card. It is immutable once constructed.
type Place struct {
	name        string
	photoURL    string
	description string
}

// NewPlace creates a Place
func NewPlace(name, photoURL, description string) Place {
	return Place{name: name, photoURL: photoURL, description: description}
}

func (p Place) Name() string        { return p.name }
func (p Place) PhotoURL() string    { return p.photoURL }
func (p Place) Description() string { return p.description }

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/ternarybob/cafefinder/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer produces the search page and result card markup
type Renderer struct {
	templates *template.Template
}

type cardView struct {
	Name        string
	PhotoURL    string
	Description string
}

type pageView struct {
	Query models.SearchQuery
	Cards template.HTML
}

// New parses the embedded templates
func New() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// MustNew is New for package initialization and tests
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// RenderCards renders one card per place in order. Names, descriptions and photo URLs are escaped.
func (r *Renderer) RenderCards(places []models.Place) (string, error) {
	if len(places) == 0 {
		return "", nil
	}

	views := make([]cardView, 0, len(places))
	for _, place := range places {
		views = append(views, cardView{
			Name:        place.Name(),
			PhotoURL:    place.PhotoURL(),
			Description: place.Description(),
		})
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "cards", views); err != nil {
		return "", fmt.Errorf("failed to render cards: %w", err)
	}
	return buf.String(), nil
}

// RenderPage renders the full document. cardsHTML must come from RenderCards and is inserted unescaped.
func (r *Renderer) RenderPage(cardsHTML string, query models.SearchQuery) (string, error) {
	var buf bytes.Buffer
	data := pageView{
		Query: query,
		Cards: template.HTML(cardsHTML),
	}
	if err := r.templates.ExecuteTemplate(&buf, "page", data); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

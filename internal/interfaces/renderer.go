package interfaces

import "github.com/ternarybob/cafefinder/internal/models"

// Renderer produces the HTML returned by the finder
type Renderer interface {
	RenderCards(places []models.Place) (string, error)
	RenderPage(cardsHTML string, query models.SearchQuery) (string, error)
}

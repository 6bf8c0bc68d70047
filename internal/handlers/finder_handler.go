package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/interfaces"
	"github.com/ternarybob/cafefinder/internal/models"
)

// FinderHandler serves the search page and its result fragments
type FinderHandler struct {
	finder   interfaces.FinderService
	notFound http.HandlerFunc
	logger   arbor.ILogger
}

func NewFinderHandler(finder interfaces.FinderService, notFound http.HandlerFunc, logger arbor.ILogger) *FinderHandler {
	return &FinderHandler{
		finder:   finder,
		notFound: notFound,
		logger:   logger,
	}
}

// IndexHandler handles GET / in both page and fragment mode
func (h *FinderHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.notFound(w, r)
		return
	}
	if !RequireMethod(w, r, "GET") {
		return
	}

	query := ParseSearchQuery(r)
	fragment := IsFragmentRequest(r)

	html, err := h.finder.Handle(r.Context(), query, fragment)
	if err != nil {
		h.logger.Error().
			Err(err).
			Bool("fragment", fragment).
			Msg("Failed to render finder response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	WriteHTML(w, html)
}

// ParseSearchQuery reads the search parameters, defaulting only those that are absent
func ParseSearchQuery(r *http.Request) models.SearchQuery {
	return models.SearchQuery{
		Location:   QueryParam(r, "location", models.DefaultLocation),
		Keyword:    QueryParam(r, "keyword", models.DefaultKeyword),
		Type:       QueryParam(r, "type", models.DefaultType),
		UserPrompt: QueryParam(r, "prompt", models.DefaultPrompt),
	}
}

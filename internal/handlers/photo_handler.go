package handlers

import (
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/cafefinder/internal/interfaces"
)

const (
	missingReferenceMessage = "Missing 'reference' parameter."
	photoErrorMessage       = "Error fetching image."
)

// PhotoHandler proxies place photos so the Places API key stays on the server
type PhotoHandler struct {
	places interfaces.PlacesService
	logger arbor.ILogger
}

func NewPhotoHandler(places interfaces.PlacesService, logger arbor.ILogger) *PhotoHandler {
	return &PhotoHandler{
		places: places,
		logger: logger,
	}
}

// PhotoProxyHandler handles GET /photo?reference=<token>
func (h *PhotoHandler) PhotoProxyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	// An empty reference is still forwarded; only an absent one is rejected.
	query := r.URL.Query()
	if !query.Has("reference") {
		WriteText(w, http.StatusBadRequest, missingReferenceMessage)
		return
	}

	photo, err := h.places.FetchPhoto(r.Context(), query.Get("reference"))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("Failed to fetch place photo")
		WriteText(w, http.StatusInternalServerError, photoErrorMessage)
		return
	}
	defer photo.Close()

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, photo.Body); err != nil {
		h.logger.Debug().
			Err(err).
			Msg("Photo stream interrupted")
	}
}

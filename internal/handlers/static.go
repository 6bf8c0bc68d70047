package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed static/no_image.svg
var placeholderImage []byte

// PlaceholderImageHandler serves the image shown for places without photos
func PlaceholderImageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(placeholderImage)
}

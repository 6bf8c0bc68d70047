package server

import (
	"net/http"

	"github.com/ternarybob/cafefinder/internal/handlers"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Search page and result fragments
	mux.HandleFunc("/", s.app.FinderHandler.IndexHandler)

	// Photo proxy keeps the Places API key server-side
	mux.HandleFunc("/photo", s.app.PhotoHandler.PhotoProxyHandler)

	// Static files
	mux.HandleFunc("/static/no_image.svg", handlers.PlaceholderImageHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

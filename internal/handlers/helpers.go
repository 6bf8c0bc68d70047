package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteHTML writes an HTML response with status 200.
func WriteHTML(w http.ResponseWriter, html string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(html))
	return err
}

// WriteText writes a plain text response with the specified status code.
func WriteText(w http.ResponseWriter, statusCode int, message string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := w.Write([]byte(message))
	return err
}

// IsFragmentRequest reports whether the browser asked for the result fragment only
func IsFragmentRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// QueryParam returns the named query parameter, or fallback when it is absent.
// A present but empty parameter is returned as the empty string.
func QueryParam(r *http.Request, name, fallback string) string {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return fallback
	}
	return values[0]
}

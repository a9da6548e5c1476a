// Package middleware provides HTTP middleware for the dashboard server.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that lets the listed origins call the
// JSON API. Each origin must be a full origin (scheme + host, no trailing
// slash). The dashboard only reads data and updates session selections, so
// only GET, POST, and PUT are allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		ExposedHeaders: []string{"X-Total-Count"},
		MaxAge:         600,
	})
	return c.Handler
}

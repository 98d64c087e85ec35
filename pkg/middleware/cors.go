package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the admin dashboard and app frontends to call the API.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	allowed := []string{"http://localhost:3000"}
	if frontendURL != "" {
		allowed = append(allowed, frontendURL)
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

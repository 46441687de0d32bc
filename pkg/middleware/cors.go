package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS restricts browsers to the configured dashboard origins. The API
// is read-only plus login, so GET/POST/OPTIONS is the whole surface;
// Content-Disposition is exposed for the markdown downloads.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}

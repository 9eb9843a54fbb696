package handler

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

// WithCORS answers preflights and sets cross-origin headers for /api/ routes.
// Other paths such as /ping are served untouched.
func WithCORS(next http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	withCORS := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", idempotencyHeader},
		ExposedHeaders: []string{replayedHeader},
		MaxAge:         600,
	}).Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			withCORS.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

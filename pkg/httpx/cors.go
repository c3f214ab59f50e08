package httpx

import (
	"net/http"

	"github.com/rs/cors"
)

// DefaultAllowedOrigins are the local frontends allowed when nothing is configured.
var DefaultAllowedOrigins = []string{
	"http://localhost:8080",
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS allows credentialed cross-origin calls from the given origins.
// Requests without an Origin header are not affected.
func CORS(origins []string) Middleware {
	if len(origins) == 0 {
		origins = DefaultAllowedOrigins
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Bootstrap-Token", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
	})
	return c.Handler
}

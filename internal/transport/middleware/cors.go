package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS открытая политика для разработки: любые методы и заголовки, с credentials.
// При "*" в origins браузеру возвращается Origin запроса
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	// С credentials браузер не принимает Allow-Origin: *
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		opts.AllowedOrigins = nil
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	}

	return cors.Handler(opts)
}

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jambidev/barokah/internal/metrics"
)

// Metrics counts requests by chi route pattern so path parameters do not
// explode label cardinality.
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.IncHTTP(route)
		})
	}
}

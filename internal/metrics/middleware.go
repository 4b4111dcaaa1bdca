package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UnmatchedRoute labels requests that no status route handled.
const UnmatchedRoute = "unmatched"

// RequestMiddleware counts status server requests per chi route pattern.
// Responses with status >= 400 also count as errors.
func RequestMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			m.ObserveRequest(Route(r), ww.Status())
		})
	}
}

// Route returns the chi route pattern that served r, or UnmatchedRoute.
// Only meaningful once the router has dispatched r.
func Route(r *http.Request) string {
	if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}

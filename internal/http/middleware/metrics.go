package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-article-feed/internal/metrics"
)

// Metrics считает запросы и их длительность по шаблону маршрута chi
// (например, "/article/{id}"), чтобы не раздувать кардинальность меток.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(sw.Status()), time.Since(start))
		})
	}
}

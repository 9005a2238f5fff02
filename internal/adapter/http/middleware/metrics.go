package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unimarket/catalog-service/internal/platform/metrics"
)

// RequestMetrics records per-route request latency. The label is the chi
// route pattern, not the raw path, so ids do not explode the cardinality.
func RequestMetrics(m *metrics.MetricsManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			// The route pattern is only resolved once chi has matched.
			operation := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()
			m.ObserveLatency(operation, time.Since(start).Seconds())
		})
	}
}

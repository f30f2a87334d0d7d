package middleware

import (
	"net/http"
	"time"

	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latency and in-flight requests per chi
// route pattern.
func Metrics(m *metrics.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			active := m.HTTPActiveRequests.WithLabelValues()
			active.Inc()
			defer active.Dec()

			start := time.Now()
			ww := newWrappedResponseWriter(w)
			next.ServeHTTP(ww, r)
			m.RecordHTTPRequest(r.Method, routePattern(r), ww.statusCode, time.Since(start))
		})
	}
}

//Personal.AI order the ending

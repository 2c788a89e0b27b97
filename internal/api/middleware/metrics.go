package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

// MetricsMiddleware собирает счетчик, гистограмму длительности и число
// запросов в обработке. Метка route - шаблон маршрута mux, а не сырой путь.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			inFlight := m.HTTPRequestsInFlight.WithLabelValues()
			inFlight.Inc()
			defer inFlight.Dec()

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			route := routeTemplate(r)
			m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	if current := mux.CurrentRoute(r); current != nil {
		if tpl, err := current.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

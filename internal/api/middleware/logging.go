package middleware

import (
	"net/http"
	"time"
)

// statusRecorder запоминает код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// Logging пишет строку access-лога на каждый запрос
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			logger.Info("%s %s - status=%d, duration=%s, request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), RequestIDFromContext(r.Context()))
		})
	}
}

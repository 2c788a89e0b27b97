package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
)

// Recovery перехватывает панику в handler и отвечает 500
func Recovery(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("%s %s - panic: %v, request_id=%s\n%s",
						r.Method, r.URL.Path, rec, RequestIDFromContext(r.Context()), debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SmartScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SmartScheduler/pkg/metrics"
)

const (
	msgRateLimited = "слишком много запросов, попробуйте позже"

	limiterIdleTTL = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	metrics  *metrics.Metrics
	logger   Logger
	now      func() time.Time
}

// NewRateLimiter создает ограничитель. metrics может быть nil.
func NewRateLimiter(requestsPerSecond float64, burst int, m *metrics.Metrics, logger Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Middleware отвечает 429, если клиент превысил лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.limiter(ip).Allow() {
			l.logger.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
			if l.metrics != nil {
				l.metrics.HTTPRateLimited.WithLabelValues(routeTemplate(r)).Inc()
			}
			w.Header().Set("Retry-After", "1")
			handlers.RespondError(w, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter
}

// Cleanup удаляет лимитеры клиентов, не приходивших дольше limiterIdleTTL
func (l *RateLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-limiterIdleTTL)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
			removed++
		}
	}
	return removed
}

// clientIP берет первый адрес из X-Forwarded-For, затем X-Real-IP, затем RemoteAddr
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

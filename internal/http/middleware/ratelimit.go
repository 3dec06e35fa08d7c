package middleware

import (
	"net"
	"net/http"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/metrics"
	logctx "github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/ratelimit"
)

// RateLimit ограничивает число запросов с одного IP.
// Ошибка лимитера не блокирует запрос: она логируется, запрос пропускается.
func RateLimit(l ratelimit.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			allowed, err := l.Allow(r.Context(), key)
			if err != nil {
				logctx.From(r.Context()).Warn("rate_limiter_failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				metrics.RecordLoginRateLimited()
				logctx.From(r.Context()).Warn("rate_limited", "ip", key, "path", r.URL.Path)
				apierrors.WriteError(w, r, apierrors.ErrTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берёт хост из RemoteAddr; за прокси его выставляет chi middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

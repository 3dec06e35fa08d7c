package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	logctx "github.com/pribylovaa/go-article-feed/internal/pkg/log"
)

// Timeout ограничивает время обработки запроса дедлайном d.
// Если у запроса уже есть более ранний дедлайн, он сохраняется.
// Обработчик, который упёрся в дедлайн и ничего не записал,
// получает 504 в конверте ошибки. Значение <=0 делает мидлвар no-op.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			if sw.status == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logctx.From(ctx).Warn("request_deadline_exceeded", "path", r.URL.Path, "timeout", d)
				apierrors.WriteError(w, r, ctx.Err())
			}
		})
	}
}

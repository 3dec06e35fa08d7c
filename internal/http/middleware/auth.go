package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	logctx "github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// TokenVerifier — проверка токена доступа; реализуется service.Service.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (uuid.UUID, error)
}

type userIDKey struct{}

// WithUserID кладёт идентификатор аутентифицированного пользователя в контекст.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID возвращает идентификатор пользователя из контекста.
// Второе значение false — запрос анонимный.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// AuthBearer требует валидный Bearer-токен в Authorization.
// Нет токена или он невалиден - 401 в конверте ошибки.
func AuthBearer(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				apierrors.WriteError(w, r, service.ErrUnauthenticated)
				return
			}

			id, err := v.VerifyToken(r.Context(), token)
			if err != nil {
				logctx.From(r.Context()).Debug("auth_rejected", "err", err)
				apierrors.WriteError(w, r, err)
				return
			}

			ctx := logctx.With(WithUserID(r.Context(), id), "user_id", id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth аутентифицирует запрос, если токен передан и валиден;
// иначе пропускает запрос анонимным.
func OptionalAuth(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if id, err := v.VerifyToken(r.Context(), token); err == nil {
					ctx := logctx.With(WithUserID(r.Context(), id), "user_id", id.String())
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))

	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}

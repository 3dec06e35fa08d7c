package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/pribylovaa/go-article-feed/internal/pkg/log"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken выпускает подписанный HS256 токен с claims sub, role, iat, exp, iss.
func (s *Service) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	const op = "service/token/IssueToken"

	now := s.now()

	claims := accessClaims{
		Role: models.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenTTL)),
			Issuer:    s.cfg.Auth.Issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		log.From(ctx).Error("token_sign_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return signed, nil
}

// VerifyToken проверяет токен и возвращает идентификатор пользователя.
// Проверка закрыта по умолчанию: любая ошибка формата/подписи/issuer — ErrInvalidToken,
// истёкший срок — ErrTokenExpired.
func (s *Service) VerifyToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	const op = "service/token/VerifyToken"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Auth.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Auth.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		log.From(ctx).Debug("token_invalid", slog.String("op", op), slog.String("err", err.Error()))

		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Role != models.RoleUser {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil || uid == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return uid, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-article-feed/internal/models"
	"github.com/stretchr/testify/require"
)

func TestIssueToken_Claims(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvc(t)
	uid := uuid.New()

	token, err := svc.IssueToken(context.Background(), uid)
	require.NoError(t, err)

	claims := &accessClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(svc.cfg.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	require.Equal(t, uid.String(), claims.Subject)
	require.Equal(t, models.RoleUser, claims.Role)
	require.Equal(t, "feed-service", claims.Issuer)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvc(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.IssueToken(context.Background(), uuid.New())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC() }
	_, err = svc.VerifyToken(context.Background(), token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyToken_FailsClosed(t *testing.T) {
	t.Parallel()

	svc, _, _ := newSvc(t)

	sign := func(secret string, method jwt.SigningMethod, claims jwt.Claims) string {
		var key interface{} = []byte(secret)
		if method == jwt.SigningMethodNone {
			key = jwt.UnsafeAllowNoneSignatureType
		}
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid := func() accessClaims {
		now := time.Now()
		return accessClaims{
			Role: models.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				Issuer:    "feed-service",
			},
		}
	}

	wrongIssuer := valid()
	wrongIssuer.Issuer = "other"
	badSubject := valid()
	badSubject.Subject = "not-a-uuid"
	noExp := valid()
	noExp.ExpiresAt = nil
	wrongRole := valid()
	wrongRole.Role = "admin"

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "wrong_secret", token: sign("other-secret", jwt.SigningMethodHS256, valid())},
		{name: "alg_none", token: sign("", jwt.SigningMethodNone, valid())},
		{name: "wrong_issuer", token: sign("unit-secret", jwt.SigningMethodHS256, wrongIssuer)},
		{name: "bad_subject", token: sign("unit-secret", jwt.SigningMethodHS256, badSubject)},
		{name: "no_exp", token: sign("unit-secret", jwt.SigningMethodHS256, noExp)},
		{name: "wrong_role", token: sign("unit-secret", jwt.SigningMethodHS256, wrongRole)},
	}

	for _, tt := range tests {
		_, err := svc.VerifyToken(context.Background(), tt.token)
		require.ErrorIs(t, err, ErrInvalidToken, tt.name)
	}
}

package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-article-feed/internal/service"
)

func TestToHTTP_BaseMapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
	}{
		{"bad_request", ErrBadRequest, http.StatusBadRequest},
		{"invalid_argument", service.ErrInvalidArgument, http.StatusBadRequest},
		{"invalid_interaction", service.ErrInvalidInteraction, http.StatusBadRequest},
		{"unsupported_image", service.ErrUnsupportedImage, http.StatusBadRequest},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"token_expired", service.ErrTokenExpired, http.StatusUnauthorized},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized},
		{"not_found", service.ErrNotFound, http.StatusNotFound},
		{"already_exists", service.ErrAlreadyExists, http.StatusConflict},
		{"too_large", service.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
		{"rate_limited", ErrTooManyRequests, http.StatusTooManyRequests},
		{"canceled", context.Canceled, StatusClientClosedRequest},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"internal", service.ErrInternal, http.StatusInternalServerError},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service/op: %w", tc.in)

			gotStatus, env := ToHTTP(wrapped)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.False(t, env.Success)
			require.NotEmpty(t, env.Message)
			require.Nil(t, env.Data)
			require.Empty(t, env.Token)
		})
	}
}

func TestToHTTP_ValidationReasonIsExposed(t *testing.T) {
	err := fmt.Errorf("service/accounts/Register: %w", &service.ValidationError{Reason: "password is too short"})

	gotStatus, env := ToHTTP(err)
	require.Equal(t, http.StatusBadRequest, gotStatus)
	require.Equal(t, "password is too short", env.Message)
}

func TestToHTTP_InternalDetailsDoNotLeak(t *testing.T) {
	_, env := ToHTTP(errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	require.Equal(t, "internal error", env.Message)
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, env := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal error", env.Message)
	require.False(t, env.Success)
}

func TestWriteError_EnvelopeAndRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/article/x", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, service.ErrNotFound)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	require.Equal(t, "rid-1", rr.Header().Get("X-Request-Id"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "not found", body["message"])
	_, hasData := body["data"]
	require.False(t, hasData)
}

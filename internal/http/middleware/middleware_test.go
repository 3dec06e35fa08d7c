package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-article-feed/internal/metrics"
	logctx "github.com/pribylovaa/go-article-feed/internal/pkg/log"
	"github.com/pribylovaa/go-article-feed/internal/ratelimit"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// capHandler — тестовый slog.Handler, который:
//   - аккумулирует базовые attrs, приходящие через Logger.With(...);
//   - собирает attrs последней записи в map[string]any.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)

	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}

	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) > 0 {
		h.base = append(h.base, attrs...)
	}

	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()
	return req
}

type envelope struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

// fakeVerifier принимает ровно один токен.
type fakeVerifier struct {
	token string
	id    uuid.UUID
	err   error
}

func (f fakeVerifier) VerifyToken(_ context.Context, token string) (uuid.UUID, error) {
	if token == f.token {
		return f.id, nil
	}
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return uuid.Nil, service.ErrInvalidToken
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	m1 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m1-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m1-end")
		})
	}

	m2 := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "m2-begin")
			next.ServeHTTP(w, r)
			order = append(order, "m2-end")
		})
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	chain := Chain(final, m1, m2)
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenID, seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = r.Header.Get("X-Request-Id")
		seenCtxID = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get("X-Request-Id")
	require.Len(t, respID, 32)
	require.Equal(t, respID, seenID)
	require.Equal(t, respID, seenCtxID)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"
	var seenCtxID string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtxID = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set("X-Request-Id", given)
	Chain(h, RequestID()).ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get("X-Request-Id"))
	require.Equal(t, given, seenCtxID)
}

func TestAuthBearer_PopulatesUserID(t *testing.T) {
	id := uuid.New()
	var got uuid.UUID
	var ok bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := makeReq("/auth")
	req.Header.Set("Authorization", "Bearer good-token")
	Chain(h, AuthBearer(fakeVerifier{token: "good-token", id: id})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestAuthBearer_AddsUserIDToRequestLogger(t *testing.T) {
	id := uuid.New()
	h := &capHandler{}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logctx.From(r.Context()).Info("article_created")
	})

	req := makeReq("/auth/log")
	req = req.WithContext(logctx.Into(req.Context(), slog.New(h)))
	req.Header.Set("Authorization", "Bearer good-token")
	Chain(final, AuthBearer(fakeVerifier{token: "good-token", id: id})).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "article_created", h.lastMsg)
	require.Equal(t, id.String(), h.attrs["user_id"])
}

func TestAuthBearer_Rejects(t *testing.T) {
	tcs := []struct {
		name   string
		header string
		err    error
		msg    string
	}{
		{"missing", "", nil, "authentication required"},
		{"basic", "Basic aaa", nil, "authentication required"},
		{"empty_bearer", "Bearer   ", nil, "authentication required"},
		{"invalid", "Bearer bad", nil, "invalid token"},
		{"expired", "Bearer old", service.ErrTokenExpired, "token expired"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			rr := httptest.NewRecorder()
			req := makeReq("/auth")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			Chain(h, AuthBearer(fakeVerifier{token: "good", id: uuid.New(), err: tc.err})).ServeHTTP(rr, req)

			require.False(t, called)
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			env := decodeEnvelope(t, rr)
			require.False(t, env.Success)
			require.Equal(t, tc.msg, env.Message)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	id := uuid.New()
	mw := OptionalAuth(fakeVerifier{token: "good", id: id})

	var ok bool
	var got uuid.UUID
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// Без токена - анонимно.
	rr := httptest.NewRecorder()
	Chain(h, mw).ServeHTTP(rr, makeReq("/a"))
	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, ok)

	// Невалидный токен - тоже анонимно.
	rr = httptest.NewRecorder()
	req := makeReq("/a")
	req.Header.Set("Authorization", "Bearer bad")
	Chain(h, mw).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, ok)

	// Валидный токен (регистр префикса не важен).
	rr = httptest.NewRecorder()
	req = makeReq("/a")
	req.Header.Set("Authorization", "bearer good")
	Chain(h, mw).ServeHTTP(rr, req)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var hasDeadline bool
	var left time.Duration

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dl, ok := r.Context().Deadline()
		hasDeadline = ok
		if ok {
			left = time.Until(dl)
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(rr, makeReq("/timeout"))

	require.True(t, hasDeadline)
	require.Greater(t, left, time.Duration(0))
}

func TestTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	var childDL time.Time

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		childDL, _ = r.Context().Deadline()
		w.WriteHeader(http.StatusOK)
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := makeReq("/timeout2").WithContext(parent)

	rr := httptest.NewRecorder()
	Chain(h, Timeout(time.Second)).ServeHTTP(rr, req)

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestTimeout_ZeroIsNoop(t *testing.T) {
	var hasDeadline bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	})

	Chain(h, Timeout(0)).ServeHTTP(httptest.NewRecorder(), makeReq("/t"))
	require.False(t, hasDeadline)
}

func TestTimeout_SilentHandler_Gets504Envelope(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	rr := httptest.NewRecorder()
	Chain(h, Timeout(10*time.Millisecond)).ServeHTTP(rr, makeReq("/slow"))

	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "request timed out", env.Message)
}

func TestTimeout_WrittenResponseIsKept(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	rr := httptest.NewRecorder()
	Chain(h, Timeout(10*time.Millisecond)).ServeHTTP(rr, makeReq("/slow2"))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Empty(t, rr.Body.String())
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom: secret detail")
	})

	rr := httptest.NewRecorder()
	Chain(panicHandler, Recover()).ServeHTTP(rr, makeReq("/panic"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rr)
	require.False(t, env.Success)
	require.Equal(t, "internal error", env.Message)
	require.NotContains(t, rr.Body.String(), "secret")
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	h := &capHandler{}
	logger := slog.New(h)

	const rid = "rid-456"
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	})

	// RequestID до Logging, чтобы id попал в attrs лога.
	handler := Chain(final, RequestID(), Logging(logger))

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set("X-Request-Id", rid)
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)

	method, _ := h.attrs["method"].(string)
	path, _ := h.attrs["path"].(string)
	status, _ := h.attrs["status"].(int64)
	bytes, _ := h.attrs["bytes"].(int64)
	ridAttr, _ := h.attrs["request_id"].(string)

	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "/log", path)
	require.EqualValues(t, http.StatusOK, status)
	require.EqualValues(t, 10, bytes)
	require.Equal(t, rid, ridAttr)

	_, hasDur := h.attrs["dur"]
	require.True(t, hasDur)
}

func TestLogging_ServerErrorLoggedAsError(t *testing.T) {
	h := &capHandler{}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	Chain(final, Logging(slog.New(h))).ServeHTTP(httptest.NewRecorder(), makeReq("/x"))
	require.Equal(t, slog.LevelError, h.lastLvl)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := newStatusWriter(rr)

	require.Equal(t, http.StatusOK, sw.Status())

	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	lim := ratelimit.NewMemory(2, time.Minute)
	t.Cleanup(func() { _ = lim.Close() })

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), RateLimit(lim))

	before := testutil.ToFloat64(metrics.LoginRateLimitedTotal)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, makeReq("/auth/login"))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq("/auth/login"))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	require.False(t, decodeEnvelope(t, rr).Success)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.LoginRateLimitedTotal))

	// Другой IP считается отдельно.
	req := makeReq("/auth/login")
	req.RemoteAddr = "10.0.0.7:5555"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}
func (failingLimiter) Close() error { return nil }

func TestRateLimit_LimiterErrorLetsRequestThrough(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), RateLimit(failingLimiter{}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, makeReq("/auth/login"))
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics())
	r.Get("/article/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/article/{id}", "200")
	before := testutil.ToFloat64(counter)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, makeReq("/article/"+uuid.NewString()))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), CORS([]string{"http://localhost:3000"}))

	req := makeReq("/article/public")
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = makeReq("/article/public")
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

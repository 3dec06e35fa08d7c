package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	apierrors "github.com/pribylovaa/go-article-feed/internal/errors"
	"github.com/pribylovaa/go-article-feed/internal/http/handlers"
	"github.com/pribylovaa/go-article-feed/internal/http/middleware"
	"github.com/pribylovaa/go-article-feed/internal/http/response"
	"github.com/pribylovaa/go-article-feed/internal/ratelimit"
	"github.com/pribylovaa/go-article-feed/internal/service"
)

// Service — всё, что роутеру нужно от бизнес-логики: методы хендлеров
// и проверка токенов для мидлвара аутентификации.
type Service interface {
	handlers.Service
	middleware.TokenVerifier
}

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger       *slog.Logger
	Timeout      time.Duration
	BasePath     string // например, "/api"; если пустой — роуты регистрируются на корне.
	CORSOrigins  []string
	LoginLimiter ratelimit.Limiter // nil — вход без ограничения частоты.
	MaxImageSize int64
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		chimw.RealIP,                    // IP клиента за прокси для лимитера
		middleware.RequestID(),          // X-Request-Id до логирования
		middleware.Logging(opts.Logger), // request-scoped логгер в контексте
		middleware.Metrics(),
	)
	if len(opts.CORSOrigins) > 0 {
		root.Use(middleware.CORS(opts.CORSOrigins))
	}
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, r, service.ErrNotFound)
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	h := handlers.New(svc, opts.MaxImageSize)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc, opts)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc, opts)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, v middleware.TokenVerifier, opts Options) {
	auth := middleware.AuthBearer(v)
	optional := middleware.OptionalAuth(v)

	// auth
	r.Post("/auth/register", h.Register)
	if opts.LoginLimiter != nil {
		r.With(middleware.RateLimit(opts.LoginLimiter)).Post("/auth/login", h.Login)
	} else {
		r.Post("/auth/login", h.Login)
	}

	// public articles
	r.With(optional).Get("/article/public", h.ListPublic)
	r.Get("/article/public/{id}", h.GetPublic)
	r.With(optional).Get("/article/{id}", h.GetArticle)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		// user
		r.Get("/user/me", h.Me)
		r.Put("/user", h.UpdateProfile)
		r.Put("/user/profile", h.UpdateProfile)
		r.Patch("/user/preferences", h.UpdatePreferences)
		r.Patch("/user/password", h.ChangePassword)

		// articles
		r.Get("/article", h.ListMine)
		r.Post("/article", h.CreateArticle)
		r.Get("/article/feed", h.Feed)
		r.Put("/article/{id}", h.UpdateArticle)
		r.Delete("/article/{id}", h.DeleteArticle)
		r.Post("/article/{id}/publish", h.Publish)
		r.Post("/article/{id}/unpublish", h.Unpublish)

		// interactions
		r.Post("/interaction/{id}", h.React)
		r.Delete("/interaction/{id}", h.RemoveReaction)

		// upload
		r.Post("/upload/image", h.UploadImage)
	})
}

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-article-feed/internal/config"
	feedhttp "github.com/pribylovaa/go-article-feed/internal/http"
	"github.com/pribylovaa/go-article-feed/internal/ratelimit"
	"github.com/pribylovaa/go-article-feed/internal/service"
	"github.com/pribylovaa/go-article-feed/internal/storage/minio"
	"github.com/pribylovaa/go-article-feed/internal/storage/postgres"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting feed-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("service_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}

	log.Info("service_stopped")
}

func run(rootCtx context.Context, cfg *config.Config, log *slog.Logger) error {
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		return err
	}
	defer store.Close()
	log.Info("postgres_connected")

	if cfg.DB.AutoMigrate {
		migCtx, migCancel := context.WithTimeout(rootCtx, 30*time.Second)
		err := store.Migrate(migCtx)
		migCancel()
		if err != nil {
			log.Error("migrations_failed", slog.String("err", err.Error()))
			return err
		}
		log.Info("migrations_applied")
	}

	s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
	images, err := minio.New(s3Ctx, cfg.S3, cfg.Upload)
	s3Cancel()
	if err != nil {
		log.Error("minio_connect_failed", slog.String("err", err.Error()))
		return err
	}
	log.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))

	limiter, err := newLoginLimiter(rootCtx, cfg)
	if err != nil {
		log.Error("rate_limiter_init_failed", slog.String("err", err.Error()))
		return err
	}
	defer func() {
		if cerr := limiter.Close(); cerr != nil {
			log.Warn("rate_limiter_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	svc := service.New(store, images, cfg)
	log.Info("service_initialized")

	apiHandler := feedhttp.NewRouter(svc, feedhttp.Options{
		Logger:       log,
		Timeout:      cfg.Timeouts.Service,
		BasePath:     cfg.HTTP.BasePath,
		CORSOrigins:  cfg.CORS.Origins,
		LoginLimiter: limiter,
		MaxImageSize: cfg.Upload.MaxSizeBytes,
	})

	var ready int32 // 0 — not ready; 1 — ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		return err
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("feed_service_ready")

	var serveErr error
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		if serveErr != nil {
			log.Error("http_serve_failed", slog.String("err", serveErr.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	return serveErr
}

// newLoginLimiter выбирает Redis-ограничитель при заданном REDIS_URL,
// иначе in-memory окно на процесс.
func newLoginLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.Redis.URL == "" {
		return ratelimit.NewMemory(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow), nil
	}

	redisCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	lim, err := ratelimit.NewRedis(redisCtx, cfg.Redis.URL, "", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
	if err != nil {
		return nil, err
	}

	return lim, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

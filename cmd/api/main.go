// Package main is the entrypoint for the linktrack API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/insyte-io/linktrack/internal/cache"
	"github.com/insyte-io/linktrack/internal/config"
	"github.com/insyte-io/linktrack/internal/handler"
	"github.com/insyte-io/linktrack/internal/metrics"
	"github.com/insyte-io/linktrack/internal/middleware"
	"github.com/insyte-io/linktrack/internal/repository"
	"github.com/insyte-io/linktrack/internal/server"
	"github.com/insyte-io/linktrack/internal/service"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Apply schema migrations before opening the pool.
	if err := repository.Migrate(cfg.DatabaseURL); err != nil {
		logger.Error(
			"migrations failed",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("schema migrations applied")

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"postgres connect failed",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("postgres pool ready")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"redis connect failed",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("redis client ready")

	metricsRecorder := metrics.NewInMemory()

	redirectService := service.NewRedirectService(repo, cacheClient, cfg.StoreTimeout, metricsRecorder)
	funnelService := service.NewFunnelService(repo, cfg.BaseURL, cfg.StoreTimeout, metricsRecorder)
	linkService := service.NewLinkService(repo, cacheClient, cfg.BaseURL, cfg.StoreTimeout, metricsRecorder)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	redirectHandler := handler.NewRedirectHandler(redirectService, logger)
	linksHandler := handler.NewLinksHandler(funnelService, linkService, logger)

	r := setupRouter(healthHandler, metricsHandler, redirectHandler, linksHandler, cfg, logger)

	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initLogger builds the process logger and installs it as the slog
// default so library code logs through the same handler.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	redirectHandler *handler.RedirectHandler,
	linksHandler *handler.LinksHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.Get("/", handler.Root)

	// Public click-through endpoint.
	r.Get("/go/{slug}", redirectHandler.Redirect)

	// Dashboard API.
	r.Route("/api/links", func(r chi.Router) {
		r.Get("/", linksHandler.List)
		r.Get("/all", linksHandler.ListLinks)
		r.Get("/deep-view/{slug}", linksHandler.DeepView)
		r.Get("/{slug}/stats", linksHandler.Stats)
		r.Post("/create", linksHandler.Create)
		r.Delete("/{slug}", linksHandler.Delete)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=\S+`)

// redactURL strips credentials from a connection URL before it is
// logged. Unparseable input is replaced wholesale rather than risking
// a partial leak.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	return parsed.String()
}

// sanitizeError scrubs connection URLs and password fragments out of
// driver error text. pgx and go-redis both echo the DSN on failure.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, redactURL(secret))
	}
	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

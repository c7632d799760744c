// Package main is the entrypoint for the Chronos Vault API server.
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

	"github.com/chronosvault/chronosvault/internal/cache"
	"github.com/chronosvault/chronosvault/internal/clock"
	"github.com/chronosvault/chronosvault/internal/config"
	"github.com/chronosvault/chronosvault/internal/handler"
	"github.com/chronosvault/chronosvault/internal/insight"
	"github.com/chronosvault/chronosvault/internal/metrics"
	"github.com/chronosvault/chronosvault/internal/middleware"
	"github.com/chronosvault/chronosvault/internal/repository"
	"github.com/chronosvault/chronosvault/internal/server"
	"github.com/chronosvault/chronosvault/internal/service"
	"github.com/chronosvault/chronosvault/internal/storage"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize session/rate-limit cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize avatar object storage
	avatarStore, err := storage.New(ctx, storage.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		logger.Error("failed to connect to object storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to object storage", "bucket", cfg.MinioBucket)

	// Initialize services
	systemClock := clock.System{}
	metricsRecorder := metrics.NewInMemory()

	capsuleService := service.NewCapsuleService(repo, systemClock, metricsRecorder)
	diaryService := service.NewDiaryService(repo, systemClock, metricsRecorder)
	authService := service.NewAuthService(repo, cacheClient, systemClock, cfg.SessionTTL)

	insightClient := insight.NewClient(cfg.InsightAPIKey, cfg.InsightModel, cfg.InsightTimeout)
	insightService := service.NewInsightService(repo, insightClient, cfg.InsightTimeout, logger, metricsRecorder)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(authService, logger)
	capsuleHandler := handler.NewCapsuleHandler(capsuleService, logger)
	diaryHandler := handler.NewDiaryHandler(diaryService, logger)
	insightHandler := handler.NewInsightHandler(insightService, logger)
	profileHandler := handler.NewProfileHandler(avatarStore, repo, cfg.MaxAvatarSize, systemClock, logger)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(routerDeps{
		base:    h,
		health:  healthHandler,
		auth:    authHandler,
		capsule: capsuleHandler,
		diary:   diaryHandler,
		insight: insightHandler,
		profile: profileHandler,
		metrics: metricsHandler,
		cache:   cacheClient,
		cfg:     cfg,
		logger:  logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	base    *handler.Handler
	health  *handler.HealthHandler
	auth    *handler.AuthHandler
	capsule *handler.CapsuleHandler
	diary   *handler.DiaryHandler
	insight *handler.InsightHandler
	profile *handler.ProfileHandler
	metrics *handler.MetricsHandler
	cache   *cache.Cache
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))

	// Health endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)

	// Root info endpoint
	r.Get("/", deps.base.Hello)

	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Cache:  deps.cache,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  deps.logger,
		Cache:   deps.cache,
		Enabled: deps.cfg.RateLimitAuthEnabled,
		RPS:     deps.cfg.RateLimitAuthRPS,
		Burst:   deps.cfg.RateLimitAuthBurst,
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints: IP rate limited, no session required
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitAuth(rateLimitCfg))
			r.Post("/auth/register", deps.auth.Register)
			r.Post("/auth/login", deps.auth.Login)
		})

		// Everything else requires a live session
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Post("/auth/logout", deps.auth.Logout)

			r.Route("/capsules", func(r chi.Router) {
				r.Get("/", deps.capsule.Timeline)
				r.Get("/history", deps.capsule.History)
				r.Post("/", deps.capsule.Bury)
				r.Delete("/{id}", deps.capsule.Delete)
			})

			r.Route("/diary", func(r chi.Router) {
				r.Get("/", deps.diary.List)
				r.Post("/", deps.diary.Append)
				r.Post("/{id}/insight", deps.insight.Analyze)
			})

			r.Get("/profile", deps.profile.Me)
			r.Post("/profile/avatar", deps.profile.UploadAvatar)

			// Operational counters, session-gated like the rest of the API
			r.Get("/metrics", deps.metrics.Metrics)
		})
	})

	// 404 and 405 handlers
	r.NotFound(deps.base.NotFound)
	r.MethodNotAllowed(deps.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}

// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/admin"
	"github.com/carterperez-dev/gerenciador/internal/auth"
	"github.com/carterperez-dev/gerenciador/internal/config"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/health"
	"github.com/carterperez-dev/gerenciador/internal/ingest"
	"github.com/carterperez-dev/gerenciador/internal/middleware"
	"github.com/carterperez-dev/gerenciador/internal/performance"
	"github.com/carterperez-dev/gerenciador/internal/profile"
	"github.com/carterperez-dev/gerenciador/internal/provision"
	"github.com/carterperez-dev/gerenciador/internal/role"
	"github.com/carterperez-dev/gerenciador/internal/server"
	"github.com/carterperez-dev/gerenciador/internal/training"
	"github.com/carterperez-dev/gerenciador/internal/user"
)

const (
	drainDelay      = 5 * time.Second
	janitorInterval = time.Hour
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "ES256")

	accountRepo := account.NewRepository(db.DB)
	profileRepo := profile.NewRepository(db.DB)
	roleRepo := role.NewRepository(db.DB)
	performanceRepo := performance.NewRepository(db.DB)

	creator, err := account.NewCreator(cfg.Provision.Mode, accountRepo)
	if err != nil {
		return err
	}
	logger.Info("account creator initialized", "mode", cfg.Provision.Mode)

	provisionSvc := provision.NewService(
		accountRepo,
		profileRepo,
		roleRepo,
		performanceRepo,
		creator,
		logger,
	)

	notifier := ingest.NewSlogNotifier(logger)
	userIngestor := ingest.NewUserIngestor(provisionSvc, notifier, logger)
	performanceIngestor := ingest.NewPerformanceIngestor(
		accountRepo,
		profileRepo,
		performanceRepo,
		notifier,
		logger,
	)
	ingestHandler := ingest.NewHandler(userIngestor, performanceIngestor)

	userSvc := user.NewService(
		accountRepo,
		profileRepo,
		roleRepo,
		performanceRepo,
		provisionSvc,
	)
	userHandler := user.NewHandler(userSvc)

	performanceSvc := performance.NewService(performanceRepo)
	performanceHandler := performance.NewHandler(performanceSvc)

	trainingRepo := training.NewRepository(db.DB)
	trainingSvc := training.NewService(trainingRepo, profileRepo, roleRepo, logger)
	trainingHandler := training.NewHandler(trainingSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, accountRepo, roleRepo, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Users:      profileRepo,
		Trainings:  trainingRepo,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator, adminOnly)
		performanceHandler.RegisterRoutes(r, authenticator, adminOnly)
		trainingHandler.RegisterRoutes(r, authenticator, adminOnly)
		ingestHandler.RegisterRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	go runTokenJanitor(ctx, authSvc, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// runTokenJanitor deletes long-expired refresh tokens on an hourly cycle
// until the application context is cancelled.
func runTokenJanitor(ctx context.Context, svc *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := svc.CleanupExpiredTokens(ctx)
			if err != nil {
				logger.Error("refresh token cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired refresh tokens removed", "count", deleted)
			}
		}
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

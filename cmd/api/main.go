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

	"github.com/atelierlabs/workshop-tracker/internal/admin"
	"github.com/atelierlabs/workshop-tracker/internal/analytics"
	"github.com/atelierlabs/workshop-tracker/internal/auth"
	"github.com/atelierlabs/workshop-tracker/internal/classtype"
	"github.com/atelierlabs/workshop-tracker/internal/client"
	"github.com/atelierlabs/workshop-tracker/internal/config"
	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/document"
	"github.com/atelierlabs/workshop-tracker/internal/expense"
	"github.com/atelierlabs/workshop-tracker/internal/health"
	"github.com/atelierlabs/workshop-tracker/internal/income"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
	"github.com/atelierlabs/workshop-tracker/internal/notification"
	"github.com/atelierlabs/workshop-tracker/internal/profile"
	"github.com/atelierlabs/workshop-tracker/internal/server"
	"github.com/atelierlabs/workshop-tracker/internal/workshop"
)

const (
	drainDelay = 5 * time.Second
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
		"migrated", cfg.Database.Migrate,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	storage, err := core.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object storage ready",
		"bucket", cfg.Storage.Bucket,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	profileRepo := profile.NewRepository(db.DB)
	profileSvc := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		profileSvc,
		cfg.Signup.AllowedDomains,
		cfg.JWT.AccessTokenExpire,
	)
	authHandler := auth.NewHandler(authSvc)

	incomeRepo := income.NewRepository(db.DB)
	incomeSvc := income.NewService(incomeRepo)
	incomeHandler := income.NewHandler(incomeSvc)

	expenseRepo := expense.NewRepository(db.DB)
	expenseSvc := expense.NewService(expenseRepo)
	expenseHandler := expense.NewHandler(expenseSvc)

	clientRepo := client.NewRepository(db.DB)
	clientSvc := client.NewService(clientRepo, incomeRepo, expenseRepo)
	clientHandler := client.NewHandler(clientSvc)

	workshopRepo := workshop.NewRepository(db.DB)
	workshopSvc := workshop.NewService(workshopRepo)
	workshopHandler := workshop.NewHandler(workshopSvc)

	classTypeRepo := classtype.NewRepository(db.DB)
	classTypeHandler := classtype.NewHandler(classTypeRepo)

	documentRepo := document.NewRepository(db.DB)
	documentSvc := document.NewService(documentRepo, storage)
	documentHandler := document.NewHandler(documentSvc)

	analyticsSvc := analytics.NewService(
		incomeRepo,
		expenseRepo,
		classTypeRepo,
		workshopSvc,
		profileSvc,
		redis.Client,
	)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	notificationRepo := notification.NewRepository(db.DB)
	notificationSvc := notification.NewService(notificationRepo, cfg)
	notificationHandler := notification.NewHandler(notificationSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		DB:         db.DB,
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
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r, authenticator)
		incomeHandler.RegisterRoutes(r, authenticator)
		expenseHandler.RegisterRoutes(r, authenticator)
		clientHandler.RegisterRoutes(r, authenticator)
		workshopHandler.RegisterRoutes(r, authenticator)
		classTypeHandler.RegisterRoutes(r, authenticator)
		documentHandler.RegisterRoutes(r, authenticator)
		analyticsHandler.RegisterRoutes(r, authenticator)
		notificationHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

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

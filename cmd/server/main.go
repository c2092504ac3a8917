package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livevip/internal/core/domain"
	"livevip/internal/core/ports"
	"livevip/internal/core/services"
	httphandlers "livevip/internal/handlers/http"
	"livevip/internal/infrastructure/middleware"
	"livevip/internal/infrastructure/monitoring"
	"livevip/internal/infrastructure/push"
	"livevip/internal/infrastructure/repositories/memory"
	"livevip/internal/infrastructure/repositories/postgres"
	"livevip/internal/infrastructure/seed"
	"livevip/pkg/config"
	"livevip/pkg/logger"
	"livevip/pkg/retry"
	"livevip/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := os.Getenv("LIVEVIP_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	ctx := context.Background()

	// Tracing
	tp, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Repositories: Postgres when configured, in-memory otherwise.
	var (
		streamRepo  ports.StreamRepository
		userRepo    ports.UserRepository
		adminRepo   ports.AdminRepository
		paymentRepo ports.PaymentRepository
		pool        *pgxpool.Pool
	)
	if cfg.Database.Enabled {
		err := retry.Do(ctx, retry.DefaultConfig(), func() error {
			var perr error
			pool, perr = postgres.NewPool(ctx, cfg.Database.DSN, zapLogger)
			return perr
		})
		if err != nil {
			log.Fatalw("failed to connect to postgres", "error", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}

		streamRepo = postgres.NewStreamRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		adminRepo = postgres.NewAdminRepository(pool)
		paymentRepo = postgres.NewPaymentRepository(pool)
		log.Infow("using postgres storage")
	} else {
		streamRepo = memory.NewStreamRepository()
		userRepo = memory.NewUserRepository()
		adminRepo = memory.NewAdminRepository()
		paymentRepo = memory.NewPaymentRepository()
		log.Infow("using in-memory storage")
	}

	// Push hub for catalog change notifications.
	hub := push.NewHub(log)
	defer hub.Close()

	collector := monitoring.NewPrometheusCollector()

	// Services
	catalogService := services.NewCatalogService(streamRepo, multiNotifier{hub, collector}, zapLogger)

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		err := retry.Do(ctx, retry.DefaultConfig(), func() error {
			return rdb.Ping(ctx).Err()
		})
		if err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		defer rdb.Close()

		catalogService = services.NewCachedCatalogService(catalogService, rdb, cfg.Redis.CacheTTL, zapLogger)
		log.Infow("catalog list cache enabled", "ttl", cfg.Redis.CacheTTL)
	}

	accountService := services.NewAccountService(userRepo, paymentRepo, zapLogger)
	authService := services.NewAuthService(adminRepo, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// Seed admin account, sample catalog and premium test user.
	if err := seed.Run(ctx, streamRepo, userRepo, adminRepo, paymentRepo, seed.Options{
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
	}, log); err != nil {
		log.Fatalw("failed to seed initial data", "error", err)
	}

	if streams, err := streamRepo.List(ctx); err == nil {
		vip := 0
		for _, s := range streams {
			if s.VIPOnly {
				vip++
			}
		}
		collector.SetCatalogSize(len(streams), vip)
	}

	// Monitoring
	healthChecker := monitoring.NewHealthChecker()
	if pool != nil {
		healthChecker.AddCheck("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		}, 2*time.Second)
	}
	if rdb != nil {
		healthChecker.AddCheck("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}, 2*time.Second)
	}

	// Handlers
	catalogHandler := httphandlers.NewCatalogHandler(catalogService)
	userHandler := httphandlers.NewUserHandler(accountService)
	webhookHandler := httphandlers.NewWebhookHandler(accountService, os.Getenv("WEBHOOK_TOKEN"), log)
	authHandler := httphandlers.NewAuthHandler(authService)
	healthHandler := httphandlers.NewHealthHandler(healthChecker)

	// Router
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggingMiddleware(logger.NewContextLogger(zapLogger)))
	router.Use(middleware.MetricsMiddleware(collector))
	router.Use(middleware.RateLimitMiddleware(cfg))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}
	router.Use(middleware.ErrorHandlerMiddleware(log))

	catalogHandler.SetupRoutes(router, middleware.AuthMiddleware(authService))
	userHandler.SetupRoutes(router)
	webhookHandler.SetupRoutes(router)
	authHandler.SetupRoutes(router)
	healthHandler.SetupRoutes(router)

	router.GET("/ws", func(c *gin.Context) {
		hub.HandleWebSocket(c.Writer, c.Request)
	})

	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("prometheus metrics enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("starting LiveVIP catalog server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("received shutdown signal", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("error force closing server", "error", closeErr)
		}
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Errorw("error shutting down tracer provider", "error", err)
	}

	log.Info("server stopped")
}

// multiNotifier fans a catalog change out to every registered notifier.
type multiNotifier []ports.CatalogNotifier

func (m multiNotifier) CatalogChanged(event string, stream *domain.Stream) {
	for _, n := range m {
		n.CatalogChanged(event, stream)
	}
}

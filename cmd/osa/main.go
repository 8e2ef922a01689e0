package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa-portal/osa-portal/internal/admin"
	"github.com/osa-portal/osa-portal/internal/app"
	"github.com/osa-portal/osa-portal/internal/audit"
	"github.com/osa-portal/osa-portal/internal/auth"
	"github.com/osa-portal/osa-portal/internal/observability"
	"github.com/osa-portal/osa-portal/internal/partnerships"
	"github.com/osa-portal/osa-portal/internal/platform/cache"
	"github.com/osa-portal/osa-portal/internal/platform/db"
	"github.com/osa-portal/osa-portal/internal/platform/storage"
	"github.com/osa-portal/osa-portal/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Serve uncached rather than refuse to start; the cache helpers
		// degrade to loader-only behavior on a nil client.
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	imageStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("init upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	signer := auth.NewTokenSigner(cfg.JWTSecret, cfg.JWTTTL)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, signer)
	authMiddleware := auth.Middleware{Service: authService, Logger: logger}
	authHandler := auth.NewHandler(logger, authService, authMiddleware)

	statsCache := cache.NewVersioned(redisClient, "partnerships", cfg.StatsTTL)
	recorder := audit.NewRecorder(pool)

	partnershipRepo := partnerships.NewRepository(pool)
	partnershipService := partnerships.NewService(partnershipRepo, imageStore, recorder, statsCache, logger)
	partnershipHandler := partnerships.NewHandler(logger, partnershipService, authMiddleware)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, statsCache, logger)
	usersHandler := users.NewHandler(logger, usersService)

	auditService := audit.NewService(audit.NewRepository(pool))
	adminService := admin.NewService(partnershipRepo, usersRepo, statsCache)
	adminHandler := admin.NewHandler(logger, adminService, auditService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		AuthMiddleware:     authMiddleware,
		PartnershipHandler: partnershipHandler,
		UsersHandler:       usersHandler,
		AdminHandler:       adminHandler,
		UploadRoot:         imageStore.Root(),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

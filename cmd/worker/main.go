package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/osa-portal/osa-portal/internal/app"
	"github.com/osa-portal/osa-portal/internal/audit"
	"github.com/osa-portal/osa-portal/internal/partnerships"
	"github.com/osa-portal/osa-portal/internal/platform/cache"
	"github.com/osa-portal/osa-portal/internal/platform/db"
	"github.com/osa-portal/osa-portal/internal/platform/storage"
	"github.com/osa-portal/osa-portal/jobs"
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
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}

	imageStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		logger.Error("init upload storage", slog.Any("error", err))
		os.Exit(1)
	}

	statsCache := cache.NewVersioned(redisClient, "partnerships", cfg.StatsTTL)
	recorder := audit.NewRecorder(pool)
	partnershipRepo := partnerships.NewRepository(pool)
	partnershipService := partnerships.NewService(partnershipRepo, imageStore, recorder, statsCache, logger)

	actorID := uuid.Nil
	if cfg.SweepActorID != "" {
		if actorID, err = uuid.Parse(cfg.SweepActorID); err != nil {
			logger.Error("parse sweep actor id", slog.Any("error", err))
			os.Exit(1)
		}
	}

	sweeper := jobs.NewRenewalSweeper(partnershipService, logger)
	sweepTask, err := jobs.NewRenewalSweepTask(jobs.RenewalSweepPayload{ActorID: actorID})
	if err != nil {
		logger.Error("build sweep task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskRenewalSweep, Handler: sweeper.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.SweepCron, Task: sweepTask, Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("cron", cfg.SweepCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"aplus-academy/internal/admin"
	"aplus-academy/internal/api"
	"aplus-academy/internal/cache"
	"aplus-academy/internal/config"
	"aplus-academy/internal/database"
	"aplus-academy/internal/notify"
	"aplus-academy/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	zapLogger, err := logger.New(&cfg.Log, logger.DefaultServiceName)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DB, zapLogger)
	if err != nil {
		zap.L().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Migrations {
		zap.L().Info("Running database migrations...")
		if err := db.RunMigrations(ctx); err != nil {
			zap.L().Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	snapshots := cache.New(ctx, cfg.RedisAddr, cfg.CacheTTL, zapLogger)
	defer snapshots.Close()

	var notifier admin.Notifier = notify.Nop{}
	if cfg.Telegram.Token != "" {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.Endpoint, zapLogger)
		if err != nil {
			zap.L().Error("Telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	} else {
		zap.L().Warn("TELEGRAM_BOT_TOKEN is not set, notifications disabled")
	}

	svc := admin.New(db,
		admin.WithCache(snapshots),
		admin.WithNotifier(notifier),
		admin.WithLogger(zapLogger),
		admin.WithPayoutRate(cfg.PayoutRate),
	)

	if cfg.AdminLogin != "" && cfg.AdminPassword != "" {
		if err := svc.EnsureAdmin(ctx, cfg.AdminLogin, "", cfg.AdminPassword); err != nil {
			zap.L().Fatal("Failed to seed admin account", zap.Error(err))
		}
		zap.L().Info("Admin account ready", zap.String(logger.FieldLogin, cfg.AdminLogin))
	}

	srv := api.New(svc, api.Options{
		Address:   cfg.HTTPAddr,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
		Logger:    zapLogger,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			zap.L().Error("HTTP server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zap.L().Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zap.L().Error("Failed to stop HTTP server", zap.Error(err))
	}
	svc.Wait()
}

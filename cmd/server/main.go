package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/purelife/compass/internal/api"
	"github.com/purelife/compass/internal/backup"
	"github.com/purelife/compass/internal/config"
	"github.com/purelife/compass/internal/ghl"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	backups, closeBackups, err := newBackupStore(cfg, logger)
	if err != nil {
		logger.Fatal("backup store init failed", zap.Error(err))
	}
	defer closeBackups()

	crm := ghl.NewClient(cfg.GHL, logger)
	router := api.NewRouter(cfg, crm, backups, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("compass quiz API listening",
			zap.String("addr", cfg.Addr),
			zap.Bool("ghl_configured", cfg.GHL.Configured()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("server closed")
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func newBackupStore(cfg config.Config, logger *zap.Logger) (backup.Store, func(), error) {
	if cfg.BackupDBPath == "" {
		logger.Info("using in-memory backup store")
		return backup.NewMemoryStore(), func() {}, nil
	}
	store, err := backup.OpenSQLite(cfg.BackupDBPath, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using sqlite backup store", zap.String("path", cfg.BackupDBPath))
	if removed, err := store.Purge(cfg.BackupMaxAge); err != nil {
		logger.Warn("startup backup purge failed", zap.Error(err))
	} else if removed > 0 {
		logger.Info("purged expired backup records", zap.Int("removed", removed))
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing backup store", zap.Error(err))
		}
	}, nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/config"
	"github.com/pageza/sofregit/backend/internal/logging"
	"github.com/pageza/sofregit/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(config.GetEnvironment(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := server.NewDeps(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect backends", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Close(closeCtx); err != nil {
			logger.Error("failed to close backends", zap.Error(err))
		}
	}()

	srv := server.New(cfg, deps, logger)
	logger.Info("starting server",
		zap.String("addr", cfg.Addr()),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("document_driver", cfg.DocumentDriver),
		zap.String("storage_driver", cfg.StorageDriver))

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/sofregit/backend/config"
	"github.com/pageza/sofregit/backend/internal/database"
	"github.com/pageza/sofregit/backend/internal/logging"
)

var waitAttempts int

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	Long:  `Runs the schema migration for users and recipes against the configured database.`,
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.Flags().IntVar(&waitAttempts, "wait", 10, "attempts to reach PostgreSQL before giving up")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(config.GetEnvironment(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DBDriver == "postgres" {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(waitAttempts)*3*time.Second)
		defer cancel()
		if err := database.WaitForPostgres(ctx, cfg.PostgresDSN(), waitAttempts, 2*time.Second); err != nil {
			return err
		}
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db); err != nil {
		return err
	}
	logger.Info("migrations applied", zap.String("driver", cfg.DBDriver))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

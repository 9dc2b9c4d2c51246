// Package main implements the entry point for the TaskManager API server,
// which serves task CRUD over HTTP and pushes assignment notifications to
// connected clients over websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, status) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Printf("TaskManager server failed: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or serves until ctx is canceled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, migrateCmd, appLogger)
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, migrateUp, appLogger); err != nil {
			_ = db.Close()
			return err
		}
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
// Returns the loaded config, the application logger and any initialization error.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"breaker_enabled", cfg.Notifier.BreakerEnabled,
		"enforce_room_identity", cfg.Realtime.EnforceRoomIdentity)

	return cfg, appLogger, nil
}

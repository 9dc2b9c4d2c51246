package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/platform/postgres"
)

// Supported -migrate commands.
const (
	migrateUp     = "up"
	migrateStatus = "status"
)

// handleMigrations executes a migration command against db and returns.
// It's called from main() when the -migrate flag is given.
func handleMigrations(ctx context.Context, db *database, command string, logger *slog.Logger) error {
	log := logger.With("component", "migrations", "command", command, "driver", db.driver)

	switch command {
	case migrateUp:
		log.Info("applying migrations")
		if err := db.migrate(ctx, log); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	case migrateStatus:
		if db.lite != nil {
			return fmt.Errorf("migration status is only available for postgres")
		}
		return postgres.MigrationStatus(ctx, db.sql, log)
	default:
		return fmt.Errorf("unknown migration command %q (want %q or %q)", command, migrateUp, migrateStatus)
	}
}

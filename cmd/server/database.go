package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/platform/postgres"
	"github.com/Abhi005shek/TaskManager/internal/platform/sqlite"
	"github.com/Abhi005shek/TaskManager/internal/store"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
)

// Connection retry settings used while the database comes up.
const (
	pingTimeout      = 5 * time.Second
	pingMaxRetries   = 5
	pingBaseBackoff  = 200 * time.Millisecond
	pingBackoffLimit = 5 * time.Second
)

// database is an open connection for the configured driver.
type database struct {
	driver string
	sql    *sql.DB
	lite   *sqlx.DB // set for sqlite only
}

// storeSet bundles the persistence implementations the services need.
type storeSet struct {
	tasks         store.TaskStore
	notifications store.NotificationStore
	users         store.UserStore
}

// setupAppDatabase opens the configured database and waits for it to answer
// a ping, retrying with exponential backoff.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	db := &database{driver: cfg.Driver}

	switch cfg.Driver {
	case "sqlite":
		lite, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		db.lite = lite
		db.sql = lite.DB
	default:
		conn, err := sql.Open("pgx", cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		maxOpen := cfg.MaxOpenConns
		if maxOpen == 0 {
			maxOpen = 10
		}
		conn.SetMaxOpenConns(maxOpen)
		conn.SetMaxIdleConns(maxOpen / 2)
		conn.SetConnMaxLifetime(5 * time.Minute)
		db.sql = conn
	}

	if err := pingWithRetry(ctx, db.sql, logger); err != nil {
		_ = db.sql.Close()
		return nil, err
	}

	logger.Info("database connection established", "driver", cfg.Driver)
	return db, nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	backoff := retry.NewExponential(pingBaseBackoff)
	backoff = retry.WithCappedDuration(pingBackoffLimit, backoff)
	backoff = retry.WithMaxRetries(pingMaxRetries, backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			logger.Warn("database ping failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
	}
	return nil
}

// stores builds the store implementations for the open driver.
func (db *database) stores(logger *slog.Logger) storeSet {
	if db.lite != nil {
		return storeSet{
			tasks:         sqlite.NewSQLiteTaskStore(db.lite, logger),
			notifications: sqlite.NewSQLiteNotificationStore(db.lite, logger),
			users:         sqlite.NewSQLiteUserStore(db.lite, logger),
		}
	}
	return storeSet{
		tasks:         postgres.NewPostgresTaskStore(db.sql, logger),
		notifications: postgres.NewPostgresNotificationStore(db.sql, logger),
		users:         postgres.NewPostgresUserStore(db.sql, logger),
	}
}

// migrate applies pending migrations for the open driver.
func (db *database) migrate(ctx context.Context, logger *slog.Logger) error {
	if db.lite != nil {
		return sqlite.Migrate(ctx, db.lite, logger)
	}
	return postgres.Migrate(ctx, db.sql, logger)
}

func (db *database) Close() error {
	return db.sql.Close()
}

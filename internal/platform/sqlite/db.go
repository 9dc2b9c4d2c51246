package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // sqlite driver
)

// MigrationTableName is the table goose uses to track applied migrations.
const MigrationTableName = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose configuration is package global.
var migrateMu sync.Mutex

// Open opens the SQLite database at dsn (":memory:" for a private in-memory
// database) with foreign keys enforced.
//
// The pool is limited to a single connection: an in-memory database lives
// and dies with its connection, and SQLite serializes writers anyway.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// Migrate applies all pending migrations to db.
func Migrate(ctx context.Context, db *sqlx.DB, log *slog.Logger) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationTableName)
	goose.SetLogger(logger.NewMigrationLogger(log))
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply sqlite migrations: %w", err)
	}
	return nil
}

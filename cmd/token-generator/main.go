// Command token-generator prints a development access token for a user.
// With -create it first registers the user in the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/platform/postgres"
	"github.com/Abhi005shek/TaskManager/internal/platform/sqlite"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/Abhi005shek/TaskManager/internal/service/auth"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
)

func main() {
	userID := flag.String("user", "", "user ID to issue the token for")
	create := flag.Bool("create", false, "create the user first (requires -name and -email)")
	name := flag.String("name", "", "name of the user to create")
	email := flag.String("email", "", "email of the user to create")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := run(ctx, *userID, *create, *name, *email)
	if err != nil {
		log.Printf("token-generator: %v", err)
		cancel()
		os.Exit(1)
	}
	fmt.Println(token)
}

func run(ctx context.Context, rawUserID string, create bool, name, email string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return "", err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return "", fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	var id uuid.UUID
	switch {
	case create:
		users, closeDB, err := openUserStore(ctx, cfg.Database)
		if err != nil {
			return "", err
		}
		defer closeDB()

		user, err := service.NewUserService(users, appLogger).CreateUser(ctx, name, email)
		if err != nil {
			return "", fmt.Errorf("failed to create user: %w", err)
		}
		appLogger.Info("user created", "user_id", user.ID, "email", user.Email)
		id = user.ID
	case rawUserID != "":
		id, err = uuid.Parse(rawUserID)
		if err != nil {
			return "", fmt.Errorf("invalid -user: %w", err)
		}
	default:
		return "", fmt.Errorf("either -user or -create is required")
	}

	return jwtService.GenerateToken(ctx, id)
}

func openUserStore(ctx context.Context, cfg config.DatabaseConfig) (store.UserStore, func(), error) {
	log := logger.FromContext(ctx)

	if cfg.Driver == "sqlite" {
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.NewSQLiteUserStore(db, log), func() { _ = db.Close() }, nil
	}

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return postgres.NewPostgresUserStore(db.DB, log), func() { _ = db.Close() }, nil
}

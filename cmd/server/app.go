package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/config"
	"github.com/Abhi005shek/TaskManager/internal/platform/breaker"
	"github.com/Abhi005shek/TaskManager/internal/realtime"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/Abhi005shek/TaskManager/internal/service/auth"
	"github.com/Abhi005shek/TaskManager/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database

	// Stores
	userStore         store.UserStore
	taskStore         store.TaskStore
	notificationStore store.NotificationStore

	// Services
	jwtService          auth.JWTService
	taskService         service.TaskService
	notificationService service.NotificationService
	userService         service.UserService

	// Realtime delivery; also the events.Publisher of the services.
	hub *realtime.Hub
}

// newApplication creates a new application instance with all dependencies initialized.
// The hub is built once here and injected into every service that publishes.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	s := db.stores(logger)
	app.userStore = s.users
	app.taskStore = s.tasks
	app.notificationStore = s.notifications
	if cfg.Notifier.BreakerEnabled {
		app.notificationStore = breaker.NewNotificationStore(s.notifications, cfg.Notifier, logger)
		logger.Info("notification store circuit breaker enabled",
			"max_failures", cfg.Notifier.BreakerMaxFailures,
			"timeout_seconds", cfg.Notifier.BreakerTimeoutSeconds)
	}

	app.hub = realtime.NewHub(logger)

	notifier := service.NewAssignmentNotifier(app.notificationStore, app.hub, logger)
	app.taskService, err = service.NewTaskService(app.taskStore, app.userStore, notifier, app.hub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.notificationService = service.NewNotificationService(app.notificationStore, logger)
	app.userService = service.NewUserService(app.userStore, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.hub != nil {
		app.hub.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

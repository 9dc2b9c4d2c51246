package main

import (
	"net/http"

	"github.com/Abhi005shek/TaskManager/internal/api"
	apiMiddleware "github.com/Abhi005shek/TaskManager/internal/api/middleware"
	"github.com/Abhi005shek/TaskManager/internal/realtime"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)
			r.Get("/overdue", taskHandler.ListOverdue)
			r.Get("/{id}", taskHandler.GetTask)
			r.Patch("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.ListUnread)
			r.Patch("/{id}/read", notificationHandler.MarkRead)
			r.Post("/mark-all-read", notificationHandler.MarkAllRead)
		})

		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/me", userHandler.GetMe)
		r.Patch("/users/me", userHandler.UpdateMe)
	})

	// The websocket authenticates itself: browsers cannot set headers on upgrade.
	r.Handle("/ws", realtime.NewHandler(app.hub, app.jwtService, app.config.Realtime, app.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

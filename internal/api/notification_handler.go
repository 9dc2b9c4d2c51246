package api

import (
	"log/slog"
	"net/http"

	"github.com/Abhi005shek/TaskManager/internal/api/shared"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/service"
)

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	notifications service.NotificationService
	logger        *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications service.NotificationService, logger *slog.Logger) *NotificationHandler {
	if notifications == nil {
		panic("notification service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationHandler{
		notifications: notifications,
		logger:        logger.With(slog.String("component", "notification_handler")),
	}
}

// ListUnread handles GET /notifications.
func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	notifications, err := h.notifications.ListUnread(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, notifications)
}

// MarkRead handles PATCH /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, notificationID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	notification, err := h.notifications.MarkRead(r.Context(), userID, notificationID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, notification)
}

// MarkAllRead handles POST /notifications/mark-all-read.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	updated, err := h.notifications.MarkAllRead(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("notifications marked read", "updated", updated)
	shared.RespondWithData(w, r, http.StatusOK, MarkAllReadResponse{Updated: updated})
}

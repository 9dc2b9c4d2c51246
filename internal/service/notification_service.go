package service

import (
	"context"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// NotificationService exposes a user's notifications and their read state.
type NotificationService interface {
	// ListUnread returns the caller's unread notifications, newest first.
	ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)

	// MarkRead marks one of the caller's notifications read. Notifications
	// belonging to someone else are reported as not found.
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*domain.Notification, error)

	// MarkAllRead marks every unread notification of the caller read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	notifications store.NotificationStore
	logger        *slog.Logger
}

// NewNotificationService creates a NotificationService. Panics on a nil store.
func NewNotificationService(notifications store.NotificationStore, logger *slog.Logger) NotificationService {
	if notifications == nil {
		panic("notifications cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		notifications: notifications,
		logger:        logger.With(slog.String("component", "notification_service")),
	}
}

// ListUnread implements NotificationService.
func (s *notificationService) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	list, err := s.notifications.ListUnread(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list unread notifications",
			"error", err,
			"user_id", userID)
		return nil, NewServiceError("notification", "list_unread", err)
	}
	return list, nil
}

// MarkRead implements NotificationService.
func (s *notificationService) MarkRead(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, NewServiceError("notification", "mark_read", err)
	}
	if existing.UserID != userID {
		log.Warn("mark read attempted on another user's notification",
			"notification_id", id,
			"user_id", userID)
		return nil, store.ErrNotificationNotFound
	}
	if existing.Read {
		return existing, nil
	}

	updated, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to mark notification read", "error", err, "notification_id", id)
		return nil, NewServiceError("notification", "mark_read", err)
	}
	return updated, nil
}

// MarkAllRead implements NotificationService.
func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	changed, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		log.Error("failed to mark all notifications read", "error", err, "user_id", userID)
		return 0, NewServiceError("notification", "mark_all_read", err)
	}

	log.Debug("marked notifications read", "user_id", userID, "count", changed)
	return changed, nil
}

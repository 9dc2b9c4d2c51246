package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/events"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// AssignmentNotifier records and pushes "you have been assigned" notifications.
type AssignmentNotifier interface {
	// NotifyAssignment persists a notification for recipient and, once it is
	// stored, pushes it to the recipient's room as newNotification. Nothing is
	// pushed when persistence fails.
	NotifyAssignment(
		ctx context.Context,
		recipient, taskID uuid.UUID,
		taskTitle string,
	) (*domain.Notification, error)
}

type assignmentNotifier struct {
	notifications store.NotificationStore
	publisher     events.Publisher
	logger        *slog.Logger
}

// NewAssignmentNotifier creates the notifier. Panics on nil dependencies.
func NewAssignmentNotifier(
	notifications store.NotificationStore,
	publisher events.Publisher,
	logger *slog.Logger,
) AssignmentNotifier {
	if notifications == nil {
		panic("notifications cannot be nil")
	}
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &assignmentNotifier{
		notifications: notifications,
		publisher:     publisher,
		logger:        logger.With(slog.String("component", "assignment_notifier")),
	}
}

// NotifyAssignment implements AssignmentNotifier.
func (n *assignmentNotifier) NotifyAssignment(
	ctx context.Context,
	recipient, taskID uuid.UUID,
	taskTitle string,
) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, n.logger)

	notification, err := domain.NewNotification(recipient, taskID, domain.AssignmentMessage(taskTitle))
	if err != nil {
		return nil, NewServiceError("notification", "notify_assignment", err)
	}

	if err := n.notifications.Create(ctx, notification); err != nil {
		log.Error("failed to persist assignment notification",
			"error", err,
			"recipient_id", recipient,
			"task_id", taskID)
		return nil, NewServiceError("notification", "notify_assignment",
			fmt.Errorf("%w: %w", ErrNotificationFailed, err))
	}

	n.publisher.EmitToRoom(ctx, recipient.String(), events.NewNotification, notification)

	log.Info("assignment notification sent",
		"notification_id", notification.ID,
		"recipient_id", recipient,
		"task_id", taskID)
	return notification, nil
}

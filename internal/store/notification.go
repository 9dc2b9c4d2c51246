package store

import (
	"context"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

// NotificationStore defines the interface for notification persistence.
type NotificationStore interface {
	// Create saves a new unread notification and fills n.Task with the
	// summary of the referenced task.
	// Returns ErrForeignKeyViolation if the user or task does not exist.
	Create(ctx context.Context, n *domain.Notification) error

	// GetByID retrieves a notification with its task summary.
	// Returns ErrNotificationNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// ListUnread returns the user's unread notifications, newest first,
	// each with its task summary.
	ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)

	// MarkRead sets the read flag and returns the notification. Marking an
	// already read notification succeeds and leaves it read.
	// Returns ErrNotificationNotFound if it does not exist.
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// MarkAllRead marks every unread notification of the user as read and
	// returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// The task columns are NULL once the task has been deleted.
const notificationSelect = `
	SELECT n.id, n.user_id, n.task_id, n.message, n.read, n.created_at,
		t.id AS task_ref, t.title AS task_title, t.status AS task_status,
		t.priority AS task_priority, t.due_date AS task_due_date
	FROM notifications n
	LEFT JOIN tasks t ON t.id = n.task_id`

// SQLiteNotificationStore implements store.NotificationStore on SQLite.
type SQLiteNotificationStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteNotificationStore creates a SQLite notification store. It panics if db is nil.
func NewSQLiteNotificationStore(db *sqlx.DB, logger *slog.Logger) *SQLiteNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

var _ store.NotificationStore = (*SQLiteNotificationStore)(nil)

// Create implements store.NotificationStore.Create
func (s *SQLiteNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := n.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, task_id, message, read, created_at)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM tasks WHERE id = ?)`,
		n.ID, n.UserID, n.TaskID, n.Message, n.Read, n.CreatedAt.UTC(), n.TaskID,
	)
	if err != nil {
		log.Warn("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("user_id", n.UserID.String()),
			slog.String("task_id", n.TaskID.String()))
		return store.NewStoreError("notification", "create", "failed to insert notification", MapError(err))
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("notification", "create", "failed to get rows affected", err)
	}
	if inserted == 0 {
		log.Warn("notification references a missing task", slog.String("task_id", n.TaskID.String()))
		return store.NewStoreError("notification", "create", "task does not exist", store.ErrForeignKeyViolation)
	}

	created, err := s.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	*n = *created
	return nil
}

// GetByID implements store.NotificationStore.GetByID
func (s *SQLiteNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	var row notificationRow
	if err := s.db.GetContext(ctx, &row, notificationSelect+" WHERE n.id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		return nil, store.NewStoreError("notification", "get", "failed to query notification", MapError(err))
	}

	n := row.toDomain()
	return &n, nil
}

// ListUnread implements store.NotificationStore.ListUnread
func (s *SQLiteNotificationStore) ListUnread(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Notification, error) {
	var rows []notificationRow
	err := s.db.SelectContext(ctx, &rows,
		notificationSelect+" WHERE n.user_id = ? AND n.read = 0 ORDER BY n.created_at DESC", userID)
	if err != nil {
		return nil, store.NewStoreError("notification", "list_unread", "failed to query notifications", MapError(err))
	}

	notifications := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toDomain())
	}
	return notifications, nil
}

// MarkRead implements store.NotificationStore.MarkRead
func (s *SQLiteNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE id = ?", id)
	if err != nil {
		return nil, store.NewStoreError("notification", "mark_read", "failed to update notification", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, store.NewStoreError("notification", "mark_read", "failed to get rows affected", err)
	}
	if rows == 0 {
		return nil, store.ErrNotificationNotFound
	}
	return s.GetByID(ctx, id)
}

// MarkAllRead implements store.NotificationStore.MarkAllRead
func (s *SQLiteNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE user_id = ? AND read = 0", userID)
	if err != nil {
		return 0, store.NewStoreError("notification", "mark_all_read", "failed to update notifications", MapError(err))
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("notification", "mark_all_read", "failed to get rows affected", err)
	}
	return count, nil
}

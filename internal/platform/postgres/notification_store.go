package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// notificationSelect joins each notification to its task summary. The
// summary columns are NULL once the task has been deleted.
const notificationSelect = `
	SELECT n.id, n.user_id, n.task_id, n.message, n.read, n.created_at,
		t.id, t.title, t.status, t.priority, t.due_date
	FROM notifications n
	LEFT JOIN tasks t ON t.id = n.task_id
`

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of the
// NotificationStore interface.
func NewPostgresNotificationStore(db store.DBTX, logger *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
// The insert and the task summary lookup run as one statement. The row is
// only inserted while the task exists.
func (s *PostgresNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := n.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", n.ID.String()))
		return err
	}

	query := `
		WITH inserted AS (
			INSERT INTO notifications (id, user_id, task_id, message, read, created_at)
			SELECT $1::uuid, $2::uuid, $3::uuid, $4::text, $5::boolean, $6::timestamptz
			WHERE EXISTS (SELECT 1 FROM tasks WHERE id = $3)
			RETURNING id, user_id, task_id, message, read, created_at
		)
		SELECT n.id, n.user_id, n.task_id, n.message, n.read, n.created_at,
			t.id, t.title, t.status, t.priority, t.due_date
		FROM inserted n
		JOIN tasks t ON t.id = n.task_id
	`
	created, err := scanNotification(s.db.QueryRowContext(
		ctx,
		query,
		n.ID,
		n.UserID,
		n.TaskID,
		n.Message,
		n.Read,
		n.CreatedAt.UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("notification references a missing task",
			slog.String("task_id", n.TaskID.String()))
		return store.NewStoreError("notification", "create", "task does not exist", store.ErrForeignKeyViolation)
	}
	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("user_id", n.UserID.String()),
			slog.String("task_id", n.TaskID.String()))
		return store.NewStoreError("notification", "create", "failed to insert notification", MapError(err))
	}

	*n = *created
	log.Debug("notification created",
		slog.String("notification_id", n.ID.String()),
		slog.String("user_id", n.UserID.String()))
	return nil
}

// GetByID implements store.NotificationStore.GetByID
func (s *PostgresNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := scanNotification(s.db.QueryRowContext(ctx, notificationSelect+" WHERE n.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to get notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, store.NewStoreError("notification", "get", "failed to query notification", MapError(err))
	}
	return n, nil
}

// ListUnread implements store.NotificationStore.ListUnread
func (s *PostgresNotificationStore) ListUnread(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := notificationSelect + `
		WHERE n.user_id = $1 AND n.read = FALSE
		ORDER BY n.created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list unread notifications",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("notification", "list_unread", "failed to query notifications", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, store.NewStoreError("notification", "list_unread", "failed to scan notification", err)
		}
		notifications = append(notifications, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("notification", "list_unread", "failed to iterate notifications", err)
	}

	return notifications, nil
}

// MarkRead implements store.NotificationStore.MarkRead
// The WHERE clause does not filter on read, so repeating it is harmless.
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = TRUE WHERE id = $1", id)
	if err != nil {
		log.Error("failed to mark notification read",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, store.NewStoreError("notification", "mark_read", "failed to update notification", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrNotificationNotFound); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// MarkAllRead implements store.NotificationStore.MarkAllRead
func (s *PostgresNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE", userID)
	if err != nil {
		log.Error("failed to mark all notifications read",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, store.NewStoreError("notification", "mark_all_read", "failed to update notifications", MapError(err))
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("notification", "mark_all_read", "failed to get rows affected", err)
	}

	log.Debug("notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int64("count", count))
	return count, nil
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n        domain.Notification
		taskID   uuid.NullUUID
		title    sql.NullString
		status   sql.NullString
		priority sql.NullString
		dueDate  sql.NullTime
	)

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.TaskID,
		&n.Message,
		&n.Read,
		&n.CreatedAt,
		&taskID,
		&title,
		&status,
		&priority,
		&dueDate,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt = n.CreatedAt.UTC()
	if taskID.Valid {
		n.Task = &domain.TaskSummary{
			ID:       taskID.UUID,
			Title:    title.String,
			Status:   domain.Status(status.String),
			Priority: domain.Priority(priority.String),
			DueDate:  dueDate.Time.UTC(),
		}
	}
	return &n, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLiteTaskStore implements store.TaskStore on SQLite.
type SQLiteTaskStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a SQLite task store. It panics if db is nil.
func NewSQLiteTaskStore(db *sqlx.DB, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Description, task.DueDate.UTC(),
		string(task.Priority), string(task.Status),
		task.CreatorID, nullUUID(task.AssignedToID),
		task.CreatedAt.UTC(), task.UpdatedAt.UTC(),
	)
	if err != nil {
		log.Warn("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var row taskRow
	err := s.db.GetContext(ctx, &row, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}

	task := row.toDomain()
	return &task, nil
}

// Update implements store.TaskStore.Update
func (s *SQLiteTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	query, args := taskUpdateQuery(id, patch, time.Now().UTC())
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Warn("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, store.NewStoreError("task", "update", "failed to get rows affected", err)
	}
	if rows == 0 {
		return nil, store.ErrTaskNotFound
	}

	// RETURNING columns carry no declared type, so DATETIME values would
	// come back as text; read the row back instead.
	return s.GetByID(ctx, id)
}

// Delete implements store.TaskStore.Delete
func (s *SQLiteTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to get rows affected", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// List implements store.TaskStore.List
func (s *SQLiteTaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query, args := taskListQuery(filter, nil)
	return s.selectTasks(ctx, "list", query, args...)
}

// ListForUser implements store.TaskStore.ListForUser
func (s *SQLiteTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.TaskFilter,
) ([]domain.Task, error) {
	query, args := taskListQuery(filter, &userID)
	return s.selectTasks(ctx, "list_for_user", query, args...)
}

// ListOverdue implements store.TaskStore.ListOverdue
func (s *SQLiteTaskStore) ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.selectTasks(ctx, "list_overdue", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE assigned_to_id = ? AND status <> ? AND due_date < ?
		ORDER BY due_date ASC`,
		userID, string(domain.StatusCompleted), time.Now().UTC())
}

func (s *SQLiteTaskStore) selectTasks(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]domain.Task, error) {
	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("task", operation, "failed to query tasks", MapError(err))
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomain())
	}
	return tasks, nil
}

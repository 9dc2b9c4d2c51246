package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLiteUserStore implements store.UserStore on SQLite.
type SQLiteUserStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteUserStore creates a SQLite user store. It panics if db is nil.
func NewSQLiteUserStore(db *sqlx.DB, logger *slog.Logger) *SQLiteUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*SQLiteUserStore)(nil)

// Create implements store.UserStore.Create
func (s *SQLiteUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.CreatedAt.UTC())
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *SQLiteUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, "SELECT id, name, email, created_at FROM users WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to query user", MapError(err))
	}

	user := row.toDomain()
	return &user, nil
}

// Update implements store.UserStore.Update
func (s *SQLiteUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ? WHERE id = ?",
		user.Name, user.Email, user.ID)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "update", "failed to update user", mapped)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("user", "update", "failed to get rows affected", err)
	}
	if rows == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// List implements store.UserStore.List
func (s *SQLiteUserStore) List(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name, email, created_at FROM users ORDER BY name ASC"); err != nil {
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

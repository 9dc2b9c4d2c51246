package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/platform/postgres"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_assigned_to_id_fkey",
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil error", err: nil, wantNil: true},
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), wantIs: store.ErrForeignKeyViolation},
		{name: "check violation", err: newPgError("23514"), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError("23502"), wantIs: store.ErrInvalidEntity},
		{
			name:   "wrapped foreign key violation",
			err:    fmt.Errorf("insert task: %w", newPgError("23503")),
			wantIs: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.wantIs)
		})
	}

	t.Run("unmapped error passes through", func(t *testing.T) {
		t.Parallel()
		original := errors.New("connection reset")
		assert.Same(t, original, postgres.MapError(original))
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("wrap: %w", newPgError("23503"))))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("generic")))
	assert.False(t, postgres.IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, postgres.CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrTaskNotFound))
	assert.ErrorIs(t,
		postgres.CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrTaskNotFound),
		store.ErrTaskNotFound)
	assert.ErrorIs(t, postgres.CheckRowsAffected(mockResult{}, nil), store.ErrNotFound)
	assert.Error(t, postgres.CheckRowsAffected(nil, nil))
	assert.Error(t, postgres.CheckRowsAffected(mockResult{err: errors.New("driver")}, nil))
}

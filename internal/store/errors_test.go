package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrTaskNotFound", ErrTaskNotFound, true},
		{"wrapped ErrNotificationNotFound", fmt.Errorf("mark read: %w", ErrNotificationNotFound), true},
		{"store error wrapping ErrUserNotFound", NewStoreError("user", "get", "missing", ErrUserNotFound), true},
		{"ErrEmailExists", ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", ErrDuplicate)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	withCause := NewStoreError("task", "update", "no rows", ErrTaskNotFound)
	assert.Equal(t, "update operation on task failed: no rows: entity not found: task", withCause.Error())
	assert.ErrorIs(t, withCause, ErrTaskNotFound)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", withCause), &se))
	assert.Equal(t, "task", se.Entity)

	bare := NewStoreError("notification", "create", "invalid", nil)
	assert.Equal(t, "create operation on notification failed: invalid", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

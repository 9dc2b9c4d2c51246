package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TaskOption customizes a task built by NewTestTask.
type TaskOption func(*domain.Task)

// WithTaskTitle sets the task title.
func WithTaskTitle(title string) TaskOption {
	return func(t *domain.Task) { t.Title = title }
}

// WithTaskAssignee assigns the task to userID.
func WithTaskAssignee(userID uuid.UUID) TaskOption {
	return func(t *domain.Task) {
		id := userID
		t.AssignedToID = &id
	}
}

// WithTaskStatus sets the task status.
func WithTaskStatus(status domain.Status) TaskOption {
	return func(t *domain.Task) { t.Status = status }
}

// WithTaskPriority sets the task priority.
func WithTaskPriority(priority domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = priority }
}

// WithTaskDueDate sets the task due date.
func WithTaskDueDate(due time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = due.UTC() }
}

// NewTestTask builds a valid task owned by creatorID. It is not persisted.
func NewTestTask(t *testing.T, creatorID uuid.UUID, opts ...TaskOption) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(
		creatorID,
		"Test task "+uuid.New().String()[:8],
		"Test description",
		time.Now().Add(48*time.Hour),
		domain.PriorityMedium,
		domain.StatusTodo,
		nil,
	)
	require.NoError(t, err, "Failed to build test task")

	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, task.Validate(), "Test task options produced an invalid task")
	return task
}

// MustCreateUser inserts a user through users and returns it.
func MustCreateUser(ctx context.Context, t *testing.T, users store.UserStore, name string) *domain.User {
	t.Helper()

	email := fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8])
	user, err := domain.NewUser(name, email)
	require.NoError(t, err, "Failed to build test user")
	require.NoError(t, users.Create(ctx, user), "Failed to insert test user")
	return user
}

// MustCreateTask inserts a task built by NewTestTask through tasks.
func MustCreateTask(
	ctx context.Context,
	t *testing.T,
	tasks store.TaskStore,
	creatorID uuid.UUID,
	opts ...TaskOption,
) *domain.Task {
	t.Helper()

	task := NewTestTask(t, creatorID, opts...)
	require.NoError(t, tasks.Create(ctx, task), "Failed to insert test task")
	return task
}

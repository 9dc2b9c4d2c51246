package store

import (
	"context"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task. The task must already be validated.
	// Returns ErrForeignKeyViolation if the creator or assignee does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial update and returns the stored result.
	// Fields absent from the patch are left unchanged; AssignedTo with Set
	// and a nil ID clears the assignee. UpdatedAt is always refreshed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task and, through the schema, its notifications.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all tasks matching filter.
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)

	// ListForUser returns tasks matching filter where userID is the creator
	// or the assignee.
	ListForUser(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)

	// ListOverdue returns tasks assigned to userID that are not completed and
	// whose due date is before now, earliest due first.
	ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
}

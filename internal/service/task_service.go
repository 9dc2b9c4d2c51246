package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/events"
	"github.com/Abhi005shek/TaskManager/internal/platform/logger"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// TaskScope selects which tasks a listing covers.
type TaskScope string

// Listing scopes.
const (
	ScopeAll  TaskScope = "all"
	ScopeMine TaskScope = "mine"
)

// CreateTaskInput holds the fields of a new task.
type CreateTaskInput struct {
	Title        string
	Description  string
	DueDate      time.Time
	Priority     domain.Priority
	Status       domain.Status
	AssignedToID *uuid.UUID
}

// TaskService provides task operations and their realtime side effects.
type TaskService interface {
	// CreateTask stores a task for actorID, broadcasts task:created and
	// notifies the assignee when it is someone other than the creator.
	CreateTask(ctx context.Context, actorID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// GetTask returns a task by id.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// UpdateTask applies patch, broadcasts task:updated and notifies a newly
	// set assignee other than actorID.
	UpdateTask(ctx context.Context, actorID, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task and broadcasts task:deleted.
	DeleteTask(ctx context.Context, actorID, id uuid.UUID) error

	// ListTasks lists all tasks, or with ScopeMine those actorID created or
	// is assigned to.
	ListTasks(ctx context.Context, actorID uuid.UUID, scope TaskScope, filter domain.TaskFilter) ([]domain.Task, error)

	// ListOverdue lists actorID's unfinished tasks past their due date.
	ListOverdue(ctx context.Context, actorID uuid.UUID) ([]domain.Task, error)
}

type taskService struct {
	tasks     store.TaskStore
	users     store.UserStore
	notifier  AssignmentNotifier
	publisher events.Publisher
	logger    *slog.Logger
}

// NewTaskService creates a TaskService. It returns an error if any of the
// required dependencies are nil.
func NewTaskService(
	tasks store.TaskStore,
	users store.UserStore,
	notifier AssignmentNotifier,
	publisher events.Publisher,
	logger *slog.Logger,
) (TaskService, error) {
	switch {
	case tasks == nil:
		return nil, NewServiceError("task", "create_service", errors.New("tasks cannot be nil"))
	case users == nil:
		return nil, NewServiceError("task", "create_service", errors.New("users cannot be nil"))
	case notifier == nil:
		return nil, NewServiceError("task", "create_service", errors.New("notifier cannot be nil"))
	case publisher == nil:
		return nil, NewServiceError("task", "create_service", errors.New("publisher cannot be nil"))
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		tasks:     tasks,
		users:     users,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.
func (s *taskService) CreateTask(
	ctx context.Context,
	actorID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		actorID,
		input.Title,
		input.Description,
		input.DueDate,
		input.Priority,
		input.Status,
		input.AssignedToID,
	)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAssigneeExists(ctx, task.AssignedToID); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to create task", "error", err, "creator_id", actorID)
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task created", "task_id", task.ID, "creator_id", actorID)
	s.publisher.BroadcastGlobal(ctx, events.TaskCreated, task)

	if recipient, ok := domain.CreationRecipient(task); ok {
		if err := s.announceAssignment(ctx, task, recipient, domain.AssignmentAssigned); err != nil {
			return task, err
		}
	}

	return task, nil
}

// GetTask implements TaskService.
func (s *taskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("task", "get", err)
	}
	return task, nil
}

// UpdateTask implements TaskService.
func (s *taskService) UpdateTask(
	ctx context.Context,
	actorID, id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	previous, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.AssignedTo.Set {
		if err := s.ensureAssigneeExists(ctx, patch.AssignedTo.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		log.Error("failed to update task", "error", err, "task_id", id)
		return nil, NewServiceError("task", "update", err)
	}

	log.Info("task updated", "task_id", id, "actor_id", actorID)
	s.publisher.BroadcastGlobal(ctx, events.TaskUpdated, updated)

	if recipient, ok := domain.UpdateRecipient(previous, patch, actorID); ok {
		if err := s.announceAssignment(ctx, updated, recipient, domain.AssignmentReassigned); err != nil {
			return updated, err
		}
	}

	return updated, nil
}

// DeleteTask implements TaskService.
func (s *taskService) DeleteTask(ctx context.Context, actorID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		log.Error("failed to delete task", "error", err, "task_id", id)
		return NewServiceError("task", "delete", err)
	}

	log.Info("task deleted", "task_id", id, "actor_id", actorID)
	s.publisher.BroadcastGlobal(ctx, events.TaskDeleted, events.TaskDeletedPayload{ID: id})
	return nil
}

// ListTasks implements TaskService.
func (s *taskService) ListTasks(
	ctx context.Context,
	actorID uuid.UUID,
	scope TaskScope,
	filter domain.TaskFilter,
) ([]domain.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var (
		tasks []domain.Task
		err   error
	)
	switch scope {
	case ScopeMine:
		tasks, err = s.tasks.ListForUser(ctx, actorID, filter)
	case ScopeAll, "":
		tasks, err = s.tasks.List(ctx, filter)
	default:
		return nil, ErrInvalidScope
	}
	if err != nil {
		return nil, NewServiceError("task", "list", err)
	}
	return tasks, nil
}

// ListOverdue implements TaskService.
func (s *taskService) ListOverdue(ctx context.Context, actorID uuid.UUID) ([]domain.Task, error) {
	tasks, err := s.tasks.ListOverdue(ctx, actorID)
	if err != nil {
		return nil, NewServiceError("task", "list_overdue", err)
	}
	return tasks, nil
}

func (s *taskService) ensureAssigneeExists(ctx context.Context, assignee *uuid.UUID) error {
	if assignee == nil || *assignee == uuid.Nil {
		return nil
	}
	if _, err := s.users.GetByID(ctx, *assignee); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrAssigneeNotFound
		}
		return NewServiceError("task", "check_assignee", err)
	}
	return nil
}

// announceAssignment pushes task:assigned to the recipient and records the
// notification. The task itself is already stored and stays stored when
// the notification fails.
func (s *taskService) announceAssignment(
	ctx context.Context,
	task *domain.Task,
	recipient uuid.UUID,
	kind domain.AssignmentKind,
) error {
	s.publisher.EmitToRoom(ctx, recipient.String(), events.TaskAssigned,
		events.NewTaskAssignedPayload(task, recipient, kind))

	if _, err := s.notifier.NotifyAssignment(ctx, recipient, task.ID, task.Title); err != nil {
		return err
	}
	return nil
}

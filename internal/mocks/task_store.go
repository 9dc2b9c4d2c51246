package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// MockTaskStore implements store.TaskStore for testing. Without function
// fields it behaves as an in-memory store.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn      func(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	ListFn        func(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)
	ListOverdueFn func(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)

	// Now is used for UpdatedAt and overdue checks. Defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	tasks map[uuid.UUID]domain.Task
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[uuid.UUID]domain.Task)}
}

func (m *MockTaskStore) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		m.tasks = make(map[uuid.UUID]domain.Task)
	}
	if _, ok := m.tasks[task.ID]; ok {
		return store.ErrDuplicate
	}
	m.tasks[task.ID] = *task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	updated := patch.Apply(t)
	updated.UpdatedAt = m.now()
	m.tasks[id] = updated
	return &updated, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return m.collect(filter, func(domain.Task) bool { return true }), nil
}

// ListForUser implements the TaskStore interface
func (m *MockTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	filter domain.TaskFilter,
) ([]domain.Task, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, filter)
	}
	return m.collect(filter, func(t domain.Task) bool {
		return t.CreatorID == userID || (t.AssignedToID != nil && *t.AssignedToID == userID)
	}), nil
}

// ListOverdue implements the TaskStore interface
func (m *MockTaskStore) ListOverdue(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, userID)
	}
	now := m.now()
	return m.collect(domain.TaskFilter{SortByDueDate: domain.SortAsc}, func(t domain.Task) bool {
		return t.AssignedToID != nil && *t.AssignedToID == userID && t.IsOverdue(now)
	}), nil
}

func (m *MockTaskStore) collect(filter domain.TaskFilter, keep func(domain.Task) bool) []domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if keep(t) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch filter.SortByDueDate {
		case domain.SortAsc:
			return out[i].DueDate.Before(out[j].DueDate)
		case domain.SortDesc:
			return out[i].DueDate.After(out[j].DueDate)
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out
}

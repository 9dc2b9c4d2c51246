package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/google/uuid"
)

// MockNotificationStore implements store.NotificationStore for testing.
// Without function fields it behaves as an in-memory store; when Tasks is
// set, task summaries are resolved from it.
type MockNotificationStore struct {
	CreateFn      func(ctx context.Context, n *domain.Notification) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListUnreadFn  func(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkReadFn    func(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	MarkAllReadFn func(ctx context.Context, userID uuid.UUID) (int64, error)

	Tasks store.TaskStore

	mu            sync.Mutex
	notifications map[uuid.UUID]domain.Notification
	createCalls   int
}

var _ store.NotificationStore = (*MockNotificationStore)(nil)

// NewMockNotificationStore creates an in-memory store resolving summaries from tasks.
func NewMockNotificationStore(tasks store.TaskStore) *MockNotificationStore {
	return &MockNotificationStore{
		Tasks:         tasks,
		notifications: make(map[uuid.UUID]domain.Notification),
	}
}

// CreateCalls returns how many times Create was invoked.
func (m *MockNotificationStore) CreateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

// All returns every stored notification regardless of read state.
func (m *MockNotificationStore) All() []domain.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Notification, 0, len(m.notifications))
	for _, n := range m.notifications {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Create implements the NotificationStore interface
func (m *MockNotificationStore) Create(ctx context.Context, n *domain.Notification) error {
	m.mu.Lock()
	m.createCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}

	summary, err := m.summary(ctx, n.TaskID)
	if err != nil {
		return err
	}
	n.Task = summary

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.notifications == nil {
		m.notifications = make(map[uuid.UUID]domain.Notification)
	}
	m.notifications[n.ID] = *n
	return nil
}

// GetByID implements the NotificationStore interface
func (m *MockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, store.ErrNotificationNotFound
	}
	return &n, nil
}

// ListUnread implements the NotificationStore interface
func (m *MockNotificationStore) ListUnread(
	ctx context.Context,
	userID uuid.UUID,
) ([]domain.Notification, error) {
	if m.ListUnreadFn != nil {
		return m.ListUnreadFn(ctx, userID)
	}

	out := []domain.Notification{}
	for _, n := range m.All() {
		if n.UserID == userID && !n.Read {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok {
		return nil, store.ErrNotificationNotFound
	}
	n.Read = true
	m.notifications[id] = n
	return &n, nil
}

// MarkAllRead implements the NotificationStore interface
func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var changed int64
	for id, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			m.notifications[id] = n
			changed++
		}
	}
	return changed, nil
}

func (m *MockNotificationStore) summary(ctx context.Context, taskID uuid.UUID) (*domain.TaskSummary, error) {
	if m.Tasks == nil {
		return nil, nil
	}
	task, err := m.Tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrForeignKeyViolation
		}
		return nil, err
	}
	return task.Summary(), nil
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/mocks"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/Abhi005shek/TaskManager/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	store *mocks.MockNotificationStore
	svc   service.NotificationService
	task  *domain.Task
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	task := testutils.MustCreateTask(context.Background(), t, tasks, uuid.New())
	ns := mocks.NewMockNotificationStore(tasks)
	return &notificationFixture{
		store: ns,
		svc:   service.NewNotificationService(ns, nil),
		task:  task,
	}
}

func (f *notificationFixture) add(t *testing.T, userID uuid.UUID) *domain.Notification {
	t.Helper()
	n, err := domain.NewNotification(userID, f.task.ID, domain.AssignmentMessage(f.task.Title))
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), n))
	return n
}

func TestMarkAllRead_ThenListUnreadIsEmpty(t *testing.T) {
	t.Parallel()
	f := newNotificationFixture(t)
	ctx := context.Background()
	user, other := uuid.New(), uuid.New()

	f.add(t, user)
	f.add(t, user)
	f.add(t, other)

	unread, err := f.svc.ListUnread(ctx, user)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	changed, err := f.svc.MarkAllRead(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	unread, err = f.svc.ListUnread(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, unread)

	changed, err = f.svc.MarkAllRead(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changed)

	otherUnread, err := f.svc.ListUnread(ctx, other)
	require.NoError(t, err)
	assert.Len(t, otherUnread, 1)
}

func TestMarkRead_Idempotent(t *testing.T) {
	t.Parallel()
	f := newNotificationFixture(t)
	ctx := context.Background()
	user := uuid.New()
	n := f.add(t, user)

	first, err := f.svc.MarkRead(ctx, user, n.ID)
	require.NoError(t, err)
	assert.True(t, first.Read)

	second, err := f.svc.MarkRead(ctx, user, n.ID)
	require.NoError(t, err)
	assert.True(t, second.Read)
	assert.Equal(t, n.ID, second.ID)
}

func TestMarkRead_NotFound(t *testing.T) {
	t.Parallel()
	f := newNotificationFixture(t)
	ctx := context.Background()
	owner := uuid.New()
	n := f.add(t, owner)

	t.Run("missing", func(t *testing.T) {
		_, err := f.svc.MarkRead(ctx, owner, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotificationNotFound)
		assert.False(t, errors.Is(err, domain.ErrValidation))
	})

	t.Run("someone else's", func(t *testing.T) {
		_, err := f.svc.MarkRead(ctx, uuid.New(), n.ID)
		assert.ErrorIs(t, err, store.ErrNotificationNotFound)

		stored, getErr := f.store.GetByID(ctx, n.ID)
		require.NoError(t, getErr)
		assert.False(t, stored.Read)
	})
}

func TestNotificationService_StoreFailures(t *testing.T) {
	t.Parallel()
	dbErr := errors.New("db down")
	ns := mocks.NewMockNotificationStore(nil)
	ns.ListUnreadFn = func(context.Context, uuid.UUID) ([]domain.Notification, error) { return nil, dbErr }
	ns.MarkAllReadFn = func(context.Context, uuid.UUID) (int64, error) { return 0, dbErr }
	ns.GetByIDFn = func(context.Context, uuid.UUID) (*domain.Notification, error) { return nil, dbErr }
	svc := service.NewNotificationService(ns, nil)
	ctx := context.Background()

	_, err := svc.ListUnread(ctx, uuid.New())
	assert.ErrorIs(t, err, dbErr)
	_, err = svc.MarkAllRead(ctx, uuid.New())
	assert.ErrorIs(t, err, dbErr)
	_, err = svc.MarkRead(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, dbErr)

	var serviceErr *service.ServiceError
	assert.ErrorAs(t, err, &serviceErr)
}

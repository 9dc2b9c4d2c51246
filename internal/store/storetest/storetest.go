// Package storetest holds a behavioural test suite that every store
// implementation must pass. Backends call Run from their own tests with a
// factory that yields fresh, isolated stores.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/store"
	"github.com/Abhi005shek/TaskManager/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores groups the store implementations under test. They must share one
// database so foreign keys between them hold.
type Stores struct {
	Users         store.UserStore
	Tasks         store.TaskStore
	Notifications store.NotificationStore
}

// Factory returns empty, isolated stores for one subtest.
type Factory func(t *testing.T) Stores

// timeTolerance absorbs the precision each database keeps for timestamps.
const timeTolerance = time.Millisecond

// Run executes the full suite.
func Run(t *testing.T, newStores Factory) {
	t.Run("users", func(t *testing.T) { runUserTests(t, newStores) })
	t.Run("tasks", func(t *testing.T) { runTaskTests(t, newStores) })
	t.Run("notifications", func(t *testing.T) { runNotificationTests(t, newStores) })
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func runUserTests(t *testing.T, newStores Factory) {
	t.Run("create and get", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		user := testutils.MustCreateUser(ctx, t, s.Users, "ada")
		got, err := s.Users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Name, got.Name)
		assert.Equal(t, user.Email, got.Email)
		assert.WithinDuration(t, user.CreatedAt, got.CreatedAt, timeTolerance)
	})

	t.Run("missing user", func(t *testing.T) {
		s := newStores(t)
		_, err := s.Users.GetByID(testContext(t), uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		first := testutils.MustCreateUser(ctx, t, s.Users, "ada")
		dup, err := domain.NewUser("other", first.Email)
		require.NoError(t, err)

		err = s.Users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("update", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		user := testutils.MustCreateUser(ctx, t, s.Users, "ada")
		require.NoError(t, user.Rename("Ada Lovelace"))
		require.NoError(t, s.Users.Update(ctx, user))

		got, err := s.Users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Name)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("update missing user", func(t *testing.T) {
		s := newStores(t)
		ghost, err := domain.NewUser("ghost", "ghost@example.com")
		require.NoError(t, err)

		assert.ErrorIs(t, s.Users.Update(testContext(t), ghost), store.ErrUserNotFound)
	})

	t.Run("update to taken email", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		first := testutils.MustCreateUser(ctx, t, s.Users, "ada")
		second := testutils.MustCreateUser(ctx, t, s.Users, "grace")
		second.Email = first.Email

		assert.ErrorIs(t, s.Users.Update(ctx, second), store.ErrEmailExists)
	})

	t.Run("update rejects invalid user", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		user := testutils.MustCreateUser(ctx, t, s.Users, "ada")
		user.Name = ""

		assert.ErrorIs(t, s.Users.Update(ctx, user), domain.ErrEmptyName)
	})

	t.Run("list ordered by name", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)

		testutils.MustCreateUser(ctx, t, s.Users, "carol")
		testutils.MustCreateUser(ctx, t, s.Users, "alice")
		testutils.MustCreateUser(ctx, t, s.Users, "bob")

		users, err := s.Users.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, []string{"alice", "bob", "carol"},
			[]string{users[0].Name, users[1].Name, users[2].Name})
	})
}

func runTaskTests(t *testing.T, newStores Factory) {
	t.Run("create and get", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")

		task := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskAssignee(assignee.ID),
			testutils.WithTaskPriority(domain.PriorityUrgent))

		got, err := s.Tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, got.Title)
		assert.Equal(t, task.Description, got.Description)
		assert.Equal(t, domain.PriorityUrgent, got.Priority)
		assert.Equal(t, domain.StatusTodo, got.Status)
		assert.Equal(t, creator.ID, got.CreatorID)
		require.NotNil(t, got.AssignedToID)
		assert.Equal(t, assignee.ID, *got.AssignedToID)
		assert.WithinDuration(t, task.DueDate, got.DueDate, timeTolerance)
		assert.WithinDuration(t, task.CreatedAt, got.CreatedAt, timeTolerance)
	})

	t.Run("missing task", func(t *testing.T) {
		s := newStores(t)
		_, err := s.Tasks.GetByID(testContext(t), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("unknown assignee is rejected", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")

		task := testutils.NewTestTask(t, creator.ID, testutils.WithTaskAssignee(uuid.New()))
		err := s.Tasks.Create(ctx, task)
		assert.ErrorIs(t, err, store.ErrForeignKeyViolation)
	})

	t.Run("invalid task is rejected before the database", func(t *testing.T) {
		s := newStores(t)
		task := &domain.Task{ID: uuid.New()}
		assert.ErrorIs(t, s.Tasks.Create(testContext(t), task), domain.ErrValidation)
	})

	t.Run("partial update", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")
		task := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID, testutils.WithTaskAssignee(assignee.ID))

		title := "renamed"
		updated, err := s.Tasks.Update(ctx, task.ID, domain.TaskPatch{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, task.Description, updated.Description)
		assert.Equal(t, task.Priority, updated.Priority)
		assert.Equal(t, task.Status, updated.Status)
		assert.Equal(t, creator.ID, updated.CreatorID)
		require.NotNil(t, updated.AssignedToID)
		assert.Equal(t, assignee.ID, *updated.AssignedToID)
		assert.False(t, updated.UpdatedAt.Before(task.UpdatedAt.Add(-timeTolerance)))
	})

	t.Run("explicit null unassigns", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")
		task := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID, testutils.WithTaskAssignee(assignee.ID))

		updated, err := s.Tasks.Update(ctx, task.ID, domain.TaskPatch{
			AssignedTo: domain.AssigneeUpdate{Set: true},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.AssignedToID)
	})

	t.Run("update missing task", func(t *testing.T) {
		s := newStores(t)
		status := domain.StatusCompleted
		_, err := s.Tasks.Update(testContext(t), uuid.New(), domain.TaskPatch{Status: &status})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("delete keeps notifications", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")
		task := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID, testutils.WithTaskAssignee(assignee.ID))

		n, err := domain.NewNotification(assignee.ID, task.ID, domain.AssignmentMessage(task.Title))
		require.NoError(t, err)
		require.NoError(t, s.Notifications.Create(ctx, n))

		require.NoError(t, s.Tasks.Delete(ctx, task.ID))

		_, err = s.Tasks.GetByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		kept, err := s.Notifications.GetByID(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, kept.TaskID)
		assert.Equal(t, n.Message, kept.Message)
		assert.Nil(t, kept.Task, "summary is gone with the task")

		unread, err := s.Notifications.ListUnread(ctx, assignee.ID)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, n.ID, unread[0].ID)

		read, err := s.Notifications.MarkRead(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, read.Read)

		assert.ErrorIs(t, s.Tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)
	})

	t.Run("list filters and ordering", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")

		base := time.Now().UTC().Truncate(time.Second)
		specs := []struct {
			status   domain.Status
			priority domain.Priority
			due      time.Duration
		}{
			{domain.StatusTodo, domain.PriorityHigh, 3 * time.Hour},
			{domain.StatusReview, domain.PriorityLow, 1 * time.Hour},
			{domain.StatusTodo, domain.PriorityLow, 2 * time.Hour},
		}
		ids := make([]uuid.UUID, len(specs))
		for i, spec := range specs {
			task := testutils.NewTestTask(t, creator.ID,
				testutils.WithTaskStatus(spec.status),
				testutils.WithTaskPriority(spec.priority),
				testutils.WithTaskDueDate(base.Add(spec.due)))
			task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			task.UpdatedAt = task.CreatedAt
			require.NoError(t, s.Tasks.Create(ctx, task))
			ids[i] = task.ID
		}

		all, err := s.Tasks.List(ctx, domain.TaskFilter{})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, taskIDs(all), "newest first by default")

		byDue, err := s.Tasks.List(ctx, domain.TaskFilter{SortByDueDate: domain.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[1], ids[2], ids[0]}, taskIDs(byDue))

		byDueDesc, err := s.Tasks.List(ctx, domain.TaskFilter{SortByDueDate: domain.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[0], ids[2], ids[1]}, taskIDs(byDueDesc))

		todoLow, err := s.Tasks.List(ctx, domain.TaskFilter{
			Status:   domain.StatusTodo,
			Priority: domain.PriorityLow,
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{ids[2]}, taskIDs(todoLow))
	})

	t.Run("list for user covers creator and assignee", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		u1 := testutils.MustCreateUser(ctx, t, s.Users, "u1")
		u2 := testutils.MustCreateUser(ctx, t, s.Users, "u2")
		u3 := testutils.MustCreateUser(ctx, t, s.Users, "u3")

		created := testutils.MustCreateTask(ctx, t, s.Tasks, u1.ID)
		assigned := testutils.MustCreateTask(ctx, t, s.Tasks, u2.ID, testutils.WithTaskAssignee(u1.ID))
		testutils.MustCreateTask(ctx, t, s.Tasks, u2.ID, testutils.WithTaskAssignee(u3.ID))

		tasks, err := s.Tasks.ListForUser(ctx, u1.ID, domain.TaskFilter{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{created.ID, assigned.ID}, taskIDs(tasks))

		none, err := s.Tasks.ListForUser(ctx, uuid.New(), domain.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("list overdue", func(t *testing.T) {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")
		now := time.Now().UTC()

		older := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskAssignee(assignee.ID), testutils.WithTaskDueDate(now.Add(-48*time.Hour)))
		recent := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskAssignee(assignee.ID), testutils.WithTaskDueDate(now.Add(-time.Hour)),
			testutils.WithTaskStatus(domain.StatusInProgress))
		testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskAssignee(assignee.ID), testutils.WithTaskDueDate(now.Add(-time.Hour)),
			testutils.WithTaskStatus(domain.StatusCompleted))
		testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskAssignee(assignee.ID), testutils.WithTaskDueDate(now.Add(time.Hour)))
		testutils.MustCreateTask(ctx, t, s.Tasks, assignee.ID,
			testutils.WithTaskDueDate(now.Add(-time.Hour)))

		overdue, err := s.Tasks.ListOverdue(ctx, assignee.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{older.ID, recent.ID}, taskIDs(overdue))
	})
}

func runNotificationTests(t *testing.T, newStores Factory) {
	type fixture struct {
		Stores
		creator  *domain.User
		assignee *domain.User
		task     *domain.Task
	}
	setup := func(t *testing.T) fixture {
		s := newStores(t)
		ctx := testContext(t)
		creator := testutils.MustCreateUser(ctx, t, s.Users, "creator")
		assignee := testutils.MustCreateUser(ctx, t, s.Users, "assignee")
		task := testutils.MustCreateTask(ctx, t, s.Tasks, creator.ID,
			testutils.WithTaskTitle("Ship report"),
			testutils.WithTaskAssignee(assignee.ID))
		return fixture{Stores: s, creator: creator, assignee: assignee, task: task}
	}
	notify := func(t *testing.T, f fixture, userID uuid.UUID, createdAt time.Time) *domain.Notification {
		t.Helper()
		n, err := domain.NewNotification(userID, f.task.ID, domain.AssignmentMessage(f.task.Title))
		require.NoError(t, err)
		n.CreatedAt = createdAt
		require.NoError(t, f.Notifications.Create(testContext(t), n))
		return n
	}

	t.Run("create attaches task summary", func(t *testing.T) {
		f := setup(t)
		n := notify(t, f, f.assignee.ID, time.Now().UTC())

		assert.False(t, n.Read)
		assert.Equal(t, "You have been assigned to task: Ship report", n.Message)
		require.NotNil(t, n.Task)
		assert.Equal(t, f.task.ID, n.Task.ID)
		assert.Equal(t, "Ship report", n.Task.Title)
		assert.Equal(t, f.task.Status, n.Task.Status)
		assert.Equal(t, f.task.Priority, n.Task.Priority)
		assert.WithinDuration(t, f.task.DueDate, n.Task.DueDate, timeTolerance)
	})

	t.Run("unknown task is rejected", func(t *testing.T) {
		f := setup(t)
		n, err := domain.NewNotification(f.assignee.ID, uuid.New(), "m")
		require.NoError(t, err)
		assert.ErrorIs(t, f.Notifications.Create(testContext(t), n), store.ErrForeignKeyViolation)
	})

	t.Run("list unread newest first", func(t *testing.T) {
		f := setup(t)
		ctx := testContext(t)
		base := time.Now().UTC().Truncate(time.Second)

		first := notify(t, f, f.assignee.ID, base)
		second := notify(t, f, f.assignee.ID, base.Add(time.Second))
		notify(t, f, f.creator.ID, base.Add(2*time.Second))

		unread, err := f.Notifications.ListUnread(ctx, f.assignee.ID)
		require.NoError(t, err)
		require.Len(t, unread, 2)
		assert.Equal(t, second.ID, unread[0].ID)
		assert.Equal(t, first.ID, unread[1].ID)
		require.NotNil(t, unread[0].Task)
		assert.Equal(t, "Ship report", unread[0].Task.Title)
	})

	t.Run("mark read is idempotent", func(t *testing.T) {
		f := setup(t)
		ctx := testContext(t)
		n := notify(t, f, f.assignee.ID, time.Now().UTC())

		read, err := f.Notifications.MarkRead(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, read.Read)

		again, err := f.Notifications.MarkRead(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, again.Read)

		unread, err := f.Notifications.ListUnread(ctx, f.assignee.ID)
		require.NoError(t, err)
		assert.Empty(t, unread)
	})

	t.Run("mark read missing notification", func(t *testing.T) {
		f := setup(t)
		_, err := f.Notifications.MarkRead(testContext(t), uuid.New())
		assert.ErrorIs(t, err, store.ErrNotificationNotFound)
	})

	t.Run("mark all read", func(t *testing.T) {
		f := setup(t)
		ctx := testContext(t)
		now := time.Now().UTC()
		notify(t, f, f.assignee.ID, now)
		notify(t, f, f.assignee.ID, now.Add(time.Millisecond))
		other := notify(t, f, f.creator.ID, now)

		count, err := f.Notifications.MarkAllRead(ctx, f.assignee.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		unread, err := f.Notifications.ListUnread(ctx, f.assignee.ID)
		require.NoError(t, err)
		assert.Empty(t, unread)

		count, err = f.Notifications.MarkAllRead(ctx, f.assignee.ID)
		require.NoError(t, err)
		assert.Zero(t, count, "second call affects nothing")

		untouched, err := f.Notifications.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.False(t, untouched.Read)
	})
}

func taskIDs(tasks []domain.Task) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

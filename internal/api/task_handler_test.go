package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/api/shared"
	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/events"
	"github.com/Abhi005shek/TaskManager/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskBody(title string, assignee any) map[string]any {
	body := map[string]any{
		"title":       title,
		"description": "Quarterly numbers",
		"dueDate":     time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"priority":    "HIGH",
	}
	if assignee != nil {
		body["assignedToId"] = assignee
	}
	return body
}

func TestCreateTask_NotifiesAssignee(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(t, http.MethodPost, "/api/v1/tasks", f.alice.ID, taskBody("Ship report", f.bob.ID.String()))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var task domain.Task
	decodeData(t, rr, &task)
	assert.Equal(t, "Ship report", task.Title)
	assert.Equal(t, f.alice.ID, task.CreatorID)
	require.NotNil(t, task.AssignedToID)
	assert.Equal(t, f.bob.ID, *task.AssignedToID)
	assert.Equal(t, domain.StatusTodo, task.Status)

	assert.Equal(t, 1, f.notifications.CreateCalls())
	assert.Len(t, f.publisher.Global(events.TaskCreated), 1)
	assert.Len(t, f.publisher.Room(f.bob.ID.String(), events.TaskAssigned), 1)
	assert.Len(t, f.publisher.Room(f.bob.ID.String(), events.NewNotification), 1)
	assert.Empty(t, f.publisher.RoomEvents(f.alice.ID.String()))
}

func TestCreateTask_SelfAssignmentIsSilent(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(t, http.MethodPost, "/api/v1/tasks", f.alice.ID, taskBody("Self", f.alice.ID.String()))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	assert.Zero(t, f.notifications.CreateCalls())
	assert.Len(t, f.publisher.Global(events.TaskCreated), 1)
	assert.Empty(t, f.publisher.RoomEvents(f.alice.ID.String()))
}

func TestCreateTask_BadRequests(t *testing.T) {
	f := newAPIFixture(t)

	withField := func(key string, value any) map[string]any {
		body := taskBody("Ship report", nil)
		body[key] = value
		return body
	}
	without := func(key string) map[string]any {
		body := taskBody("Ship report", nil)
		delete(body, key)
		return body
	}

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"malformed json", `{"title":`, "Invalid request format"},
		{"empty body", "", "Invalid request format"},
		{"missing title", without("title"), "Invalid title: required field"},
		{"title too long", withField("title", strings.Repeat("x", 101)), "Invalid title: too long"},
		{"missing description", without("description"), "Invalid description: required field"},
		{"missing due date", without("dueDate"), "Invalid dueDate: required field"},
		{"unparseable due date", withField("dueDate", "next tuesday"), "dueDate must be an ISO 8601 datetime"},
		{"unknown priority", withField("priority", "SOMEDAY"), "Invalid priority: invalid value"},
		{"unknown status", withField("status", "DONE"), "Invalid status: invalid value"},
		{"malformed assignee", withField("assignedToId", "bob"), "assignedToId must be a UUID"},
		{"unknown assignee", withField("assignedToId", uuid.NewString()), "Assignee does not exist"},
		{"blank title", withField("title", "   "), "title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodPost, "/api/v1/tasks", f.alice.ID, tt.body)

			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			resp := decodeError(t, rr)
			assert.Equal(t, shared.StatusFail, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	tasks, err := f.tasks.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTask_AcceptsDateOnlyAndNullAssignee(t *testing.T) {
	f := newAPIFixture(t)

	body := taskBody("Plan", nil)
	body["dueDate"] = "2030-01-15"
	body["assignedToId"] = nil

	rr := f.do(t, http.MethodPost, "/api/v1/tasks", f.alice.ID, body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var task domain.Task
	decodeData(t, rr, &task)
	assert.Nil(t, task.AssignedToID)
	assert.Equal(t, time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC), task.DueDate.UTC())
}

func TestCreateTask_NotificationFailure(t *testing.T) {
	f := newAPIFixture(t)
	f.notifications.CreateFn = func(ctx context.Context, n *domain.Notification) error {
		return errors.New("connection reset")
	}

	rr := f.do(t, http.MethodPost, "/api/v1/tasks", f.alice.ID, taskBody("Ship report", f.bob.ID.String()))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, shared.StatusError, resp.Status)
	assert.Equal(t, "Task saved but the assignee could not be notified", resp.Message)
	assert.NotContains(t, rr.Body.String(), "connection reset")

	tasks, err := f.tasks.List(context.Background(), domain.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "the task stays stored")
	assert.Empty(t, f.publisher.Room(f.bob.ID.String(), events.NewNotification))
}

func TestTaskRoutes_RequireAuthentication(t *testing.T) {
	f := newAPIFixture(t)

	rr := f.do(t, http.MethodGet, "/api/v1/tasks", uuid.Nil, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Not authenticated", decodeError(t, rr).Message)
}

func TestGetTask(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID, testutils.WithTaskTitle("Existing"))

	tests := []struct {
		name    string
		path    string
		status  int
		message string
	}{
		{"found", "/api/v1/tasks/" + task.ID.String(), http.StatusOK, ""},
		{"not found", "/api/v1/tasks/" + uuid.NewString(), http.StatusNotFound, "Task not found"},
		{"bad id", "/api/v1/tasks/not-a-uuid", http.StatusBadRequest, "Invalid ID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, tt.path, f.bob.ID, nil)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())

			if tt.message != "" {
				assert.Equal(t, tt.message, decodeError(t, rr).Message)
				return
			}
			var got domain.Task
			decodeData(t, rr, &got)
			assert.Equal(t, task.ID, got.ID)
			assert.Equal(t, "Existing", got.Title)
		})
	}
}

func TestUpdateTask_Reassignment(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID,
		testutils.WithTaskAssignee(f.bob.ID))
	path := "/api/v1/tasks/" + task.ID.String()

	rr := f.do(t, http.MethodPatch, path, f.alice.ID, map[string]any{"assignedToId": f.carol.ID.String()})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated domain.Task
	decodeData(t, rr, &updated)
	require.NotNil(t, updated.AssignedToID)
	assert.Equal(t, f.carol.ID, *updated.AssignedToID)

	assert.Equal(t, 1, f.notifications.CreateCalls())
	assert.Len(t, f.publisher.Room(f.carol.ID.String(), events.NewNotification), 1)
	assert.Empty(t, f.publisher.RoomEvents(f.bob.ID.String()))
	assert.Len(t, f.publisher.Global(events.TaskUpdated), 1)

	// Same assignee again changes nothing observable.
	rr = f.do(t, http.MethodPatch, path, f.alice.ID, map[string]any{"assignedToId": f.carol.ID.String()})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, f.notifications.CreateCalls())
}

func TestUpdateTask_NullUnassigns(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID,
		testutils.WithTaskAssignee(f.bob.ID))

	rr := f.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), f.alice.ID, `{"assignedToId":null}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated domain.Task
	decodeData(t, rr, &updated)
	assert.Nil(t, updated.AssignedToID)
	assert.Zero(t, f.notifications.CreateCalls())
}

func TestUpdateTask_PartialFields(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID,
		testutils.WithTaskTitle("Draft"))

	rr := f.do(t, http.MethodPatch, "/api/v1/tasks/"+task.ID.String(), f.bob.ID,
		map[string]any{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated domain.Task
	decodeData(t, rr, &updated)
	assert.Equal(t, domain.StatusInProgress, updated.Status)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, task.Priority, updated.Priority)
}

func TestUpdateTask_Errors(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID)
	path := "/api/v1/tasks/" + task.ID.String()

	tests := []struct {
		name    string
		path    string
		body    any
		status  int
		message string
	}{
		{"empty patch", path, map[string]any{}, http.StatusBadRequest, "No fields to update"},
		{"bad status", path, map[string]any{"status": "DONE"}, http.StatusBadRequest, "Invalid status: invalid value"},
		{"bad due date", path, map[string]any{"dueDate": "soon"}, http.StatusBadRequest, "dueDate must be an ISO 8601 datetime"},
		{"unknown assignee", path, map[string]any{"assignedToId": uuid.NewString()}, http.StatusBadRequest, "Assignee does not exist"},
		{"malformed assignee", path, map[string]any{"assignedToId": 42}, http.StatusBadRequest, "assignedToId must be a UUID"},
		{"missing task", "/api/v1/tasks/" + uuid.NewString(), map[string]any{"title": "x"}, http.StatusNotFound, "Task not found"},
		{"bad id", "/api/v1/tasks/nope", map[string]any{"title": "x"}, http.StatusBadRequest, "Invalid ID format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodPatch, tt.path, f.alice.ID, tt.body)

			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.message, decodeError(t, rr).Message)
		})
	}
	assert.Zero(t, f.notifications.CreateCalls())
}

func TestDeleteTask(t *testing.T) {
	f := newAPIFixture(t)
	task := testutils.MustCreateTask(context.Background(), t, f.tasks, f.alice.ID)
	path := "/api/v1/tasks/" + task.ID.String()

	rr := f.do(t, http.MethodDelete, path, f.bob.ID, nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	deleted := f.publisher.Global(events.TaskDeleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, events.TaskDeletedPayload{ID: task.ID}, deleted[0].Payload)

	rr = f.do(t, http.MethodDelete, path, f.bob.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, f.publisher.Global(events.TaskDeleted), 1)
}

func TestListTasks(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	now := time.Now()

	mine := testutils.MustCreateTask(ctx, t, f.tasks, f.alice.ID,
		testutils.WithTaskDueDate(now.Add(72*time.Hour)), testutils.WithTaskPriority(domain.PriorityLow))
	assigned := testutils.MustCreateTask(ctx, t, f.tasks, f.bob.ID,
		testutils.WithTaskAssignee(f.alice.ID), testutils.WithTaskDueDate(now.Add(24*time.Hour)))
	other := testutils.MustCreateTask(ctx, t, f.tasks, f.bob.ID,
		testutils.WithTaskDueDate(now.Add(48*time.Hour)))

	ids := func(tasks []domain.Task) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	tests := []struct {
		name    string
		query   string
		status  int
		want    []uuid.UUID
		ordered bool
	}{
		{"all", "", http.StatusOK, []uuid.UUID{mine.ID, assigned.ID, other.ID}, false},
		{"mine", "?scope=mine", http.StatusOK, []uuid.UUID{mine.ID, assigned.ID}, false},
		{"due ascending", "?sortByDueDate=asc", http.StatusOK, []uuid.UUID{assigned.ID, other.ID, mine.ID}, true},
		{"due descending", "?sortByDueDate=DESC", http.StatusOK, []uuid.UUID{mine.ID, other.ID, assigned.ID}, true},
		{"priority filter", "?priority=LOW", http.StatusOK, []uuid.UUID{mine.ID}, false},
		{"bad scope", "?scope=team", http.StatusBadRequest, nil, false},
		{"bad sort", "?sortByDueDate=sideways", http.StatusBadRequest, nil, false},
		{"bad status", "?status=DONE", http.StatusBadRequest, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := f.do(t, http.MethodGet, "/api/v1/tasks"+tt.query, f.alice.ID, nil)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var got []domain.Task
			decodeData(t, rr, &got)
			if tt.ordered {
				assert.Equal(t, tt.want, ids(got))
			} else {
				assert.ElementsMatch(t, tt.want, ids(got))
			}
		})
	}
}

func TestListOverdue(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	now := time.Now()

	late := testutils.MustCreateTask(ctx, t, f.tasks, f.bob.ID,
		testutils.WithTaskAssignee(f.alice.ID), testutils.WithTaskDueDate(now.Add(-2*time.Hour)))
	testutils.MustCreateTask(ctx, t, f.tasks, f.bob.ID,
		testutils.WithTaskAssignee(f.alice.ID), testutils.WithTaskDueDate(now.Add(-time.Hour)),
		testutils.WithTaskStatus(domain.StatusCompleted))
	testutils.MustCreateTask(ctx, t, f.tasks, f.bob.ID,
		testutils.WithTaskAssignee(f.alice.ID), testutils.WithTaskDueDate(now.Add(time.Hour)))

	rr := f.do(t, http.MethodGet, "/api/v1/tasks/overdue", f.alice.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got []domain.Task
	decodeData(t, rr, &got)
	require.Len(t, got, 1)
	assert.Equal(t, late.ID, got[0].ID)
}

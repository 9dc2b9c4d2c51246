package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Abhi005shek/TaskManager/internal/api/middleware"
	"github.com/Abhi005shek/TaskManager/internal/api/shared"
	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/mocks"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/Abhi005shek/TaskManager/internal/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// apiFixture wires real services over in-memory stores behind the same
// routes the server mounts.
type apiFixture struct {
	tasks         *mocks.MockTaskStore
	users         *mocks.MockUserStore
	notifications *mocks.MockNotificationStore
	publisher     *mocks.MockPublisher
	router        chi.Router

	alice, bob, carol *domain.User
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()

	f := &apiFixture{
		tasks:     mocks.NewMockTaskStore(),
		users:     mocks.NewMockUserStore(),
		publisher: mocks.NewMockPublisher(),
	}
	f.notifications = mocks.NewMockNotificationStore(f.tasks)
	f.alice = testutils.MustCreateUser(ctx, t, f.users, "alice")
	f.bob = testutils.MustCreateUser(ctx, t, f.users, "bob")
	f.carol = testutils.MustCreateUser(ctx, t, f.users, "carol")

	log, _ := testutils.NewTestLogger()
	notifier := service.NewAssignmentNotifier(f.notifications, f.publisher, log)
	taskService, err := service.NewTaskService(f.tasks, f.users, notifier, f.publisher, log)
	require.NoError(t, err)

	jwtService, err := testutils.CreateTestJWTService()
	require.NoError(t, err)

	taskHandler := NewTaskHandler(taskService, log)
	notificationHandler := NewNotificationHandler(service.NewNotificationService(f.notifications, log), log)
	userHandler := NewUserHandler(service.NewUserService(f.users, log), log)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(log))
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(jwtService).Authenticate)

		r.Post("/tasks", taskHandler.CreateTask)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Get("/tasks/overdue", taskHandler.ListOverdue)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Patch("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)

		r.Get("/notifications", notificationHandler.ListUnread)
		r.Patch("/notifications/{id}/read", notificationHandler.MarkRead)
		r.Post("/notifications/mark-all-read", notificationHandler.MarkAllRead)

		r.Get("/users", userHandler.ListUsers)
		r.Get("/users/me", userHandler.GetMe)
		r.Patch("/users/me", userHandler.UpdateMe)
	})
	f.router = r
	return f
}

// do sends a request as userID; uuid.Nil sends it unauthenticated.
func (f *apiFixture) do(t *testing.T, method, path string, userID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		header, err := testutils.GenerateAuthHeader(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", header)
	}

	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the success envelope into out.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope), rr.Body.String())
	require.Equal(t, shared.StatusSuccess, envelope.Status)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}

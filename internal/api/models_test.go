package api

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/api/shared"
	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUUID(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		json      string
		wantSet   bool
		wantValid bool
		wantErr   bool
	}{
		{"absent", `{}`, false, false, false},
		{"null", `{"assignedToId":null}`, true, false, false},
		{"empty string", `{"assignedToId":""}`, true, false, false},
		{"uuid", `{"assignedToId":"` + id.String() + `"}`, true, true, false},
		{"not a uuid", `{"assignedToId":"bob"}`, true, false, true},
		{"number", `{"assignedToId":7}`, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				AssignedToID NullableUUID `json:"assignedToId"`
			}
			err := json.Unmarshal([]byte(tt.json), &req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errInvalidAssignee))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, req.AssignedToID.Set)
			assert.Equal(t, tt.wantValid, req.AssignedToID.Valid)
			if tt.wantValid {
				require.NotNil(t, req.AssignedToID.Ptr())
				assert.Equal(t, id, *req.AssignedToID.Ptr())
			} else {
				assert.Nil(t, req.AssignedToID.Ptr())
			}
		})
	}
}

func TestUpdateTaskRequest_ToPatch(t *testing.T) {
	t.Run("only present fields are set", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"title":"New","priority":"URGENT"}`), &req))
		require.NoError(t, shared.ValidateRequest(req))

		patch, err := req.ToPatch()
		require.NoError(t, err)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "New", *patch.Title)
		require.NotNil(t, patch.Priority)
		assert.Equal(t, domain.PriorityUrgent, *patch.Priority)
		assert.Nil(t, patch.Status)
		assert.Nil(t, patch.DueDate)
		assert.False(t, patch.AssignedTo.Set)
	})

	t.Run("null assignee unassigns", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"assignedToId":null}`), &req))

		patch, err := req.ToPatch()
		require.NoError(t, err)
		assert.True(t, patch.AssignedTo.Set)
		assert.Nil(t, patch.AssignedTo.ID)
		assert.False(t, patch.IsEmpty())
	})

	t.Run("due date is parsed", func(t *testing.T) {
		var req UpdateTaskRequest
		require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2030-05-01T09:30:00.250+02:00"}`), &req))

		patch, err := req.ToPatch()
		require.NoError(t, err)
		require.NotNil(t, patch.DueDate)
		assert.Equal(t, time.Date(2030, 5, 1, 7, 30, 0, 250_000_000, time.UTC), *patch.DueDate)
	})
}

func TestCreateTaskRequest_Validation(t *testing.T) {
	valid := CreateTaskRequest{
		Title:       "Ship report",
		Description: "Quarterly numbers",
		DueDate:     "2030-01-01T00:00:00Z",
		Priority:    "HIGH",
	}

	tests := []struct {
		name    string
		mutate  func(r *CreateTaskRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateTaskRequest) {}, false},
		{"valid with status", func(r *CreateTaskRequest) { r.Status = "REVIEW" }, false},
		{"lowercase priority", func(r *CreateTaskRequest) { r.Priority = "high" }, true},
		{"missing priority", func(r *CreateTaskRequest) { r.Priority = "" }, true},
		{"bad due date", func(r *CreateTaskRequest) { r.DueDate = "01/02/2030" }, true},
		{"title of 100 runes", func(r *CreateTaskRequest) { r.Title = strings.Repeat("é", 100) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := shared.ValidateRequest(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTaskListQuery(t *testing.T) {
	q := parseTaskListQuery(url.Values{
		"status":        {"TODO"},
		"priority":      {"HIGH"},
		"sortByDueDate": {"ASC"},
		"scope":         {"mine"},
	})

	assert.Equal(t, service.ScopeMine, q.Scope)
	assert.Equal(t, domain.StatusTodo, q.Filter.Status)
	assert.Equal(t, domain.PriorityHigh, q.Filter.Priority)
	assert.Equal(t, domain.SortAsc, q.Filter.SortByDueDate)

	assert.Equal(t, service.ScopeAll, parseTaskListQuery(url.Values{}).Scope)
}

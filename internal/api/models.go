package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/Abhi005shek/TaskManager/internal/service"
	"github.com/google/uuid"
)

var (
	errInvalidDueDate  = fmt.Errorf("%w: dueDate must be an ISO 8601 datetime", domain.ErrValidation)
	errInvalidAssignee = fmt.Errorf("%w: assignedToId must be a UUID", domain.ErrValidation)
)

// NullableUUID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field was present; Valid is false for null or "".
type NullableUUID struct {
	Set   bool
	Valid bool
	UUID  uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Valid = false
	n.UUID = uuid.Nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errInvalidAssignee
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return errInvalidAssignee
	}
	n.Valid = true
	n.UUID = id
	return nil
}

// Ptr returns the id, or nil when absent or null.
func (n NullableUUID) Ptr() *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

// CreateTaskRequest defines the payload for the create task endpoint.
type CreateTaskRequest struct {
	Title        string       `json:"title"        validate:"required,max=100"`
	Description  string       `json:"description"  validate:"required"`
	DueDate      string       `json:"dueDate"      validate:"required"`
	Priority     string       `json:"priority"     validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	Status       string       `json:"status"       validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW COMPLETED"`
	AssignedToID NullableUUID `json:"assignedToId"`
}

// Validate checks the fields struct tags cannot express.
func (r CreateTaskRequest) Validate() error {
	_, err := parseDueDate(r.DueDate)
	return err
}

// ToInput converts the request into service input.
func (r CreateTaskRequest) ToInput() (service.CreateTaskInput, error) {
	due, err := parseDueDate(r.DueDate)
	if err != nil {
		return service.CreateTaskInput{}, err
	}
	return service.CreateTaskInput{
		Title:        r.Title,
		Description:  r.Description,
		DueDate:      due,
		Priority:     domain.Priority(r.Priority),
		Status:       domain.Status(r.Status),
		AssignedToID: r.AssignedToID.Ptr(),
	}, nil
}

// UpdateTaskRequest defines the payload for the update task endpoint.
// Omitted fields are left unchanged; assignedToId null unassigns.
type UpdateTaskRequest struct {
	Title        *string      `json:"title"        validate:"omitempty,max=100"`
	Description  *string      `json:"description"`
	DueDate      *string      `json:"dueDate"`
	Priority     *string      `json:"priority"     validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status       *string      `json:"status"       validate:"omitempty,oneof=TODO IN_PROGRESS REVIEW COMPLETED"`
	AssignedToID NullableUUID `json:"assignedToId"`
}

// Validate checks the fields struct tags cannot express.
func (r UpdateTaskRequest) Validate() error {
	if r.DueDate == nil {
		return nil
	}
	_, err := parseDueDate(*r.DueDate)
	return err
}

// ToPatch converts the request into a task patch.
func (r UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		AssignedTo: domain.AssigneeUpdate{
			Set: r.AssignedToID.Set,
			ID:  r.AssignedToID.Ptr(),
		},
	}
	if r.DueDate != nil {
		due, err := parseDueDate(*r.DueDate)
		if err != nil {
			return domain.TaskPatch{}, err
		}
		patch.DueDate = &due
	}
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		patch.Priority = &p
	}
	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}
	return patch, nil
}

// TaskListQuery holds the query parameters of the task listing.
type TaskListQuery struct {
	Scope  service.TaskScope
	Filter domain.TaskFilter
}

// parseTaskListQuery reads status, priority, sortByDueDate and scope.
// Values are checked by the service.
func parseTaskListQuery(q url.Values) TaskListQuery {
	scope := service.TaskScope(q.Get("scope"))
	if scope == "" {
		scope = service.ScopeAll
	}
	return TaskListQuery{
		Scope: scope,
		Filter: domain.TaskFilter{
			Status:        domain.Status(q.Get("status")),
			Priority:      domain.Priority(q.Get("priority")),
			SortByDueDate: domain.SortOrder(strings.ToLower(q.Get("sortByDueDate"))),
		},
	}
}

// UpdateMeRequest defines the payload for renaming the current user.
type UpdateMeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UpdateMeResponse echoes the renamed user.
type UpdateMeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// parseDueDate accepts RFC 3339 timestamps, with or without fractional
// seconds, and bare dates interpreted as midnight UTC.
func parseDueDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.ErrEmptyDueDate
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errInvalidDueDate
}

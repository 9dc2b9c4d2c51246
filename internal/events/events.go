package events

import (
	"encoding/json"
	"fmt"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

// Server to client events.
const (
	// TaskCreated carries the created domain.Task to every connection.
	TaskCreated = "task:created"
	// TaskUpdated carries the updated domain.Task to every connection.
	TaskUpdated = "task:updated"
	// TaskDeleted carries a TaskDeletedPayload to every connection.
	TaskDeleted = "task:deleted"
	// TaskAssigned carries a TaskAssignedPayload to the assignee's room.
	TaskAssigned = "task:assigned"
	// NewNotification carries the persisted domain.Notification to the
	// recipient's room.
	NewNotification = "newNotification"
	// Error reports a rejected client message to its sender.
	Error = "error"
)

// Client to server events.
const (
	// JoinUserRoom asks to join the room named by its string payload.
	JoinUserRoom = "joinUserRoom"
)

// Envelope is the frame written to and read from a realtime connection.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope serializes payload into an envelope for event.
func NewEnvelope(event string, payload any) (*Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return &Envelope{Event: event, Data: data}, nil
}

// UnmarshalData decodes the envelope data into v.
func (e *Envelope) UnmarshalData(v any) error {
	return json.Unmarshal(e.Data, v)
}

// TaskAssignedPayload announces an assignment to the new assignee.
type TaskAssignedPayload struct {
	TaskID       uuid.UUID             `json:"taskId"`
	Title        string                `json:"title"`
	AssignedToID uuid.UUID             `json:"assignedToId"`
	CreatorID    uuid.UUID             `json:"creatorId"`
	Type         domain.AssignmentKind `json:"type"`
}

// NewTaskAssignedPayload builds the payload for task assigned to assignee.
func NewTaskAssignedPayload(
	task *domain.Task,
	assignee uuid.UUID,
	kind domain.AssignmentKind,
) TaskAssignedPayload {
	return TaskAssignedPayload{
		TaskID:       task.ID,
		Title:        task.Title,
		AssignedToID: assignee,
		CreatorID:    task.CreatorID,
		Type:         kind,
	}
}

// TaskDeletedPayload identifies a deleted task.
type TaskDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// ErrorPayload explains why a client message was rejected.
type ErrorPayload struct {
	Message string `json:"message"`
}

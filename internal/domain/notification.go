package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// assignmentMessagePrefix starts every assignment notification message.
const assignmentMessagePrefix = "You have been assigned to task: "

// AssignmentMessage composes the notification text for an assignment.
func AssignmentMessage(taskTitle string) string {
	return assignmentMessagePrefix + taskTitle
}

// Notification tells a user that something happened to a task. Only Read
// ever changes after creation, and only from false to true.
type Notification struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	TaskID    uuid.UUID    `json:"taskId"`
	Message   string       `json:"message"`
	Read      bool         `json:"read"`
	CreatedAt time.Time    `json:"createdAt"`
	Task      *TaskSummary `json:"task,omitempty"`
}

// NewNotification creates an unread notification for userID about taskID.
func NewNotification(userID, taskID uuid.UUID, message string) (*Notification, error) {
	n := &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TaskID:    taskID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks if the Notification has valid data.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrInvalidID
	}
	if n.UserID == uuid.Nil {
		return ErrEmptyUserID
	}
	if n.TaskID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if strings.TrimSpace(n.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

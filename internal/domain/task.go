package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLength is the longest title a task may carry, in characters.
const MaxTitleLength = 100

// Priority ranks how urgent a task is.
type Priority string

// Task priorities.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Status is the lifecycle state of a task.
type Status string

// Task statuses.
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work created by one user and optionally assigned to another.
// CreatorID never changes after creation.
type Task struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DueDate      time.Time  `json:"dueDate"`
	Priority     Priority   `json:"priority"`
	Status       Status     `json:"status"`
	CreatorID    uuid.UUID  `json:"creatorId"`
	AssignedToID *uuid.UUID `json:"assignedToId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// NewTask builds a validated task owned by creatorID. An empty status
// defaults to TODO.
func NewTask(
	creatorID uuid.UUID,
	title, description string,
	dueDate time.Time,
	priority Priority,
	status Status,
	assignedToID *uuid.UUID,
) (*Task, error) {
	if status == "" {
		status = StatusTodo
	}

	now := time.Now().UTC()
	task := &Task{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		DueDate:      dueDate.UTC(),
		Priority:     priority,
		Status:       status,
		CreatorID:    creatorID,
		AssignedToID: normalizeAssignee(assignedToID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrInvalidID
	}
	if t.CreatorID == uuid.Nil {
		return ErrEmptyCreatorID
	}
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !t.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// IsOverdue reports whether the task is past due and not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != StatusCompleted && t.DueDate.Before(now)
}

// Summary returns the task fields embedded in notification listings.
func (t *Task) Summary() *TaskSummary {
	return &TaskSummary{
		ID:       t.ID,
		Title:    t.Title,
		Status:   t.Status,
		Priority: t.Priority,
		DueDate:  t.DueDate,
	}
}

// TaskSummary is the subset of a task shown alongside a notification.
type TaskSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Status   Status    `json:"status"`
	Priority Priority  `json:"priority"`
	DueDate  time.Time `json:"dueDate"`
}

// AssigneeUpdate describes what a patch does to the assignee.
// Set=false leaves it unchanged; Set=true with a nil ID unassigns.
type AssigneeUpdate struct {
	Set bool
	ID  *uuid.UUID
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *Priority
	Status      *Status
	AssignedTo  AssigneeUpdate
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Status == nil && !p.AssignedTo.Set
}

// Validate checks the fields the patch sets.
func (p TaskPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrEmptyDescription
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return ErrInvalidPriority
	}
	if p.Status != nil && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Apply returns a copy of t with the patch applied. UpdatedAt is not touched.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate.UTC()
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.AssignedTo.Set {
		t.AssignedToID = normalizeAssignee(p.AssignedTo.ID)
	}
	return t
}

// SortOrder orders task listings by due date.
type SortOrder string

// Due date sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is empty or a known order.
func (o SortOrder) Valid() bool {
	return o == "" || o == SortAsc || o == SortDesc
}

// TaskFilter narrows a task listing. Zero values mean no filter; without a
// due date sort, listings are newest first.
type TaskFilter struct {
	Status        Status
	Priority      Priority
	SortByDueDate SortOrder
}

// Validate checks the filter values.
func (f TaskFilter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return ErrInvalidStatus
	}
	if f.Priority != "" && !f.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !f.SortByDueDate.Valid() {
		return fmtValidation("sortByDueDate must be asc or desc")
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func normalizeAssignee(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

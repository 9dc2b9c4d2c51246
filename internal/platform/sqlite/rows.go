package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

const taskColumns = `id, title, description, due_date, priority, status,
	creator_id, assigned_to_id, created_at, updated_at`

type taskRow struct {
	ID           uuid.UUID     `db:"id"`
	Title        string        `db:"title"`
	Description  string        `db:"description"`
	DueDate      time.Time     `db:"due_date"`
	Priority     string        `db:"priority"`
	Status       string        `db:"status"`
	CreatorID    uuid.UUID     `db:"creator_id"`
	AssignedToID uuid.NullUUID `db:"assigned_to_id"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

func (r taskRow) toDomain() domain.Task {
	task := domain.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate.UTC(),
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
		CreatorID:   r.CreatorID,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
	if r.AssignedToID.Valid {
		id := r.AssignedToID.UUID
		task.AssignedToID = &id
	}
	return task
}

type notificationRow struct {
	ID           uuid.UUID      `db:"id"`
	UserID       uuid.UUID      `db:"user_id"`
	TaskID       uuid.UUID      `db:"task_id"`
	Message      string         `db:"message"`
	Read         bool           `db:"read"`
	CreatedAt    time.Time      `db:"created_at"`
	TaskRef      uuid.NullUUID  `db:"task_ref"`
	TaskTitle    sql.NullString `db:"task_title"`
	TaskStatus   sql.NullString `db:"task_status"`
	TaskPriority sql.NullString `db:"task_priority"`
	TaskDueDate  sql.NullTime   `db:"task_due_date"`
}

func (r notificationRow) toDomain() domain.Notification {
	n := domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		TaskID:    r.TaskID,
		Message:   r.Message,
		Read:      r.Read,
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.TaskRef.Valid {
		n.Task = &domain.TaskSummary{
			ID:       r.TaskRef.UUID,
			Title:    r.TaskTitle.String,
			Status:   domain.Status(r.TaskStatus.String),
			Priority: domain.Priority(r.TaskPriority.String),
			DueDate:  r.TaskDueDate.Time.UTC(),
		}
	}
	return n
}

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{ID: r.ID, Name: r.Name, Email: r.Email, CreatedAt: r.CreatedAt.UTC()}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil || *id == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// taskListQuery builds a task listing for filter. A non-nil userID restricts
// it to tasks the user created or is assigned to.
func taskListQuery(filter domain.TaskFilter, userID *uuid.UUID) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if userID != nil {
		conditions = append(conditions, "(creator_id = ? OR assigned_to_id = ?)")
		args = append(args, *userID, *userID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(filter.Priority))
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.SortByDueDate {
	case domain.SortAsc:
		query += " ORDER BY due_date ASC"
	case domain.SortDesc:
		query += " ORDER BY due_date DESC"
	default:
		query += " ORDER BY created_at DESC"
	}
	return query, args
}

// taskUpdateQuery builds an UPDATE for the fields the patch sets.
func taskUpdateQuery(id uuid.UUID, patch domain.TaskPatch, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)

	set := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		set("due_date", patch.DueDate.UTC())
	}
	if patch.Priority != nil {
		set("priority", string(*patch.Priority))
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.AssignedTo.Set {
		set("assigned_to_id", nullUUID(patch.AssignedTo.ID))
	}
	set("updated_at", now)

	args = append(args, id)
	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	return query, args
}

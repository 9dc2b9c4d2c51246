package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abhi005shek/TaskManager/internal/domain"
	"github.com/google/uuid"
)

const taskColumns = `id, title, description, due_date, priority, status,
	creator_id, assigned_to_id, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		priority string
		status   string
		assignee uuid.NullUUID
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&priority,
		&status,
		&task.CreatorID,
		&assignee,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Status = domain.Status(status)
	if assignee.Valid {
		id := assignee.UUID
		task.AssignedToID = &id
	}
	task.DueDate = task.DueDate.UTC()
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

// args accumulates positional parameters and hands out $n placeholders.
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

// taskListQuery builds a task listing for filter. A non-nil userID restricts
// it to tasks the user created or is assigned to.
func taskListQuery(filter domain.TaskFilter, userID *uuid.UUID) (string, []any) {
	var (
		params     args
		conditions []string
	)

	if userID != nil {
		p := params.add(*userID)
		conditions = append(conditions, fmt.Sprintf("(creator_id = %s OR assigned_to_id = %s)", p, p))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+params.add(string(filter.Status)))
	}
	if filter.Priority != "" {
		conditions = append(conditions, "priority = "+params.add(string(filter.Priority)))
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + taskOrder(filter.SortByDueDate)

	return query, params
}

func taskOrder(sort domain.SortOrder) string {
	switch sort {
	case domain.SortAsc:
		return "due_date ASC"
	case domain.SortDesc:
		return "due_date DESC"
	default:
		return "created_at DESC"
	}
}

// taskUpdateQuery builds an UPDATE ... RETURNING for the fields the patch sets.
func taskUpdateQuery(id uuid.UUID, patch domain.TaskPatch, now time.Time) (string, []any) {
	var (
		params args
		sets   []string
	)

	if patch.Title != nil {
		sets = append(sets, "title = "+params.add(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+params.add(*patch.Description))
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = "+params.add(patch.DueDate.UTC()))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = "+params.add(string(*patch.Priority)))
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+params.add(string(*patch.Status)))
	}
	if patch.AssignedTo.Set {
		sets = append(sets, "assigned_to_id = "+params.add(nullUUID(patch.AssignedTo.ID)))
	}
	sets = append(sets, "updated_at = "+params.add(now))

	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = %s RETURNING %s",
		strings.Join(sets, ", "),
		params.add(id),
		taskColumns,
	)
	return query, params
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil || *id == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

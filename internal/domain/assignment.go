package domain

import "github.com/google/uuid"

// AssignmentKind tags a task:assigned event.
type AssignmentKind string

// Assignment kinds.
const (
	AssignmentAssigned   AssignmentKind = "assigned"
	AssignmentReassigned AssignmentKind = "reassigned"
)

// CreationRecipient returns the user to notify after task was created, or
// false when the task is unassigned or assigned to its creator.
func CreationRecipient(task *Task) (uuid.UUID, bool) {
	if task == nil || task.AssignedToID == nil {
		return uuid.Nil, false
	}
	if *task.AssignedToID == task.CreatorID {
		return uuid.Nil, false
	}
	return *task.AssignedToID, true
}

// UpdateRecipient returns the user to notify when patch is applied to
// previous by actorID. Only an explicit new assignee that differs from the
// previous one and from the actor qualifies; unassigning never notifies.
func UpdateRecipient(previous *Task, patch TaskPatch, actorID uuid.UUID) (uuid.UUID, bool) {
	if previous == nil || !patch.AssignedTo.Set || patch.AssignedTo.ID == nil {
		return uuid.Nil, false
	}

	next := *patch.AssignedTo.ID
	if next == uuid.Nil || next == actorID {
		return uuid.Nil, false
	}
	if previous.AssignedToID != nil && *previous.AssignedToID == next {
		return uuid.Nil, false
	}
	return next, true
}

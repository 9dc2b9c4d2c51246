package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreationRecipient(t *testing.T) {
	creator := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		assignee *uuid.UUID
		want     uuid.UUID
		notify   bool
	}{
		{"unassigned", nil, uuid.Nil, false},
		{"assigned to creator", &creator, uuid.Nil, false},
		{"assigned to someone else", &other, other, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CreationRecipient(&Task{CreatorID: creator, AssignedToID: tt.assignee})
			assert.Equal(t, tt.notify, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateRecipient(t *testing.T) {
	actor := uuid.New()
	previousAssignee := uuid.New()
	next := uuid.New()

	set := func(id uuid.UUID) TaskPatch {
		return TaskPatch{AssignedTo: AssigneeUpdate{Set: true, ID: &id}}
	}
	title := "renamed"

	tests := []struct {
		name     string
		previous *uuid.UUID
		patch    TaskPatch
		want     uuid.UUID
		notify   bool
	}{
		{"assignee absent from patch", &previousAssignee, TaskPatch{Title: &title}, uuid.Nil, false},
		{"unassign", &previousAssignee, TaskPatch{AssignedTo: AssigneeUpdate{Set: true}}, uuid.Nil, false},
		{"same assignee", &previousAssignee, set(previousAssignee), uuid.Nil, false},
		{"self assignment", &previousAssignee, set(actor), uuid.Nil, false},
		{"reassignment", &previousAssignee, set(next), next, true},
		{"first assignment", nil, set(next), next, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := &Task{CreatorID: actor, AssignedToID: tt.previous}
			got, ok := UpdateRecipient(previous, tt.patch, actor)
			assert.Equal(t, tt.notify, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

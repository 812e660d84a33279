package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada king lovelace", "AL"},
		{"Plato", "P"},
		{"  Grace   Hopper  ", "GH"},
		{"", ""},
		{"   ", ""},
		{"émile zola", "ÉZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, User{Name: tt.name}.Initials())
		})
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		task   Task
		expect bool
	}{
		{"past due and open", Task{Status: TaskInProgress, DueDate: yesterday}, true},
		{"past due but completed", Task{Status: TaskCompleted, DueDate: yesterday.AddDate(-1, 0, 0)}, false},
		{"past due and cancelled", Task{Status: TaskCancelled, DueDate: yesterday}, true},
		{"due in future", Task{Status: TaskToDo, DueDate: tomorrow}, false},
		{"due exactly now", Task{Status: TaskToDo, DueDate: now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.task.IsOverdue(now))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, ProjectStatus("On Hold").Valid())
	assert.False(t, ProjectStatus("Bogus").Valid())
	assert.False(t, ProjectStatus("planning").Valid())

	assert.True(t, TaskStatus("In Review").Valid())
	assert.False(t, TaskStatus("done").Valid())

	assert.True(t, TaskPriority("Urgent").Valid())
	assert.False(t, TaskPriority("urgent").Valid())

	assert.True(t, MemberRole("Viewer").Valid())
	assert.False(t, MemberRole("Guest").Valid())
}

func TestBeforeCreateAssignsID(t *testing.T) {
	var p Project
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Len(t, p.ID, 36)

	p2 := Project{BaseModel: BaseModel{ID: "fixed"}}
	assert.NoError(t, p2.BeforeCreate(nil))
	assert.Equal(t, "fixed", p2.ID)
}

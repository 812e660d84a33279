package types

import (
	"encoding/json"
	"time"
)

type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

type ProjectTasksSummary struct {
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

type ProjectResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	DueDate     *string             `json:"due_date"`
	OwnerID     string              `json:"owner_id"`
	Tasks       ProjectTasksSummary `json:"tasks"`
	Members     []string            `json:"members"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type TaskProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskAssigneeRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

type TaskResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Status    string           `json:"status"`
	Priority  string           `json:"priority"`
	DueDate   *string          `json:"due_date"`
	Overdue   bool             `json:"overdue"`
	Project   TaskProjectRef   `json:"project"`
	Assignee  *TaskAssigneeRef `json:"assignee"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type MemberResponse struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"project_id"`
	UserID    string       `json:"user_id"`
	Role      string       `json:"role"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type AssignmentResponse struct {
	ID         string       `json:"id"`
	TaskID     string       `json:"task_id"`
	UserID     string       `json:"user_id"`
	AssignedBy string       `json:"assigned_by"`
	AssignedAt time.Time    `json:"assigned_at"`
	User       UserResponse `json:"user"`
	Assigner   UserResponse `json:"assigner"`
}

type ActivityResponse struct {
	ID           string          `json:"id"`
	ActivityType string          `json:"activity_type"`
	Description  string          `json:"description"`
	TaskID       *string         `json:"task_id"`
	ProjectID    string          `json:"project_id"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	User         *UserResponse   `json:"user"`
	CreatedAt    time.Time       `json:"created_at"`
}

package models

import "time"

type Task struct {
	BaseModel

	Title      string       `gorm:"size:255;not null"`
	Status     TaskStatus   `gorm:"size:32;not null;default:'To Do';index"`
	Priority   TaskPriority `gorm:"size:16;not null;default:Medium"`
	DueDate    time.Time    `gorm:"type:date;not null;index"`
	ProjectID  string       `gorm:"type:uuid;not null;index"`
	AssigneeID string       `gorm:"type:uuid;not null;index"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Assignee User    `gorm:"foreignKey:AssigneeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsOverdue reports whether the task's due date has passed and it is not
// completed. Cancelled tasks still count.
func (t Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskCompleted && t.DueDate.Before(now)
}

// TaskAssignment records an additional assignee beyond the task's primary one.
type TaskAssignment struct {
	BaseModel

	TaskID     string `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignment"`
	UserID     string `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignment;index"`
	AssignedBy string `gorm:"type:uuid;not null;index"`

	// Relationships
	Task     Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User     User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Assigner User `gorm:"foreignKey:AssignedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

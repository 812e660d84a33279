package models

import "gorm.io/datatypes"

// ActivityLog is append-only. TaskID is empty for project-level events and
// for task deletions, which must outlive the task row.
type ActivityLog struct {
	BaseModel

	UserID       string         `gorm:"type:uuid;not null;index"`
	ActivityType string         `gorm:"size:64;not null"`
	Description  string         `gorm:"type:text"`
	TaskID       *string        `gorm:"type:uuid;index"`
	ProjectID    string         `gorm:"type:uuid;not null;index"`
	Metadata     datatypes.JSON // e.g. {"from": "To Do", "to": "Completed"}

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Task    *Task   `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}

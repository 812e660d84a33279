package models

// ProjectMember grants a user a role in a project. A user holds at most one
// membership per project.
type ProjectMember struct {
	BaseModel

	ProjectID string     `gorm:"type:uuid;not null;uniqueIndex:idx_project_member"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex:idx_project_member;index"`
	Role      MemberRole `gorm:"size:16;not null;default:Member"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

package models

import "time"

type Project struct {
	BaseModel

	Name        string        `gorm:"size:255;not null"`
	Description string        `gorm:"type:text"`
	Status      ProjectStatus `gorm:"size:32;not null;default:Planning;index"`
	DueDate     time.Time     `gorm:"type:date;not null"`
	OwnerID     string        `gorm:"type:uuid;not null;index"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

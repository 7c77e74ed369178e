package models

import "time"

// Role represents user roles with numeric primary key
type Role struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:30;uniqueIndex;not null" json:"name"`
	IsSuperadmin bool      `gorm:"default:false" json:"isSuperadmin"`
	CreatedBy    *uint     `json:"createdBy,omitempty"`
	UpdatedBy    *uint     `json:"updatedBy,omitempty"`
}

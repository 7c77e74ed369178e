package models

import "time"

// Menu is a navigation entry. ParentID self-references for nesting.
type Menu struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ParentID       *uint     `gorm:"index" json:"parentId"`
	Name           string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Icon           string    `gorm:"size:50;not null" json:"icon"`
	URL            string    `gorm:"size:50;not null;default:#" json:"url"`
	APIEndpoint    *string   `gorm:"size:50;uniqueIndex" json:"apiEndpoint"`
	APIDescription string    `gorm:"size:100" json:"apiDescription"`
	IsActive       bool      `gorm:"default:false;not null" json:"isActive"`
	CreatedBy      *uint     `json:"createdBy,omitempty"`
	UpdatedBy      *uint     `json:"updatedBy,omitempty"`
}

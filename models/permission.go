package models

import "time"

// Permission names an HTTP endpoint + method an account may call.
// URL and Method are unique together.
type Permission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"size:10;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:100" json:"description"`
	URL         string    `gorm:"size:100;not null;uniqueIndex:idx_endpoint_method" json:"url"`
	Method      string    `gorm:"size:10;not null;uniqueIndex:idx_endpoint_method" json:"method"`
	CreatedBy   *uint     `json:"createdBy,omitempty"`
	UpdatedBy   *uint     `json:"updatedBy,omitempty"`
}

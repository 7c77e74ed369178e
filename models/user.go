package models

import "time"

// User model. RefreshToken holds the single currently valid refresh
// token for the account, or NULL when no session is active; every
// sign-in and every rotation overwrites it, which is what revokes the
// previous session.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	RefreshToken *string   `gorm:"type:text" json:"-"`
	RoleID       *uint     `gorm:"index" json:"roleId"`
	Role         *Role     `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`
	CreatedBy    *uint     `json:"createdBy,omitempty"`
	UpdatedBy    *uint     `json:"updatedBy,omitempty"`
}

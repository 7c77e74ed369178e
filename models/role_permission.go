package models

import "time"

// RolePermission links a role to a permission on a menu. The link data
// is managed here; evaluating it on requests is a separate concern.
type RolePermission struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	RoleID       uint        `gorm:"not null;index;uniqueIndex:idx_role_perm_menu" json:"roleId"`
	PermissionID uint        `gorm:"not null;uniqueIndex:idx_role_perm_menu" json:"permissionId"`
	MenuID       uint        `gorm:"not null;uniqueIndex:idx_role_perm_menu" json:"menuId"`
	IsActive     bool        `gorm:"default:false" json:"isActive"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"-"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
	Menu         *Menu       `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	CreatedBy    *uint       `json:"createdBy,omitempty"`
	UpdatedBy    *uint       `json:"updatedBy,omitempty"`
}

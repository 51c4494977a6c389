// Package models contains domain entities and business models for the casino review platform
package models

import (
	"time"
)

// Well-known permission names. Unknown names resolve to "denied" at check
// time rather than an error, so this list is not exhaustive by design.
const (
	PermissionManageCasinos  = "casinos.manage"
	PermissionManageReports  = "reports.manage"
	PermissionManageHomepage = "homepage.manage"
	PermissionViewMonitoring = "monitoring.view"
	PermissionResolveAlerts  = "alerts.resolve"
)

// Permission is a named capability grantable to admin users.
type Permission struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:128;not null;uniqueIndex:uk_permissions_name" json:"name"`
	Category string `gorm:"size:64;not null;index:idx_permissions_category" json:"category"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

// AdminPermission is the assignment record between an admin user and a
// permission, carrying who granted it.
type AdminPermission struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	AdminUserID  uint        `gorm:"not null;index:idx_admin_permissions_admin;uniqueIndex:uk_admin_permissions_pair" json:"admin_user_id"`
	AdminUser    *AdminUser  `gorm:"foreignKey:AdminUserID;references:ID" json:"admin_user,omitempty"`
	PermissionID uint        `gorm:"not null;index:idx_admin_permissions_permission;uniqueIndex:uk_admin_permissions_pair" json:"permission_id"`
	Permission   *Permission `gorm:"foreignKey:PermissionID;references:ID" json:"permission,omitempty"`
	GrantedBy    *uint       `json:"granted_by,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (AdminPermission) TableName() string {
	return "admin_permissions"
}

// PermissionFilter represents filter criteria for permission queries
type PermissionFilter struct {
	ID       *uint
	Name     *string
	Category *string
}

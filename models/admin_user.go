// Package models contains domain entities and business models for the casino review platform
package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin role constants
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// AdminUser maps an auth-provider principal to an admin role. Rows are never
// hard-deleted; revoking access flips is_active instead.
type AdminUser struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UUID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_admin_users_uuid" json:"uuid"`
	UserID string    `gorm:"size:255;not null;uniqueIndex:uk_admin_users_user_id;index:idx_admin_users_user_id" json:"user_id"`
	Email  string    `gorm:"size:255;not null;index:idx_admin_users_email" json:"email"`
	Role   string    `gorm:"size:32;not null;index:idx_admin_users_role" json:"role"`

	IsActive   *bool      `gorm:"default:true;index:idx_admin_users_is_active" json:"is_active"`
	CreatedAt  time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastSeenAt *time.Time `gorm:"index:idx_admin_users_last_seen_at" json:"last_seen_at,omitempty"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// IsValidRole reports whether the given string is a known admin role
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// AdminUserFilter represents filter criteria for admin user queries
type AdminUserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *string
	Email         *string
	Role          *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

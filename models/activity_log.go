// Package models contains domain entities and business models for the casino review platform
package models

import (
	"encoding/json"
	"time"
)

// ActivityLog is an append-only record of one admin action. Entries are never
// updated or deleted in normal operation; created_at is server-assigned.
type ActivityLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	AdminUserID  uint            `gorm:"not null;index:idx_activity_admin_user_id" json:"admin_user_id"`
	AdminUser    *AdminUser      `gorm:"foreignKey:AdminUserID;references:ID" json:"admin_user,omitempty"`
	Action       string          `gorm:"size:128;not null;index:idx_activity_action" json:"action"`
	ResourceType *string         `gorm:"size:64;index:idx_activity_resource_type" json:"resource_type,omitempty"`
	ResourceID   *string         `gorm:"size:255" json:"resource_id,omitempty"`
	Details      json.RawMessage `gorm:"type:jsonb" json:"details,omitempty"`
	Severity     string          `gorm:"size:16;not null;default:info;index:idx_activity_severity" json:"severity"`
	SessionID    string          `gorm:"size:64;not null;index:idx_activity_session_id" json:"session_id"`
	IPAddress    *string         `gorm:"type:inet" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_activity_request_id" json:"request_id,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_activity_created_at" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}

// Activity severity constants
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Activity action constants
const (
	ActionCasinoCreated    = "casino_created"
	ActionCasinoUpdated    = "casino_updated"
	ActionCasinoDeleted    = "casino_deleted"
	ActionReportCreated    = "report_created"
	ActionReportUpdated    = "report_updated"
	ActionReportDeleted    = "report_deleted"
	ActionReportExported   = "report_exported"
	ActionHomepageUpdated  = "homepage_updated"
	ActionHomepageDeleted  = "homepage_deleted"
	ActionAlertResolved    = "alert_resolved"
	ActionPermissionDenied = "permission_denied"
)

// IsValidSeverity reports whether the given string is a known activity severity
func IsValidSeverity(s string) bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}

// ActivityLogFilter represents filter criteria for activity log queries
type ActivityLogFilter struct {
	ID            *uint
	AdminUserID   *uint
	Action        *string
	Severity      *string
	SessionID     *string
	ResourceType  *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *ActivityLog) IsSecurityEvent() bool {
	securityActions := map[string]bool{
		ActionPermissionDenied: true,
		ActionAlertResolved:    true,
		ActionReportDeleted:    true,
	}
	return securityActions[a.Action] || a.Severity == SeverityCritical
}

// Package models contains domain entities and business models for the casino review platform
package models

import (
	"encoding/json"
	"time"
)

// Alert severity constants, ordered low < medium < high < critical
const (
	AlertSeverityLow      = "low"
	AlertSeverityMedium   = "medium"
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

// Alert type constants
const (
	AlertTypeRepeatedPermissionDenials = "repeated_permission_denials"
	AlertTypeSuspiciousActivity        = "suspicious_activity"
	AlertTypeManualFlag                = "manual_flag"
)

// SecurityAlert is a flagged condition requiring human review. Alerts are
// never deleted; resolving one excludes it from the unresolved view while
// keeping it for history.
type SecurityAlert struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AlertType       string          `gorm:"size:64;not null;index:idx_security_alerts_type" json:"alert_type"`
	Severity        string          `gorm:"size:16;not null;index:idx_security_alerts_severity" json:"severity"`
	Message         string          `gorm:"type:text;not null" json:"message"`
	Details         json.RawMessage `gorm:"type:jsonb" json:"details,omitempty"`
	IsResolved      *bool           `gorm:"default:false;index:idx_security_alerts_is_resolved" json:"is_resolved"`
	ResolutionNotes *string         `gorm:"type:text" json:"resolution_notes,omitempty"`
	ResolvedBy      *uint           `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt       time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_security_alerts_created_at" json:"created_at"`
}

func (SecurityAlert) TableName() string {
	return "security_alerts"
}

// AlertSeverityRank orders severities for comparison; unknown values rank
// below low so they never count toward the actionable backlog.
func AlertSeverityRank(severity string) int {
	switch severity {
	case AlertSeverityLow:
		return 1
	case AlertSeverityMedium:
		return 2
	case AlertSeverityHigh:
		return 3
	case AlertSeverityCritical:
		return 4
	}
	return 0
}

// IsActionable reports whether the alert counts toward the dashboard's
// unresolved backlog (high and critical buckets only).
func (a *SecurityAlert) IsActionable() bool {
	return AlertSeverityRank(a.Severity) >= AlertSeverityRank(AlertSeverityHigh)
}

// SecurityAlertFilter represents filter criteria for security alert queries
type SecurityAlertFilter struct {
	ID            *uint
	AlertType     *string
	Severity      *string
	IsResolved    *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

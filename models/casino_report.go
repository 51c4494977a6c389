// Package models contains domain entities and business models for the casino review platform
package models

import (
	"time"
)

// Casino report status constants, a fixed enum
const (
	ReportStatusUnlicensed        = "Unlicensed"
	ReportStatusScamIndicated     = "Scam Indicated"
	ReportStatusManyUsersReported = "Many Users Reported"
)

// ValidReportStatuses lists the accepted status values in display order.
var ValidReportStatuses = []string{
	ReportStatusUnlicensed,
	ReportStatusScamIndicated,
	ReportStatusManyUsersReported,
}

// IsValidReportStatus reports whether the given string is an accepted status
func IsValidReportStatus(status string) bool {
	for _, s := range ValidReportStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CasinoReport is a user- or admin-submitted report against a casino.
type CasinoReport struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	CasinoID      *uint   `gorm:"index:idx_casino_reports_casino_id" json:"casino_id,omitempty"`
	Casino        *Casino `gorm:"foreignKey:CasinoID;references:ID" json:"casino,omitempty"`
	CasinoName    string  `gorm:"size:255;not null" json:"casino_name"`
	ReporterEmail *string `gorm:"size:255" json:"reporter_email,omitempty"`
	Status        string  `gorm:"size:32;not null;index:idx_casino_reports_status" json:"status"`
	Summary       string  `gorm:"size:512;not null" json:"summary"`
	Details       *string `gorm:"type:text" json:"details,omitempty"`
	CreatedBy     *uint   `gorm:"index:idx_casino_reports_created_by" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_casino_reports_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (CasinoReport) TableName() string {
	return "casino_reports"
}

// CasinoReportFilter represents filter criteria for casino report queries
type CasinoReportFilter struct {
	ID            *uint
	CasinoID      *uint
	Status        *string
	CreatedBy     *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

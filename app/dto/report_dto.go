package dto

import "time"

// CreateReportRequest is an admin- or user-submitted casino report. Status is
// validated against the fixed enum in the flow so the rejection can name the
// accepted values.
type CreateReportRequest struct {
	CasinoID      *uint  `json:"casino_id" validate:"omitempty,gt=0"`
	CasinoName    string `json:"casino_name" validate:"required,max=255"`
	ReporterEmail string `json:"reporter_email" validate:"omitempty,email"`
	Status        string `json:"status" validate:"required"`
	Summary       string `json:"summary" validate:"required,max=512"`
	Details       string `json:"details" validate:"omitempty,max=10000"`
}

// UpdateReportRequest carries the mutable report fields
type UpdateReportRequest struct {
	CasinoID   *uint   `json:"casino_id" validate:"omitempty,gt=0"`
	CasinoName *string `json:"casino_name" validate:"omitempty,max=255"`
	Status     *string `json:"status"`
	Summary    *string `json:"summary" validate:"omitempty,max=512"`
	Details    *string `json:"details" validate:"omitempty,max=10000"`
}

// ReportDTO is the API projection of a casino report
type ReportDTO struct {
	ID            uint      `json:"id"`
	CasinoID      *uint     `json:"casino_id,omitempty"`
	CasinoName    string    `json:"casino_name"`
	ReporterEmail string    `json:"reporter_email,omitempty"`
	Status        string    `json:"status"`
	Summary       string    `json:"summary"`
	Details       string    `json:"details,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListReportsResponse wraps the report listing
type ListReportsResponse struct {
	Reports []ReportDTO `json:"reports"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

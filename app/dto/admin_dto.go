package dto

import "time"

// AdminInfoDTO is the admin identity exposed to the dashboard
type AdminInfoDTO struct {
	IsAdmin          bool   `json:"is_admin"`
	UserID           string `json:"user_id,omitempty"`
	Email            string `json:"email,omitempty"`
	Role             string `json:"role,omitempty"`
	TotalPermissions int64  `json:"total_permissions"`
}

// ActionCountDTO is one aggregated action bucket
type ActionCountDTO struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// SecurityAlertDTO is the API projection of a security alert
type SecurityAlertDTO struct {
	ID              uint       `json:"id"`
	AlertType       string     `json:"alert_type"`
	Severity        string     `json:"severity"`
	Message         string     `json:"message"`
	Details         any        `json:"details,omitempty"`
	IsResolved      bool       `json:"is_resolved"`
	ResolutionNotes *string    `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ActivitySummaryResponse is the monitoring dashboard aggregate
type ActivitySummaryResponse struct {
	ActiveAdminsToday    int64              `json:"active_admins_today"`
	ActionsToday         int64              `json:"actions_today"`
	ActionsThisWeek      int64              `json:"actions_this_week"`
	TopActionsToday      []ActionCountDTO   `json:"top_actions_today"`
	UnresolvedAlerts     map[string]int64   `json:"unresolved_alerts"`
	UnresolvedActionable int64              `json:"unresolved_actionable"`
	RecentCriticalAlerts []SecurityAlertDTO `json:"recent_critical_alerts"`
}

// ListAlertsResponse wraps the alert listing
type ListAlertsResponse struct {
	Alerts []SecurityAlertDTO `json:"alerts"`
	Total  int64              `json:"total"`
}

// ResolveAlertRequest carries optional resolution notes
type ResolveAlertRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

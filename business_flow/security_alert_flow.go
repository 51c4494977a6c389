package businessflow

import (
	"context"
	"encoding/json"
	"log"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
)

// SecurityAlertFlow serves the alert review surface of the monitoring
// dashboard: newest-first listing and idempotent resolution.
type SecurityAlertFlow interface {
	// List returns alerts newest first, optionally restricted to unresolved.
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) (*dto.ListAlertsResponse, error)

	// Resolve marks an alert resolved. Resolving an already resolved alert
	// succeeds without touching the stored resolution.
	Resolve(ctx context.Context, alertID uint, resolvedBy *AdminInfo, notes string, metadata *ClientMetadata) error
}

// SecurityAlertFlowImpl implements SecurityAlertFlow
type SecurityAlertFlowImpl struct {
	alertRepo    repository.SecurityAlertRepository
	activityFlow ActivityFlow
}

// NewSecurityAlertFlow creates a new security alert flow. activityFlow may
// be nil; resolutions are then not audited.
func NewSecurityAlertFlow(
	alertRepo repository.SecurityAlertRepository,
	activityFlow ActivityFlow,
) SecurityAlertFlow {
	return &SecurityAlertFlowImpl{
		alertRepo:    alertRepo,
		activityFlow: activityFlow,
	}
}

// List returns alerts newest first.
func (f *SecurityAlertFlowImpl) List(ctx context.Context, unresolvedOnly bool, limit, offset int) (*dto.ListAlertsResponse, error) {
	if limit <= 0 || limit > utils.MaxPageSize {
		limit = utils.DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	alerts, err := f.alertRepo.List(ctx, unresolvedOnly, limit, offset)
	if err != nil {
		return nil, NewBusinessError("ALERT_LIST_FAILED", "Failed to list security alerts", ErrStorageUnavailable)
	}

	filter := models.SecurityAlertFilter{}
	if unresolvedOnly {
		filter.IsResolved = utils.ToPtr(false)
	}
	total, err := f.alertRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("ALERT_LIST_FAILED", "Failed to count security alerts", ErrStorageUnavailable)
	}

	resp := &dto.ListAlertsResponse{
		Alerts: make([]dto.SecurityAlertDTO, 0, len(alerts)),
		Total:  total,
	}
	for _, a := range alerts {
		resp.Alerts = append(resp.Alerts, ToSecurityAlertDTO(a))
	}
	return resp, nil
}

// Resolve marks an alert resolved. A second resolve of the same alert is a
// no-op success; the first resolver's notes and timestamp are kept.
func (f *SecurityAlertFlowImpl) Resolve(ctx context.Context, alertID uint, resolvedBy *AdminInfo, notes string, metadata *ClientMetadata) error {
	alert, err := f.alertRepo.ByID(ctx, alertID)
	if err != nil {
		return NewBusinessError("ALERT_LOOKUP_FAILED", "Failed to look up alert", ErrStorageUnavailable)
	}
	if alert == nil {
		return NewBusinessError("ALERT_NOT_FOUND", "Alert not found", ErrAlertNotFound)
	}
	if utils.IsTrue(alert.IsResolved) {
		return nil
	}

	var notesPtr *string
	if trimmed := utils.Sanitize(notes); trimmed != "" {
		notesPtr = &trimmed
	}
	var adminID uint
	if resolvedBy != nil {
		adminID = resolvedBy.AdminUserID
	}

	if err := f.alertRepo.Resolve(ctx, alertID, adminID, notesPtr, utils.UTCNow()); err != nil {
		return NewBusinessError("ALERT_RESOLVE_FAILED", "Failed to resolve alert", ErrStorageUnavailable)
	}

	if f.activityFlow != nil {
		f.activityFlow.Record(ctx, resolvedBy, ActivityEntry{
			Action:       models.ActionAlertResolved,
			ResourceType: "security_alert",
			ResourceID:   itoa(alertID),
			Details:      map[string]any{"alert_type": alert.AlertType, "severity": alert.Severity},
			Severity:     models.SeverityWarning,
			Metadata:     metadata,
		})
	}
	return nil
}

// ToSecurityAlertDTO projects an alert row into its API representation.
func ToSecurityAlertDTO(a *models.SecurityAlert) dto.SecurityAlertDTO {
	out := dto.SecurityAlertDTO{
		ID:              a.ID,
		AlertType:       a.AlertType,
		Severity:        a.Severity,
		Message:         a.Message,
		IsResolved:      utils.IsTrue(a.IsResolved),
		ResolutionNotes: a.ResolutionNotes,
		ResolvedAt:      a.ResolvedAt,
		CreatedAt:       a.CreatedAt,
	}
	if len(a.Details) > 0 {
		var details any
		if err := json.Unmarshal(a.Details, &details); err == nil {
			out.Details = details
		} else {
			log.Printf("malformed details on alert %d: %v", a.ID, err)
		}
	}
	return out
}

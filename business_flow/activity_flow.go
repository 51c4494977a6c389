package businessflow

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/google/uuid"
)

const (
	summaryTopActions     = 5
	summaryRecentCritical = 5
	activityWriteTimeout  = 5 * time.Second
)

// ActivityEntry describes one admin action to be audited.
type ActivityEntry struct {
	Action       string
	ResourceType string
	ResourceID   string
	Details      map[string]any
	Severity     string
	Metadata     *ClientMetadata
}

// ActivityFlow records admin actions and aggregates them for monitoring.
// Recording is best-effort: it never blocks the caller and never surfaces
// an error into a request path.
type ActivityFlow interface {
	// Record enqueues an audit entry for the given admin. Calls for
	// non-admin principals are silently dropped.
	Record(ctx context.Context, info *AdminInfo, entry ActivityEntry)

	// ListByAdmin returns recent entries for one admin, newest first.
	ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error)

	// Summary computes the monitoring dashboard aggregates over a trailing
	// window of windowDays days (7 when zero or negative). When a partial
	// aggregate fails the remaining fields are still populated and the
	// first failure is returned alongside the response.
	Summary(ctx context.Context, windowDays int) (*dto.ActivitySummaryResponse, error)

	// Close stops the background writer after draining pending entries.
	Close()
}

// ActivityFlowImpl implements ActivityFlow
type ActivityFlowImpl struct {
	activityRepo repository.ActivityLogRepository
	alertRepo    repository.SecurityAlertRepository

	entries chan *models.ActivityLog
	done    sync.WaitGroup
	closeMu sync.Mutex
	closed  bool

	sessionMu sync.Mutex
	sessions  map[uint]string
}

// NewActivityFlow creates a new activity flow and starts its background
// writer. alertRepo may be nil; Summary then reports empty alert buckets.
func NewActivityFlow(
	activityRepo repository.ActivityLogRepository,
	alertRepo repository.SecurityAlertRepository,
) ActivityFlow {
	f := &ActivityFlowImpl{
		activityRepo: activityRepo,
		alertRepo:    alertRepo,
		entries:      make(chan *models.ActivityLog, utils.ActivityBufferSize),
		sessions:     make(map[uint]string),
	}
	f.done.Add(1)
	go f.writeLoop()
	return f
}

func (f *ActivityFlowImpl) writeLoop() {
	defer f.done.Done()
	for entry := range f.entries {
		ctx, cancel := context.WithTimeout(context.Background(), activityWriteTimeout)
		if err := f.activityRepo.Save(ctx, entry); err != nil {
			log.Printf("activity log write failed for action %s: %v", entry.Action, err)
		}
		cancel()
	}
}

// Record enqueues an audit entry without blocking. A full queue drops the
// entry rather than stalling the request that produced it.
func (f *ActivityFlowImpl) Record(ctx context.Context, info *AdminInfo, entry ActivityEntry) {
	if info == nil || !info.IsAdmin || info.AdminUserID == 0 {
		return
	}

	severity := entry.Severity
	if !models.IsValidSeverity(severity) {
		severity = models.SeverityInfo
	}

	row := &models.ActivityLog{
		AdminUserID: info.AdminUserID,
		Action:      entry.Action,
		Severity:    severity,
		SessionID:   f.sessionFor(info.AdminUserID, entry.Metadata),
		CreatedAt:   utils.UTCNow(),
	}
	if entry.ResourceType != "" {
		row.ResourceType = utils.ToPtr(entry.ResourceType)
	}
	if entry.ResourceID != "" {
		row.ResourceID = utils.ToPtr(entry.ResourceID)
	}
	if len(entry.Details) > 0 {
		if bs, err := json.Marshal(entry.Details); err == nil {
			row.Details = bs
		}
	}
	if m := entry.Metadata; m != nil {
		if m.IPAddress != "" {
			row.IPAddress = utils.ToPtr(m.IPAddress)
		}
		if m.UserAgent != "" {
			row.UserAgent = utils.ToPtr(m.UserAgent)
		}
		if m.RequestID != "" {
			row.RequestID = utils.ToPtr(m.RequestID)
		}
	}

	// The closed flag is checked under the same lock Close holds while
	// closing the channel, so a Record racing shutdown drops the entry
	// instead of sending on a closed channel.
	f.closeMu.Lock()
	defer f.closeMu.Unlock()
	if f.closed {
		return
	}

	select {
	case f.entries <- row:
	default:
		log.Printf("activity log queue full, dropping action %s for admin %d", entry.Action, info.AdminUserID)
	}
}

// sessionFor returns a stable session identifier for the admin. An explicit
// session from the client metadata wins and is remembered for later entries
// that arrive without one; otherwise a generated identifier is reused across
// the admin's lifetime in this process.
func (f *ActivityFlowImpl) sessionFor(adminUserID uint, m *ClientMetadata) string {
	f.sessionMu.Lock()
	defer f.sessionMu.Unlock()

	if m != nil && m.SessionID != "" {
		f.sessions[adminUserID] = m.SessionID
		return m.SessionID
	}
	if sid, ok := f.sessions[adminUserID]; ok {
		return sid
	}
	sid := uuid.New().String()
	f.sessions[adminUserID] = sid
	return sid
}

// ListByAdmin returns recent entries for one admin, newest first.
func (f *ActivityFlowImpl) ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error) {
	logs, err := f.activityRepo.ListByAdmin(ctx, adminUserID, limit, offset)
	if err != nil {
		return nil, NewBusinessError("ACTIVITY_LIST_FAILED", "Failed to list activity", ErrStorageUnavailable)
	}
	return logs, nil
}

// Summary computes dashboard aggregates, zero-filling any bucket whose
// query fails and reporting the first failure to the caller.
func (f *ActivityFlowImpl) Summary(ctx context.Context, windowDays int) (*dto.ActivitySummaryResponse, error) {
	if windowDays <= 0 {
		windowDays = 7
	}

	now := utils.UTCNow()
	startOfToday := utils.StartOfDay(now)
	startOfWindow := now.AddDate(0, 0, -windowDays)

	resp := &dto.ActivitySummaryResponse{
		TopActionsToday:      []dto.ActionCountDTO{},
		UnresolvedAlerts:     map[string]int64{},
		RecentCriticalAlerts: []dto.SecurityAlertDTO{},
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	activeAdmins, err := f.activityRepo.CountActiveAdminsSince(ctx, startOfToday)
	keep(err)
	resp.ActiveAdminsToday = activeAdmins

	actionsToday, err := f.activityRepo.CountSince(ctx, startOfToday)
	keep(err)
	resp.ActionsToday = actionsToday

	actionsWindow, err := f.activityRepo.CountSince(ctx, startOfWindow)
	keep(err)
	resp.ActionsThisWeek = actionsWindow

	topActions, err := f.activityRepo.TopActionsSince(ctx, startOfToday, summaryTopActions)
	keep(err)
	for _, a := range topActions {
		resp.TopActionsToday = append(resp.TopActionsToday, dto.ActionCountDTO{Action: a.Action, Count: a.Count})
	}

	if f.alertRepo != nil {
		buckets, err := f.alertRepo.CountUnresolvedBySeverity(ctx)
		keep(err)
		for severity, count := range buckets {
			resp.UnresolvedAlerts[severity] = count
			if models.AlertSeverityRank(severity) >= models.AlertSeverityRank(models.AlertSeverityHigh) {
				resp.UnresolvedActionable += count
			}
		}

		critical, err := f.alertRepo.ListRecentCritical(ctx, summaryRecentCritical)
		keep(err)
		for _, a := range critical {
			resp.RecentCriticalAlerts = append(resp.RecentCriticalAlerts, ToSecurityAlertDTO(a))
		}
	}

	return resp, firstErr
}

// Close drains and stops the background writer. Safe to call more than once.
func (f *ActivityFlowImpl) Close() {
	f.closeMu.Lock()
	if !f.closed {
		f.closed = true
		close(f.entries)
	}
	f.closeMu.Unlock()
	f.done.Wait()
}

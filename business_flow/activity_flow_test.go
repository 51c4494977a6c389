package businessflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminActor(id uint) *AdminInfo {
	return &AdminInfo{IsAdmin: true, AdminUserID: id, UserID: "auth0|admin", Role: models.RoleAdmin}
}

func TestRecordDropsNonAdmin(t *testing.T) {
	repo := &fakeActivityRepo{}
	flow := NewActivityFlow(repo, nil)

	flow.Record(context.Background(), nil, ActivityEntry{Action: models.ActionReportCreated})
	flow.Record(context.Background(), NotAdmin("auth0|visitor"), ActivityEntry{Action: models.ActionReportCreated})
	flow.Record(context.Background(), &AdminInfo{IsAdmin: true}, ActivityEntry{Action: models.ActionReportCreated})
	flow.Close()

	assert.Empty(t, repo.savedEntries())
}

func TestRecordPersistsEntry(t *testing.T) {
	repo := &fakeActivityRepo{}
	flow := NewActivityFlow(repo, nil)

	metadata := NewClientMetadata("203.0.113.9", "test-agent")
	metadata.SetRequestID("req-42")
	flow.Record(context.Background(), adminActor(7), ActivityEntry{
		Action:       models.ActionReportDeleted,
		ResourceType: "casino_report",
		ResourceID:   "13",
		Details:      map[string]any{"status": models.ReportStatusUnlicensed},
		Severity:     models.SeverityWarning,
		Metadata:     metadata,
	})
	flow.Close()

	saved := repo.savedEntries()
	require.Len(t, saved, 1)
	entry := saved[0]
	assert.Equal(t, uint(7), entry.AdminUserID)
	assert.Equal(t, models.ActionReportDeleted, entry.Action)
	assert.Equal(t, models.SeverityWarning, entry.Severity)
	require.NotNil(t, entry.ResourceType)
	assert.Equal(t, "casino_report", *entry.ResourceType)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "13", *entry.ResourceID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "203.0.113.9", *entry.IPAddress)
	require.NotNil(t, entry.RequestID)
	assert.Equal(t, "req-42", *entry.RequestID)
	assert.NotEmpty(t, entry.SessionID)

	var details map[string]any
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, models.ReportStatusUnlicensed, details["status"])
}

func TestRecordInvalidSeverityFallsBackToInfo(t *testing.T) {
	repo := &fakeActivityRepo{}
	flow := NewActivityFlow(repo, nil)

	flow.Record(context.Background(), adminActor(1), ActivityEntry{Action: models.ActionReportCreated, Severity: "shouting"})
	flow.Close()

	saved := repo.savedEntries()
	require.Len(t, saved, 1)
	assert.Equal(t, models.SeverityInfo, saved[0].Severity)
}

func TestSessionReuse(t *testing.T) {
	repo := &fakeActivityRepo{}
	flow := NewActivityFlow(repo, nil)

	t.Run("GeneratedSessionIsStablePerAdmin", func(t *testing.T) {
		flow.Record(context.Background(), adminActor(1), ActivityEntry{Action: models.ActionReportCreated})
		flow.Record(context.Background(), adminActor(1), ActivityEntry{Action: models.ActionReportUpdated})
		flow.Record(context.Background(), adminActor(2), ActivityEntry{Action: models.ActionReportCreated})
	})

	t.Run("ExplicitSessionWinsAndIsRemembered", func(t *testing.T) {
		metadata := NewClientMetadata("", "")
		metadata.SetSessionID("session-abc")
		flow.Record(context.Background(), adminActor(3), ActivityEntry{Action: models.ActionReportCreated, Metadata: metadata})
		flow.Record(context.Background(), adminActor(3), ActivityEntry{Action: models.ActionReportUpdated})
	})

	flow.Close()
	saved := repo.savedEntries()
	require.Len(t, saved, 5)

	assert.Equal(t, saved[0].SessionID, saved[1].SessionID)
	assert.NotEqual(t, saved[0].SessionID, saved[2].SessionID)

	assert.Equal(t, "session-abc", saved[3].SessionID)
	assert.Equal(t, "session-abc", saved[4].SessionID)
}

func TestCloseIsIdempotent(t *testing.T) {
	flow := NewActivityFlow(&fakeActivityRepo{}, nil)
	flow.Close()
	flow.Close()
}

func TestRecordAfterCloseIsDropped(t *testing.T) {
	repo := &fakeActivityRepo{}
	flow := NewActivityFlow(repo, nil)
	flow.Close()

	// A request still in flight during shutdown must not panic the
	// process; its entry is simply lost.
	flow.Record(context.Background(), adminActor(1), ActivityEntry{Action: models.ActionReportCreated})

	assert.Empty(t, repo.savedEntries())
}

func TestListByAdmin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &fakeActivityRepo{listByAdminResult: []*models.ActivityLog{{ID: 1, Action: models.ActionReportCreated}}}
		flow := NewActivityFlow(repo, nil)
		defer flow.Close()

		logs, err := flow.ListByAdmin(context.Background(), 1, 10, 0)
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("StorageError", func(t *testing.T) {
		repo := &fakeActivityRepo{listByAdminErr: errors.New("connection refused")}
		flow := NewActivityFlow(repo, nil)
		defer flow.Close()

		_, err := flow.ListByAdmin(context.Background(), 1, 10, 0)
		require.Error(t, err)
		assert.True(t, IsStorageUnavailable(err))
	})
}

func TestSummary(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		countActive: 4,
		countSince:  25,
		topActionsResult: []*repository.ActionCount{
			{Action: models.ActionReportUpdated, Count: 12},
			{Action: models.ActionHomepageUpdated, Count: 5},
		},
	}
	alertRepo := &fakeAlertRepo{
		buckets: map[string]int64{
			models.AlertSeverityLow:      7,
			models.AlertSeverityMedium:   2,
			models.AlertSeverityHigh:     3,
			models.AlertSeverityCritical: 1,
		},
		critical: []*models.SecurityAlert{
			{ID: 9, AlertType: models.AlertTypeSuspiciousActivity, Severity: models.AlertSeverityCritical, Message: "odd"},
		},
	}
	flow := NewActivityFlow(activityRepo, alertRepo)
	defer flow.Close()

	resp, err := flow.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.ActiveAdminsToday)
	assert.Equal(t, int64(25), resp.ActionsToday)
	assert.Len(t, resp.TopActionsToday, 2)
	assert.Equal(t, int64(4), resp.UnresolvedActionable)
	assert.Equal(t, int64(7), resp.UnresolvedAlerts[models.AlertSeverityLow])
	require.Len(t, resp.RecentCriticalAlerts, 1)
	assert.Equal(t, uint(9), resp.RecentCriticalAlerts[0].ID)
}

func TestSummaryWindow(t *testing.T) {
	t.Run("CustomWindowReachesBack", func(t *testing.T) {
		activityRepo := &fakeActivityRepo{}
		flow := NewActivityFlow(activityRepo, nil)
		defer flow.Close()

		_, err := flow.Summary(context.Background(), 30)
		require.NoError(t, err)

		// CountSince is called for today first, then for the window; the
		// window call is the one that sticks.
		wantStart := utils.UTCNow().AddDate(0, 0, -30)
		assert.WithinDuration(t, wantStart, activityRepo.lastCountSince, time.Minute)
	})

	t.Run("NonPositiveWindowDefaultsToSevenDays", func(t *testing.T) {
		activityRepo := &fakeActivityRepo{}
		flow := NewActivityFlow(activityRepo, nil)
		defer flow.Close()

		_, err := flow.Summary(context.Background(), 0)
		require.NoError(t, err)

		wantStart := utils.UTCNow().AddDate(0, 0, -7)
		assert.WithinDuration(t, wantStart, activityRepo.lastCountSince, time.Minute)
	})
}

func TestSummaryToleratesPartialFailure(t *testing.T) {
	activityRepo := &fakeActivityRepo{
		countActive:   6,
		countSince:    10,
		topActionsErr: errors.New("timeout"),
	}
	alertRepo := &fakeAlertRepo{
		buckets: map[string]int64{models.AlertSeverityHigh: 2},
	}
	flow := NewActivityFlow(activityRepo, alertRepo)
	defer flow.Close()

	resp, err := flow.Summary(context.Background(), 7)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(6), resp.ActiveAdminsToday)
	assert.Equal(t, int64(10), resp.ActionsToday)
	assert.Empty(t, resp.TopActionsToday)
	assert.Equal(t, int64(2), resp.UnresolvedActionable)
}

func TestSummaryWithoutAlertRepo(t *testing.T) {
	flow := NewActivityFlow(&fakeActivityRepo{countSince: 3}, nil)
	defer flow.Close()

	resp, err := flow.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, resp.UnresolvedAlerts)
	assert.Empty(t, resp.RecentCriticalAlerts)
	assert.Zero(t, resp.UnresolvedActionable)
}

package businessflow

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeAdmin(userID, role string) *models.AdminUser {
	return &models.AdminUser{
		ID:       1,
		UUID:     uuid.New(),
		UserID:   userID,
		Email:    "admin@example.com",
		Role:     role,
		IsActive: utils.ToPtr(true),
	}
}

func TestGetAdminInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownPrincipalIsNotAdmin", func(t *testing.T) {
		flow := NewPermissionFlow(&fakeAdminUserRepo{admins: map[string]*models.AdminUser{}}, nil, nil)
		info := flow.GetAdminInfo(ctx, "auth0|nobody")
		assert.False(t, info.IsAdmin)
		assert.Equal(t, "auth0|nobody", info.UserID)
	})

	t.Run("EmptyPrincipalIsNotAdmin", func(t *testing.T) {
		flow := NewPermissionFlow(&fakeAdminUserRepo{}, nil, nil)
		assert.False(t, flow.GetAdminInfo(ctx, "").IsAdmin)
	})

	t.Run("LookupFailureDegradesToNotAdmin", func(t *testing.T) {
		repo := &fakeAdminUserRepo{lookupErr: errors.New("connection refused")}
		flow := NewPermissionFlow(repo, nil, nil)
		info := flow.GetAdminInfo(ctx, "auth0|alice")
		assert.False(t, info.IsAdmin)
	})

	t.Run("InactiveAdminIsNotAdmin", func(t *testing.T) {
		admin := activeAdmin("auth0|alice", models.RoleAdmin)
		admin.IsActive = utils.ToPtr(false)
		repo := &fakeAdminUserRepo{admins: map[string]*models.AdminUser{"auth0|alice": admin}}
		flow := NewPermissionFlow(repo, nil, nil)
		assert.False(t, flow.GetAdminInfo(ctx, "auth0|alice").IsAdmin)
	})

	t.Run("ActiveAdminResolvedWithPermissionCount", func(t *testing.T) {
		repo := &fakeAdminUserRepo{
			admins:     map[string]*models.AdminUser{"auth0|alice": activeAdmin("auth0|alice", models.RoleModerator)},
			permCounts: map[uint]int64{1: 3},
		}
		flow := NewPermissionFlow(repo, nil, nil)
		info := flow.GetAdminInfo(ctx, "auth0|alice")
		assert.True(t, info.IsAdmin)
		assert.Equal(t, uint(1), info.AdminUserID)
		assert.Equal(t, models.RoleModerator, info.Role)
		assert.Equal(t, int64(3), info.TotalPermissions)
	})

	t.Run("PermissionCountFailureYieldsZero", func(t *testing.T) {
		repo := &fakeAdminUserRepo{
			admins:       map[string]*models.AdminUser{"auth0|alice": activeAdmin("auth0|alice", models.RoleModerator)},
			permCountErr: errors.New("timeout"),
		}
		flow := NewPermissionFlow(repo, nil, nil)
		info := flow.GetAdminInfo(ctx, "auth0|alice")
		assert.True(t, info.IsAdmin)
		assert.Zero(t, info.TotalPermissions)
	})
}

func TestHasPermissionSync(t *testing.T) {
	flow := NewPermissionFlow(&fakeAdminUserRepo{}, nil, nil)

	tests := []struct {
		name string
		info *AdminInfo
		want bool
	}{
		{"NilInfoDenied", nil, false},
		{"NonAdminDenied", NotAdmin("auth0|bob"), false},
		{"SuperAdminAllowedWithoutGrants", &AdminInfo{IsAdmin: true, Role: models.RoleSuperAdmin}, true},
		{"ModeratorWithoutGrantsDenied", &AdminInfo{IsAdmin: true, Role: models.RoleModerator, TotalPermissions: 0}, false},
		{"ModeratorWithGrantsAllowed", &AdminInfo{IsAdmin: true, Role: models.RoleModerator, TotalPermissions: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flow.HasPermissionSync(tt.info, models.PermissionManageReports))
		})
	}
}

func TestHasPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("SuperAdminSkipsGrantLookup", func(t *testing.T) {
		repo := &fakeAdminUserRepo{
			admins:   map[string]*models.AdminUser{"auth0|root": activeAdmin("auth0|root", models.RoleSuperAdmin)},
			grantErr: errors.New("must not be called"),
		}
		flow := NewPermissionFlow(repo, nil, nil)
		assert.True(t, flow.HasPermission(ctx, "auth0|root", models.PermissionManageReports))
	})

	t.Run("GrantedPermissionAllowed", func(t *testing.T) {
		repo := &fakeAdminUserRepo{
			admins: map[string]*models.AdminUser{"auth0|alice": activeAdmin("auth0|alice", models.RoleAdmin)},
			grants: map[uint]map[string]bool{1: {models.PermissionManageReports: true}},
		}
		flow := NewPermissionFlow(repo, nil, nil)
		assert.True(t, flow.HasPermission(ctx, "auth0|alice", models.PermissionManageReports))
		assert.False(t, flow.HasPermission(ctx, "auth0|alice", models.PermissionManageHomepage))
	})

	t.Run("GrantLookupFailureDenies", func(t *testing.T) {
		repo := &fakeAdminUserRepo{
			admins:   map[string]*models.AdminUser{"auth0|alice": activeAdmin("auth0|alice", models.RoleAdmin)},
			grantErr: errors.New("connection refused"),
		}
		flow := NewPermissionFlow(repo, nil, nil)
		assert.False(t, flow.HasPermission(ctx, "auth0|alice", models.PermissionManageReports))
	})

	t.Run("NonAdminDenied", func(t *testing.T) {
		flow := NewPermissionFlow(&fakeAdminUserRepo{}, nil, nil)
		assert.False(t, flow.HasPermission(ctx, "auth0|stranger", models.PermissionManageReports))
	})
}

func TestRepeatedDenialsRaiseOneAlert(t *testing.T) {
	ctx := context.Background()
	alertRepo := &fakeAlertRepo{}
	flow := NewPermissionFlow(&fakeAdminUserRepo{}, alertRepo, nil)

	for i := 0; i < utils.PermissionDenialAlertThreshold+3; i++ {
		flow.HasPermission(ctx, "auth0|intruder", models.PermissionManageReports)
	}

	saved := alertRepo.savedAlerts()
	require.Len(t, saved, 1)
	assert.Equal(t, models.AlertTypeRepeatedPermissionDenials, saved[0].AlertType)
	assert.Equal(t, models.AlertSeverityHigh, saved[0].Severity)
	assert.Contains(t, saved[0].Message, "auth0|intruder")
}

func TestDenialsBelowThresholdStaySilent(t *testing.T) {
	ctx := context.Background()
	alertRepo := &fakeAlertRepo{}
	flow := NewPermissionFlow(&fakeAdminUserRepo{}, alertRepo, nil)

	for i := 0; i < utils.PermissionDenialAlertThreshold-1; i++ {
		flow.HasPermission(ctx, "auth0|intruder", models.PermissionManageReports)
	}

	assert.Empty(t, alertRepo.savedAlerts())
}

func TestExpiredDenialWindowsAreEvicted(t *testing.T) {
	ctx := context.Background()
	alertRepo := &fakeAlertRepo{}
	flow := NewPermissionFlow(&fakeAdminUserRepo{}, alertRepo, nil).(*PermissionFlowImpl)

	flow.HasPermission(ctx, "auth0|quiet", models.PermissionManageReports)
	flow.HasPermission(ctx, "auth0|noisy", models.PermissionManageReports)

	// Backdate one window past the denial horizon; the next denial from
	// any principal sweeps it out.
	flow.mu.Lock()
	flow.denials["auth0|quiet"].started = utils.UTCNow().Add(-utils.PermissionDenialWindow - time.Minute)
	flow.mu.Unlock()

	flow.HasPermission(ctx, "auth0|noisy", models.PermissionManageReports)

	flow.mu.Lock()
	_, quietKept := flow.denials["auth0|quiet"]
	noisy := flow.denials["auth0|noisy"]
	flow.mu.Unlock()

	assert.False(t, quietKept)
	require.NotNil(t, noisy)
	assert.Equal(t, 2, noisy.count)
}

func TestDenialWindowsArePerPrincipal(t *testing.T) {
	ctx := context.Background()
	alertRepo := &fakeAlertRepo{}
	flow := NewPermissionFlow(&fakeAdminUserRepo{}, alertRepo, nil)

	for i := 0; i < utils.PermissionDenialAlertThreshold; i++ {
		flow.HasPermission(ctx, fmt.Sprintf("auth0|user%d", i), models.PermissionManageReports)
	}

	assert.Empty(t, alertRepo.savedAlerts())
}

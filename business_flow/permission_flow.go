// Package businessflow contains admin permission resolution
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// AdminInfo is the resolved admin status of an auth-provider principal.
type AdminInfo struct {
	IsAdmin          bool   `json:"is_admin"`
	AdminUserID      uint   `json:"admin_user_id,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	Email            string `json:"email,omitempty"`
	Role             string `json:"role,omitempty"`
	TotalPermissions int64  `json:"total_permissions"`
}

// NotAdmin is the safe default returned whenever resolution fails.
func NotAdmin(userID string) *AdminInfo {
	return &AdminInfo{IsAdmin: false, UserID: userID}
}

// PermissionFlow resolves admin status and permission checks. Every remote
// failure degrades to the denying default; no method returns an error.
type PermissionFlow interface {
	// GetAdminInfo resolves the active admin record for a principal,
	// caching the result and coalescing concurrent lookups.
	GetAdminInfo(ctx context.Context, userID string) *AdminInfo

	// HasPermissionSync is a fast, non-authoritative check for UI gating.
	// It must not be used to gate a state-changing action.
	HasPermissionSync(info *AdminInfo, permissionName string) bool

	// HasPermission is the authoritative check against the grant relation.
	HasPermission(ctx context.Context, userID string, permissionName string) bool

	// Refresh drops the cached admin info for a principal.
	Refresh(ctx context.Context, userID string)
}

// PermissionFlowImpl implements PermissionFlow
type PermissionFlowImpl struct {
	adminRepo repository.AdminUserRepository
	alertRepo repository.SecurityAlertRepository
	rc        *redis.Client
	group     singleflight.Group

	mu       sync.Mutex
	denials  map[string]*denialWindow
	cacheTTL time.Duration
}

type denialWindow struct {
	count   int
	started time.Time
	alerted bool
}

// NewPermissionFlow creates a new permission flow. Both alertRepo and rc may
// be nil: without Redis the flow still works, just uncached.
func NewPermissionFlow(
	adminRepo repository.AdminUserRepository,
	alertRepo repository.SecurityAlertRepository,
	rc *redis.Client,
) PermissionFlow {
	return &PermissionFlowImpl{
		adminRepo: adminRepo,
		alertRepo: alertRepo,
		rc:        rc,
		denials:   make(map[string]*denialWindow),
		cacheTTL:  utils.AdminInfoCacheTTL,
	}
}

func adminInfoCacheKey(userID string) string {
	return "casinoradar:admin_info:" + userID
}

// GetAdminInfo resolves admin status, degrading to not-admin on any failure.
func (f *PermissionFlowImpl) GetAdminInfo(ctx context.Context, userID string) *AdminInfo {
	if userID == "" {
		return NotAdmin(userID)
	}

	if info := f.cachedAdminInfo(ctx, userID); info != nil {
		return info
	}

	// Coalesce concurrent lookups for the same principal so a burst of
	// requests triggers a single remote fetch.
	result, err, _ := f.group.Do(userID, func() (any, error) {
		return f.fetchAdminInfo(ctx, userID), nil
	})
	if err != nil {
		log.Printf("admin info fetch failed for %s: %v", userID, err)
		return NotAdmin(userID)
	}

	return result.(*AdminInfo)
}

func (f *PermissionFlowImpl) cachedAdminInfo(ctx context.Context, userID string) *AdminInfo {
	if f.rc == nil {
		return nil
	}

	bs, err := f.rc.Get(ctx, adminInfoCacheKey(userID)).Bytes()
	if err != nil || len(bs) == 0 {
		return nil
	}

	var info AdminInfo
	if err := json.Unmarshal(bs, &info); err != nil {
		return nil
	}
	return &info
}

func (f *PermissionFlowImpl) fetchAdminInfo(ctx context.Context, userID string) *AdminInfo {
	admin, err := f.adminRepo.ByUserID(ctx, userID)
	if err != nil {
		// Fail closed: lookup failure means not admin, never an error to the caller.
		log.Printf("admin lookup failed for %s: %v", userID, err)
		return NotAdmin(userID)
	}
	if admin == nil || !utils.IsTrue(admin.IsActive) {
		info := NotAdmin(userID)
		f.storeAdminInfo(ctx, userID, info)
		return info
	}

	total, err := f.adminRepo.CountPermissions(ctx, admin.ID)
	if err != nil {
		log.Printf("permission count failed for admin %d: %v", admin.ID, err)
		total = 0
	}

	info := &AdminInfo{
		IsAdmin:          true,
		AdminUserID:      admin.ID,
		UserID:           admin.UserID,
		Email:            admin.Email,
		Role:             admin.Role,
		TotalPermissions: total,
	}
	f.storeAdminInfo(ctx, userID, info)
	return info
}

func (f *PermissionFlowImpl) storeAdminInfo(ctx context.Context, userID string, info *AdminInfo) {
	if f.rc == nil {
		return
	}
	bs, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := f.rc.Set(ctx, adminInfoCacheKey(userID), bs, f.cacheTTL).Err(); err != nil {
		log.Printf("admin info cache write failed for %s: %v", userID, err)
	}
}

// HasPermissionSync approximates a permission check without touching the
// grant relation: super admins hold everything implicitly, everyone else
// passes when they hold any explicit grant at all. Deliberately coarse.
func (f *PermissionFlowImpl) HasPermissionSync(info *AdminInfo, permissionName string) bool {
	if info == nil || !info.IsAdmin {
		return false
	}
	if info.Role == models.RoleSuperAdmin {
		return true
	}
	return info.TotalPermissions > 0
}

// HasPermission is the authoritative check. Any error denies.
func (f *PermissionFlowImpl) HasPermission(ctx context.Context, userID string, permissionName string) bool {
	info := f.GetAdminInfo(ctx, userID)
	if !info.IsAdmin {
		f.recordDenial(ctx, userID, permissionName)
		return false
	}
	if info.Role == models.RoleSuperAdmin {
		return true
	}

	ok, err := f.adminRepo.HasPermission(ctx, info.AdminUserID, permissionName)
	if err != nil {
		log.Printf("permission check failed for admin %d (%s): %v", info.AdminUserID, permissionName, err)
		return false
	}
	if !ok {
		f.recordDenial(ctx, userID, permissionName)
	}
	return ok
}

// Refresh drops the cached admin info for a principal.
func (f *PermissionFlowImpl) Refresh(ctx context.Context, userID string) {
	if f.rc == nil {
		return
	}
	if err := f.rc.Del(ctx, adminInfoCacheKey(userID)).Err(); err != nil {
		log.Printf("admin info cache invalidation failed for %s: %v", userID, err)
	}
}

// recordDenial tracks denied checks per principal in a fixed window and
// raises a security alert once the threshold is crossed. Best-effort only.
func (f *PermissionFlowImpl) recordDenial(ctx context.Context, userID, permissionName string) {
	if f.alertRepo == nil {
		return
	}

	f.mu.Lock()
	now := utils.UTCNow()
	// Drop stale windows so principals that stopped misbehaving do not
	// accumulate in the map forever.
	for id, stale := range f.denials {
		if now.Sub(stale.started) > utils.PermissionDenialWindow {
			delete(f.denials, id)
		}
	}
	w := f.denials[userID]
	if w == nil {
		w = &denialWindow{started: now}
		f.denials[userID] = w
	}
	w.count++
	count, started := w.count, w.started
	shouldAlert := count >= utils.PermissionDenialAlertThreshold && !w.alerted
	if shouldAlert {
		w.alerted = true
	}
	f.mu.Unlock()

	if !shouldAlert {
		return
	}

	details, _ := json.Marshal(map[string]any{
		"user_id":         userID,
		"last_permission": permissionName,
		"denials":         count,
		"window_started":  started.Format(time.RFC3339),
	})
	alert := &models.SecurityAlert{
		AlertType: models.AlertTypeRepeatedPermissionDenials,
		Severity:  models.AlertSeverityHigh,
		Message:   fmt.Sprintf("Principal %s was denied %d permission checks within %s", userID, count, utils.PermissionDenialWindow),
		Details:   details,
	}
	if err := f.alertRepo.Save(ctx, alert); err != nil {
		log.Printf("failed to raise permission denial alert for %s: %v", userID, err)
	}
}

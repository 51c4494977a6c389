// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/casinoradar/casinoradar/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
}

// AdminUserRepository defines operations for admin principals
type AdminUserRepository interface {
	Repository[models.AdminUser, models.AdminUserFilter]
	ByUserID(ctx context.Context, userID string) (*models.AdminUser, error)
	CountPermissions(ctx context.Context, adminUserID uint) (int64, error)
	HasPermission(ctx context.Context, adminUserID uint, permissionName string) (bool, error)
	UpdateActiveStatus(ctx context.Context, adminUserID uint, isActive bool) error
	UpdateLastSeen(ctx context.Context, adminUserID uint, at time.Time) error
}

// ActivityLogRepository defines operations for the append-only activity log
type ActivityLogRepository interface {
	Repository[models.ActivityLog, models.ActivityLogFilter]
	ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error)
	ListBySeverity(ctx context.Context, severity string, limit, offset int) ([]*models.ActivityLog, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveAdminsSince(ctx context.Context, since time.Time) (int64, error)
	TopActionsSince(ctx context.Context, since time.Time, limit int) ([]*ActionCount, error)
}

// ActionCount is one aggregated action bucket from the activity log
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// SecurityAlertRepository defines operations for security alerts
type SecurityAlertRepository interface {
	Repository[models.SecurityAlert, models.SecurityAlertFilter]
	List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.SecurityAlert, error)
	ListRecentCritical(ctx context.Context, limit int) ([]*models.SecurityAlert, error)
	CountUnresolvedBySeverity(ctx context.Context) (map[string]int64, error)
	Resolve(ctx context.Context, alertID uint, resolvedBy uint, notes *string, at time.Time) error
}

// CasinoRepository defines operations for casinos and their child relations
type CasinoRepository interface {
	Repository[models.Casino, models.CasinoFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Casino, error)
	Search(ctx context.Context, filter models.CasinoFilter, orderBy string, limit, offset int) ([]*models.Casino, error)
	DistinctFeatureLabels(ctx context.Context) ([]string, error)
	DistinctBadgeLabels(ctx context.Context) ([]string, error)
}

// CasinoReportRepository defines operations for casino reports
type CasinoReportRepository interface {
	Repository[models.CasinoReport, models.CasinoReportFilter]
	Update(ctx context.Context, report *models.CasinoReport) error
	// DeleteByID removes a report and reports whether a row actually existed,
	// so callers can treat "already gone" as success.
	DeleteByID(ctx context.Context, id uint) (bool, error)
}

// HomepageRepository defines operations for homepage content blocks
type HomepageRepository interface {
	ListBanners(ctx context.Context, activeOnly bool) ([]*models.HomepageBanner, error)
	ListStatistics(ctx context.Context) ([]*models.HomepageStatistic, error)
	ListFeatures(ctx context.Context) ([]*models.HomepageFeature, error)
	ListContents(ctx context.Context) ([]*models.HomepageContent, error)
	SaveBanner(ctx context.Context, banner *models.HomepageBanner) error
	SaveStatistic(ctx context.Context, statistic *models.HomepageStatistic) error
	SaveFeature(ctx context.Context, feature *models.HomepageFeature) error
	UpsertContent(ctx context.Context, content *models.HomepageContent) error
	DeleteBanner(ctx context.Context, id uint) (bool, error)
	DeleteStatistic(ctx context.Context, id uint) (bool, error)
	DeleteFeature(ctx context.Context, id uint) (bool, error)
	DeleteContent(ctx context.Context, id uint) (bool, error)
}

// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"gorm.io/gorm"
)

// AdminUserRepositoryImpl implements AdminUserRepository interface
type AdminUserRepositoryImpl struct {
	*BaseRepository[models.AdminUser, models.AdminUserFilter]
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &AdminUserRepositoryImpl{
		BaseRepository: NewBaseRepository[models.AdminUser, models.AdminUserFilter](db),
	}
}

// ByUserID retrieves the active admin record for an auth-provider principal.
// Returns nil (not an error) when no active record exists.
func (r *AdminUserRepositoryImpl) ByUserID(ctx context.Context, userID string) (*models.AdminUser, error) {
	filter := models.AdminUserFilter{UserID: &userID, IsActive: boolPtr(true)}
	admins, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		return nil, nil
	}
	return admins[0], nil
}

// CountPermissions returns the number of explicit permission grants for an admin
func (r *AdminUserRepositoryImpl) CountPermissions(ctx context.Context, adminUserID uint) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.AdminPermission{}).
		Where("admin_user_id = ?", adminUserID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count permissions for admin %d: %w", adminUserID, err)
	}
	return count, nil
}

// HasPermission checks whether an admin holds a specific named permission
// through the assignment relation. Unknown permission names yield false.
func (r *AdminUserRepositoryImpl) HasPermission(ctx context.Context, adminUserID uint, permissionName string) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.AdminPermission{}).
		Joins("JOIN permissions ON permissions.id = admin_permissions.permission_id").
		Where("admin_permissions.admin_user_id = ? AND permissions.name = ?", adminUserID, permissionName).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check permission %q for admin %d: %w", permissionName, adminUserID, err)
	}
	return count > 0, nil
}

// UpdateActiveStatus flips the is_active flag; admins are deactivated, never deleted
func (r *AdminUserRepositoryImpl) UpdateActiveStatus(ctx context.Context, adminUserID uint, isActive bool) error {
	db := r.getDB(ctx)

	err := db.Model(&models.AdminUser{}).
		Where("id = ?", adminUserID).
		Updates(map[string]any{"is_active": isActive, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		return fmt.Errorf("failed to update active status for admin %d: %w", adminUserID, err)
	}
	return nil
}

// UpdateLastSeen records the most recent authenticated request for an admin
func (r *AdminUserRepositoryImpl) UpdateLastSeen(ctx context.Context, adminUserID uint, at time.Time) error {
	db := r.getDB(ctx)

	err := db.Model(&models.AdminUser{}).
		Where("id = ?", adminUserID).
		Update("last_seen_at", at).Error
	if err != nil {
		return fmt.Errorf("failed to update last seen for admin %d: %w", adminUserID, err)
	}
	return nil
}

// ByFilter retrieves admin users based on filter criteria
func (r *AdminUserRepositoryImpl) ByFilter(ctx context.Context, filter models.AdminUserFilter, orderBy string, limit, offset int) ([]*models.AdminUser, error) {
	db := r.getDB(ctx)

	var admins []*models.AdminUser
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("failed to find admin users by filter: %w", err)
	}

	return admins, nil
}

// Count returns the number of admin users matching the filter
func (r *AdminUserRepositoryImpl) Count(ctx context.Context, filter models.AdminUserFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.AdminUser{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admin users: %w", err)
	}

	return count, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *AdminUserRepositoryImpl) applyFilter(query *gorm.DB, filter models.AdminUserFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

func boolPtr(b bool) *bool {
	return &b
}

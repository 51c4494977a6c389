// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"gorm.io/gorm"
)

// ActivityLogRepositoryImpl implements ActivityLogRepository interface
type ActivityLogRepositoryImpl struct {
	*BaseRepository[models.ActivityLog, models.ActivityLogFilter]
}

// NewActivityLogRepository creates a new activity log repository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &ActivityLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ActivityLog, models.ActivityLogFilter](db),
	}
}

// ListByAdmin retrieves activity entries for a specific admin with pagination
func (r *ActivityLogRepositoryImpl) ListByAdmin(ctx context.Context, adminUserID uint, limit, offset int) ([]*models.ActivityLog, error) {
	db := r.getDB(ctx)

	var logs []*models.ActivityLog
	err := db.Where("admin_user_id = ?", adminUserID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("AdminUser").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list activity by admin: %w", err)
	}

	return logs, nil
}

// ListBySeverity retrieves activity entries of one severity with pagination
func (r *ActivityLogRepositoryImpl) ListBySeverity(ctx context.Context, severity string, limit, offset int) ([]*models.ActivityLog, error) {
	db := r.getDB(ctx)

	var logs []*models.ActivityLog
	err := db.Where("severity = ?", severity).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("AdminUser").
		Find(&logs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list activity by severity: %w", err)
	}

	return logs, nil
}

// CountSince counts entries written at or after the given instant
func (r *ActivityLogRepositoryImpl) CountSince(ctx context.Context, since time.Time) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.ActivityLog{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count activity since %s: %w", since, err)
	}
	return count, nil
}

// CountActiveAdminsSince counts distinct admins who acted at or after the given instant
func (r *ActivityLogRepositoryImpl) CountActiveAdminsSince(ctx context.Context, since time.Time) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.ActivityLog{}).
		Where("created_at >= ?", since).
		Distinct("admin_user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active admins since %s: %w", since, err)
	}
	return count, nil
}

// TopActionsSince aggregates the most frequent actions at or after the given instant
func (r *ActivityLogRepositoryImpl) TopActionsSince(ctx context.Context, since time.Time, limit int) ([]*ActionCount, error) {
	db := r.getDB(ctx)

	var rows []*ActionCount
	err := db.Model(&models.ActivityLog{}).
		Select("action, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("action").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top actions: %w", err)
	}
	return rows, nil
}

// ByFilter retrieves activity entries based on filter criteria
func (r *ActivityLogRepositoryImpl) ByFilter(ctx context.Context, filter models.ActivityLogFilter, orderBy string, limit, offset int) ([]*models.ActivityLog, error) {
	db := r.getDB(ctx)

	var logs []*models.ActivityLog
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

	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to find activity entries by filter: %w", err)
	}

	return logs, nil
}

// Count returns the number of activity entries matching the filter
func (r *ActivityLogRepositoryImpl) Count(ctx context.Context, filter models.ActivityLogFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.ActivityLog{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count activity entries: %w", err)
	}

	return count, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *ActivityLogRepositoryImpl) applyFilter(query *gorm.DB, filter models.ActivityLogFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AdminUserID != nil {
		query = query.Where("admin_user_id = ?", *filter.AdminUserID)
	}
	if filter.Action != nil {
		query = query.Where("action = ?", *filter.Action)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if filter.SessionID != nil {
		query = query.Where("session_id = ?", *filter.SessionID)
	}
	if filter.ResourceType != nil {
		query = query.Where("resource_type = ?", *filter.ResourceType)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

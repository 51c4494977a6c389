// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/casinoradar/casinoradar/models"
	"gorm.io/gorm"
)

// SecurityAlertRepositoryImpl implements SecurityAlertRepository interface
type SecurityAlertRepositoryImpl struct {
	*BaseRepository[models.SecurityAlert, models.SecurityAlertFilter]
}

// NewSecurityAlertRepository creates a new security alert repository
func NewSecurityAlertRepository(db *gorm.DB) SecurityAlertRepository {
	return &SecurityAlertRepositoryImpl{
		BaseRepository: NewBaseRepository[models.SecurityAlert, models.SecurityAlertFilter](db),
	}
}

// List retrieves alerts newest-first, optionally excluding resolved entries
func (r *SecurityAlertRepositoryImpl) List(ctx context.Context, unresolvedOnly bool, limit, offset int) ([]*models.SecurityAlert, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.SecurityAlert{})
	if unresolvedOnly {
		query = query.Where("is_resolved = ?", false)
	}

	var alerts []*models.SecurityAlert
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list security alerts: %w", err)
	}

	return alerts, nil
}

// ListRecentCritical retrieves the newest unresolved critical alerts
func (r *SecurityAlertRepositoryImpl) ListRecentCritical(ctx context.Context, limit int) ([]*models.SecurityAlert, error) {
	db := r.getDB(ctx)

	var alerts []*models.SecurityAlert
	err := db.Where("severity = ? AND is_resolved = ?", models.AlertSeverityCritical, false).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent critical alerts: %w", err)
	}

	return alerts, nil
}

// CountUnresolvedBySeverity buckets unresolved alerts by severity
func (r *SecurityAlertRepositoryImpl) CountUnresolvedBySeverity(ctx context.Context) (map[string]int64, error) {
	db := r.getDB(ctx)

	type bucket struct {
		Severity string
		Count    int64
	}
	var rows []bucket
	err := db.Model(&models.SecurityAlert{}).
		Select("severity, COUNT(*) AS count").
		Where("is_resolved = ?", false).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count unresolved alerts: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Severity] = row.Count
	}
	return counts, nil
}

// Resolve marks an alert resolved. The update is a no-op when the alert is
// already resolved, so concurrent resolutions of the same alert succeed
// without error and the first resolver's notes are kept.
func (r *SecurityAlertRepositoryImpl) Resolve(ctx context.Context, alertID uint, resolvedBy uint, notes *string, at time.Time) error {
	db := r.getDB(ctx)

	err := db.Model(&models.SecurityAlert{}).
		Where("id = ? AND is_resolved = ?", alertID, false).
		Updates(map[string]any{
			"is_resolved":      true,
			"resolution_notes": notes,
			"resolved_by":      resolvedBy,
			"resolved_at":      at,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to resolve alert %d: %w", alertID, err)
	}
	return nil
}

// ByFilter retrieves alerts based on filter criteria
func (r *SecurityAlertRepositoryImpl) ByFilter(ctx context.Context, filter models.SecurityAlertFilter, orderBy string, limit, offset int) ([]*models.SecurityAlert, error) {
	db := r.getDB(ctx)

	var alerts []*models.SecurityAlert
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

	if err := query.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to find security alerts by filter: %w", err)
	}

	return alerts, nil
}

// Count returns the number of alerts matching the filter
func (r *SecurityAlertRepositoryImpl) Count(ctx context.Context, filter models.SecurityAlertFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.SecurityAlert{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count security alerts: %w", err)
	}

	return count, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *SecurityAlertRepositoryImpl) applyFilter(query *gorm.DB, filter models.SecurityAlertFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.AlertType != nil {
		query = query.Where("alert_type = ?", *filter.AlertType)
	}
	if filter.Severity != nil {
		query = query.Where("severity = ?", *filter.Severity)
	}
	if filter.IsResolved != nil {
		query = query.Where("is_resolved = ?", *filter.IsResolved)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

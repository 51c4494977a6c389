// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/casinoradar/casinoradar/models"
	"gorm.io/gorm"
)

// CasinoReportRepositoryImpl implements CasinoReportRepository interface
type CasinoReportRepositoryImpl struct {
	*BaseRepository[models.CasinoReport, models.CasinoReportFilter]
}

// NewCasinoReportRepository creates a new casino report repository
func NewCasinoReportRepository(db *gorm.DB) CasinoReportRepository {
	return &CasinoReportRepositoryImpl{
		BaseRepository: NewBaseRepository[models.CasinoReport, models.CasinoReportFilter](db),
	}
}

// Update persists changes to an existing report
func (r *CasinoReportRepositoryImpl) Update(ctx context.Context, report *models.CasinoReport) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.CasinoReport{}).
		Where("id = ?", report.ID).
		Updates(map[string]any{
			"casino_id":   report.CasinoID,
			"casino_name": report.CasinoName,
			"status":      report.Status,
			"summary":     report.Summary,
			"details":     report.Details,
			"updated_at":  report.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update report %d: %w", report.ID, err)
	}

	return nil
}

// DeleteByID removes a report, reporting whether a row existed. A zero
// RowsAffected is not an error so concurrent deletes stay idempotent.
func (r *CasinoReportRepositoryImpl) DeleteByID(ctx context.Context, id uint) (bool, error) {
	db := r.getDB(ctx)

	res := db.Where("id = ?", id).Delete(&models.CasinoReport{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete report %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ByFilter retrieves reports based on filter criteria
func (r *CasinoReportRepositoryImpl) ByFilter(ctx context.Context, filter models.CasinoReportFilter, orderBy string, limit, offset int) ([]*models.CasinoReport, error) {
	db := r.getDB(ctx)

	var reports []*models.CasinoReport
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

	query = query.Preload("Casino")

	if err := query.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to find reports by filter: %w", err)
	}

	return reports, nil
}

// Count returns the number of reports matching the filter
func (r *CasinoReportRepositoryImpl) Count(ctx context.Context, filter models.CasinoReportFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.CasinoReport{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}

	return count, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CasinoReportRepositoryImpl) applyFilter(query *gorm.DB, filter models.CasinoReportFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.CasinoID != nil {
		query = query.Where("casino_id = ?", *filter.CasinoID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

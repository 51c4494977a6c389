// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/utils"
	"gorm.io/gorm"
)

// CasinoRepositoryImpl implements CasinoRepository interface
type CasinoRepositoryImpl struct {
	*BaseRepository[models.Casino, models.CasinoFilter]
}

// NewCasinoRepository creates a new casino repository
func NewCasinoRepository(db *gorm.DB) CasinoRepository {
	return &CasinoRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Casino, models.CasinoFilter](db),
	}
}

// ByUUID retrieves a casino with its child relations by UUID
func (r *CasinoRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Casino, error) {
	parsedUUID, err := utils.ParseUUID(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.CasinoFilter{UUID: &parsedUUID}
	casinos, err := r.Search(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(casinos) == 0 {
		return nil, nil
	}
	return casinos[0], nil
}

// Search retrieves casinos matching the filter with ordering and pagination,
// preloading the feature/badge/link child relations.
func (r *CasinoRepositoryImpl) Search(ctx context.Context, filter models.CasinoFilter, orderBy string, limit, offset int) ([]*models.Casino, error) {
	db := r.getDB(ctx)

	var casinos []*models.Casino
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

	query = query.Preload("Features").
		Preload("Badges").
		Preload("Links")

	if err := query.Find(&casinos).Error; err != nil {
		return nil, fmt.Errorf("failed to search casinos: %w", err)
	}

	return casinos, nil
}

// DistinctFeatureLabels returns the distinct feature labels across all casinos
func (r *CasinoRepositoryImpl) DistinctFeatureLabels(ctx context.Context) ([]string, error) {
	db := r.getDB(ctx)

	var labels []string
	err := db.Model(&models.CasinoFeature{}).
		Distinct("label").
		Order("label ASC").
		Pluck("label", &labels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct feature labels: %w", err)
	}
	return labels, nil
}

// DistinctBadgeLabels returns the distinct badge labels across all casinos
func (r *CasinoRepositoryImpl) DistinctBadgeLabels(ctx context.Context) ([]string, error) {
	db := r.getDB(ctx)

	var labels []string
	err := db.Model(&models.CasinoBadge{}).
		Distinct("label").
		Order("label ASC").
		Pluck("label", &labels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct badge labels: %w", err)
	}
	return labels, nil
}

// ByFilter retrieves casinos based on filter criteria
func (r *CasinoRepositoryImpl) ByFilter(ctx context.Context, filter models.CasinoFilter, orderBy string, limit, offset int) ([]*models.Casino, error) {
	return r.Search(ctx, filter, orderBy, limit, offset)
}

// Count returns the number of casinos matching the filter
func (r *CasinoRepositoryImpl) Count(ctx context.Context, filter models.CasinoFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Casino{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count casinos: %w", err)
	}

	return count, nil
}

// applyFilter applies filter criteria to a GORM query
func (r *CasinoRepositoryImpl) applyFilter(query *gorm.DB, filter models.CasinoFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Slug != nil {
		query = query.Where("slug = ?", *filter.Slug)
	}
	if filter.SearchPattern != nil {
		// The caller builds the full ILIKE pattern, wildcards included.
		query = query.Where("name ILIKE ? OR description ILIKE ?", *filter.SearchPattern, *filter.SearchPattern)
	}
	if len(filter.SafetyIndex) > 0 {
		query = query.Where("safety_index IN ?", filter.SafetyIndex)
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if filter.IsHot != nil {
		query = query.Where("is_hot = ?", *filter.IsHot)
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

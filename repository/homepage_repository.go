// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/casinoradar/casinoradar/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HomepageRepositoryImpl implements HomepageRepository interface
type HomepageRepositoryImpl struct {
	DB *gorm.DB
}

// NewHomepageRepository creates a new homepage content repository
func NewHomepageRepository(db *gorm.DB) HomepageRepository {
	return &HomepageRepositoryImpl{DB: db}
}

func (r *HomepageRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.DB
}

// ListBanners retrieves banners ordered by position
func (r *HomepageRepositoryImpl) ListBanners(ctx context.Context, activeOnly bool) ([]*models.HomepageBanner, error) {
	db := r.getDB(ctx)

	query := db.Model(&models.HomepageBanner{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var banners []*models.HomepageBanner
	if err := query.Order("position ASC").Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

// ListStatistics retrieves statistics ordered by position
func (r *HomepageRepositoryImpl) ListStatistics(ctx context.Context) ([]*models.HomepageStatistic, error) {
	db := r.getDB(ctx)

	var stats []*models.HomepageStatistic
	if err := db.Order("position ASC").Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to list statistics: %w", err)
	}
	return stats, nil
}

// ListFeatures retrieves feature tiles ordered by position
func (r *HomepageRepositoryImpl) ListFeatures(ctx context.Context) ([]*models.HomepageFeature, error) {
	db := r.getDB(ctx)

	var features []*models.HomepageFeature
	if err := db.Order("position ASC").Find(&features).Error; err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return features, nil
}

// ListContents retrieves content sections ordered by section name
func (r *HomepageRepositoryImpl) ListContents(ctx context.Context) ([]*models.HomepageContent, error) {
	db := r.getDB(ctx)

	var contents []*models.HomepageContent
	if err := db.Order("section ASC").Find(&contents).Error; err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return contents, nil
}

// SaveBanner inserts a new banner or updates an existing one by primary key
func (r *HomepageRepositoryImpl) SaveBanner(ctx context.Context, banner *models.HomepageBanner) error {
	db := r.getDB(ctx)
	if err := db.Save(banner).Error; err != nil {
		return fmt.Errorf("failed to save banner: %w", err)
	}
	return nil
}

// SaveStatistic inserts a new statistic or updates an existing one by primary key
func (r *HomepageRepositoryImpl) SaveStatistic(ctx context.Context, statistic *models.HomepageStatistic) error {
	db := r.getDB(ctx)
	if err := db.Save(statistic).Error; err != nil {
		return fmt.Errorf("failed to save statistic: %w", err)
	}
	return nil
}

// SaveFeature inserts a new feature tile or updates an existing one by primary key
func (r *HomepageRepositoryImpl) SaveFeature(ctx context.Context, feature *models.HomepageFeature) error {
	db := r.getDB(ctx)
	if err := db.Save(feature).Error; err != nil {
		return fmt.Errorf("failed to save feature: %w", err)
	}
	return nil
}

// UpsertContent inserts or replaces the content body for a section
func (r *HomepageRepositoryImpl) UpsertContent(ctx context.Context, content *models.HomepageContent) error {
	db := r.getDB(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(content).Error
	if err != nil {
		return fmt.Errorf("failed to upsert content section %q: %w", content.Section, err)
	}
	return nil
}

// DeleteBanner removes a banner, reporting whether a row existed
func (r *HomepageRepositoryImpl) DeleteBanner(ctx context.Context, id uint) (bool, error) {
	return r.deleteByID(ctx, &models.HomepageBanner{}, id)
}

// DeleteStatistic removes a statistic, reporting whether a row existed
func (r *HomepageRepositoryImpl) DeleteStatistic(ctx context.Context, id uint) (bool, error) {
	return r.deleteByID(ctx, &models.HomepageStatistic{}, id)
}

// DeleteFeature removes a feature tile, reporting whether a row existed
func (r *HomepageRepositoryImpl) DeleteFeature(ctx context.Context, id uint) (bool, error) {
	return r.deleteByID(ctx, &models.HomepageFeature{}, id)
}

// DeleteContent removes a content section, reporting whether a row existed
func (r *HomepageRepositoryImpl) DeleteContent(ctx context.Context, id uint) (bool, error) {
	return r.deleteByID(ctx, &models.HomepageContent{}, id)
}

func (r *HomepageRepositoryImpl) deleteByID(ctx context.Context, model any, id uint) (bool, error) {
	db := r.getDB(ctx)

	res := db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete homepage entity %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Package models contains domain entities and business models for the casino review platform
package models

import (
	"time"
)

// Homepage content type discriminators
const (
	HomepageTypeBanner    = "banner"
	HomepageTypeStatistic = "statistic"
	HomepageTypeFeature   = "feature"
	HomepageTypeContent   = "content"
)

// ValidHomepageTypes lists the accepted type discriminators.
var ValidHomepageTypes = []string{
	HomepageTypeBanner,
	HomepageTypeStatistic,
	HomepageTypeFeature,
	HomepageTypeContent,
}

// HomepageBanner is a rotating promotional banner.
type HomepageBanner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	ImageURL  string    `gorm:"size:1024;not null" json:"image_url"`
	TargetURL string    `gorm:"size:1024;not null" json:"target_url"`
	Position  int       `gorm:"not null;default:0;index:idx_homepage_banners_position" json:"position"`
	IsActive  *bool     `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (HomepageBanner) TableName() string {
	return "homepage_banners"
}

// HomepageStatistic is one headline number shown on the homepage.
type HomepageStatistic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	Value     string    `gorm:"size:64;not null" json:"value"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (HomepageStatistic) TableName() string {
	return "homepage_statistics"
}

// HomepageFeature is one feature tile shown on the homepage.
type HomepageFeature struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Icon        string    `gorm:"size:128;not null" json:"icon"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (HomepageFeature) TableName() string {
	return "homepage_features"
}

// HomepageContent is a free-form content section keyed by name.
type HomepageContent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Section   string    `gorm:"size:128;not null;uniqueIndex:uk_homepage_contents_section" json:"section"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (HomepageContent) TableName() string {
	return "homepage_contents"
}

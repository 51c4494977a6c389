// Package models contains domain entities and business models for the casino review platform
package models

import (
	"time"

	"github.com/google/uuid"
)

// Safety index values stored on casino rows
const (
	SafetyIndexVeryHigh = "Very High"
	SafetyIndexHigh     = "High"
	SafetyIndexMedium   = "Medium"
	SafetyIndexLow      = "Low"
	SafetyIndexVeryLow  = "Very Low"
)

// Casino link type constants
const (
	LinkTypeBonus     = "bonus"
	LinkTypeReview    = "review"
	LinkTypeComplaint = "complaint"
)

// Casino is a reviewed casino with its child relations.
type Casino struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_casinos_uuid" json:"uuid"`
	Name        string    `gorm:"size:255;not null;index:idx_casinos_name" json:"name"`
	Slug        string    `gorm:"size:255;not null;uniqueIndex:uk_casinos_slug" json:"slug"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	LogoURL     *string   `gorm:"size:1024" json:"logo_url,omitempty"`
	Rating      float64   `gorm:"not null;default:0;index:idx_casinos_rating" json:"rating"`
	SafetyIndex *string   `gorm:"size:16;index:idx_casinos_safety_index" json:"safety_index,omitempty"`
	IsNew       *bool     `gorm:"default:false;index:idx_casinos_is_new" json:"is_new"`
	IsHot       *bool     `gorm:"default:false;index:idx_casinos_is_hot" json:"is_hot"`
	IsFeatured  *bool     `gorm:"default:false;index:idx_casinos_is_featured" json:"is_featured"`
	PlayURL     *string   `gorm:"size:1024" json:"play_url,omitempty"`

	Features []CasinoFeature `gorm:"foreignKey:CasinoID" json:"features,omitempty"`
	Badges   []CasinoBadge   `gorm:"foreignKey:CasinoID" json:"badges,omitempty"`
	Links    []CasinoLink    `gorm:"foreignKey:CasinoID" json:"links,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_casinos_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Casino) TableName() string {
	return "casinos"
}

// CasinoFeature is one feature label attached to a casino.
type CasinoFeature struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CasinoID uint   `gorm:"not null;index:idx_casino_features_casino_id" json:"casino_id"`
	Label    string `gorm:"size:255;not null" json:"label"`
}

func (CasinoFeature) TableName() string {
	return "casino_features"
}

// CasinoBadge is one badge label attached to a casino.
type CasinoBadge struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CasinoID uint   `gorm:"not null;index:idx_casino_badges_casino_id" json:"casino_id"`
	Label    string `gorm:"size:255;not null" json:"label"`
}

func (CasinoBadge) TableName() string {
	return "casino_badges"
}

// CasinoLink is an outbound link of a fixed type attached to a casino.
type CasinoLink struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CasinoID uint   `gorm:"not null;index:idx_casino_links_casino_id" json:"casino_id"`
	LinkType string `gorm:"size:16;not null;index:idx_casino_links_link_type" json:"link_type"`
	URL      string `gorm:"size:1024;not null" json:"url"`
}

func (CasinoLink) TableName() string {
	return "casino_links"
}

// CasinoFilter represents filter criteria for casino queries. SearchPattern
// is a complete ILIKE pattern: LIKE-escaped by the caller, wildcards and all.
type CasinoFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Slug          *string
	SearchPattern *string
	SafetyIndex   []string
	IsNew         *bool
	IsHot         *bool
	IsFeatured    *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

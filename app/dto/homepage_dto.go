package dto

import "encoding/json"

// HomepageUpsertRequest is the tagged-union envelope for homepage writes.
// Type selects the payload shape; Data is decoded by the matching handler.
type HomepageUpsertRequest struct {
	Type string          `json:"type" validate:"required"`
	ID   uint            `json:"id" validate:"omitempty"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// BannerPayload is the banner variant of a homepage write
type BannerPayload struct {
	Title     string `json:"title" validate:"required,max=255"`
	ImageURL  string `json:"image_url" validate:"required,url,max=1024"`
	TargetURL string `json:"target_url" validate:"required,url,max=1024"`
	Position  int    `json:"position" validate:"gte=0"`
	IsActive  *bool  `json:"is_active"`
}

// StatisticPayload is the statistic variant of a homepage write
type StatisticPayload struct {
	Label    string `json:"label" validate:"required,max=255"`
	Value    string `json:"value" validate:"required,max=64"`
	Position int    `json:"position" validate:"gte=0"`
}

// FeaturePayload is the feature-tile variant of a homepage write
type FeaturePayload struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required,max=128"`
	Position    int    `json:"position" validate:"gte=0"`
}

// ContentPayload is the free-form content variant of a homepage write
type ContentPayload struct {
	Section string `json:"section" validate:"required,max=128"`
	Body    string `json:"body" validate:"required"`
}

// HomepageDeleteRequest identifies one homepage entity by type and id
type HomepageDeleteRequest struct {
	Type string `json:"type" validate:"required"`
	ID   uint   `json:"id" validate:"required,gt=0"`
}

// BannerDTO is one homepage banner as rendered to clients
type BannerDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
	Position  int    `json:"position"`
	IsActive  bool   `json:"is_active"`
}

// StatisticDTO is one homepage statistic as rendered to clients
type StatisticDTO struct {
	ID       uint   `json:"id"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

// FeatureDTO is one homepage feature tile as rendered to clients
type FeatureDTO struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Position    int    `json:"position"`
}

// ContentDTO is one homepage content section as rendered to clients
type ContentDTO struct {
	ID      uint   `json:"id"`
	Section string `json:"section"`
	Body    string `json:"body"`
}

// HomepageResponse is the full public homepage content set
type HomepageResponse struct {
	Banners    []BannerDTO    `json:"banners"`
	Statistics []StatisticDTO `json:"statistics"`
	Features   []FeatureDTO   `json:"features"`
	Contents   []ContentDTO   `json:"contents"`
}

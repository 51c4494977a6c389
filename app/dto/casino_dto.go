package dto

// CasinoListQuery carries the raw query-string parameters of a listing
// request before validation. Every field is optional; the query builder
// normalizes or drops whatever does not parse.
type CasinoListQuery struct {
	Page        string `query:"page"`
	Limit       string `query:"limit"`
	Search      string `query:"search"`
	SafetyIndex string `query:"safetyIndex"`
	IsNew       string `query:"isNew"`
	IsHot       string `query:"isHot"`
	IsFeatured  string `query:"isFeatured"`
	SortBy      string `query:"sortBy"`
	SortOrder   string `query:"sortOrder"`
}

// CasinoLinks is the resolved outbound link set of a casino card
type CasinoLinks struct {
	Bonus     string `json:"bonus"`
	Review    string `json:"review"`
	Complaint string `json:"complaint"`
}

// CasinoCard is the public projection of a casino record
type CasinoCard struct {
	ID          uint        `json:"id"`
	UUID        string      `json:"uuid"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	Rating      float64     `json:"rating"`
	SafetyIndex string      `json:"safety_index"`
	IsNew       bool        `json:"is_new"`
	IsHot       bool        `json:"is_hot"`
	IsFeatured  bool        `json:"is_featured"`
	Features    []string    `json:"features"`
	Badges      []string    `json:"badges"`
	Links       CasinoLinks `json:"links"`
}

// CasinoListResponse is the paginated listing envelope
type CasinoListResponse struct {
	Casinos           []CasinoCard `json:"casinos"`
	Total             int64        `json:"total"`
	Page              int          `json:"page"`
	Limit             int          `json:"limit"`
	TotalPages        int          `json:"total_pages"`
	AvailableFeatures []string     `json:"available_features"`
	AvailableBadges   []string     `json:"available_badges"`
}

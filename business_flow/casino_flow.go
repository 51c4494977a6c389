package businessflow

import (
	"context"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
)

// ListingQuery is a normalized, bounded casino listing query. Construct it
// with ParseListingQuery; a zero value is not meaningful.
type ListingQuery struct {
	Page        int
	Limit       int
	Search      string
	SafetyIndex []string
	IsNew       *bool
	IsHot       *bool
	IsFeatured  *bool
	SortField   string
	SortOrder   string
}

// sortFields maps client sort keys to storage columns. Anything outside
// this map sorts by rating, which also keeps arbitrary column names out
// of the order clause.
var sortFields = map[string]string{
	"rating":   "rating",
	"name":     "name",
	"newest":   "created_at",
	"safety":   "safety_index",
	"featured": "rating",
}

// ParseListingQuery normalizes raw listing parameters. Malformed values
// never fail the request; each falls back to its safe default.
func ParseListingQuery(q *dto.CasinoListQuery) ListingQuery {
	return ListingQuery{
		Page:        parsePage(q.Page),
		Limit:       parseLimit(q.Limit),
		Search:      normalizeSearch(q.Search),
		SafetyIndex: parseSafetyIndex(q.SafetyIndex),
		IsNew:       parseOptionalBool(q.IsNew),
		IsHot:       parseOptionalBool(q.IsHot),
		IsFeatured:  parseOptionalBool(q.IsFeatured),
		SortField:   resolveSortField(q.SortBy),
		SortOrder:   resolveSortOrder(q.SortOrder),
	}
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return utils.DefaultPageSize
	}
	if limit < 1 {
		return 1
	}
	if limit > utils.MaxPageSize {
		return utils.MaxPageSize
	}
	return limit
}

// normalizeSearch sanitizes the search term. Overlong input is dropped
// entirely rather than truncated and executed.
func normalizeSearch(raw string) string {
	s := utils.Sanitize(raw)
	if len(s) > utils.MaxSearchLength {
		return ""
	}
	return s
}

// parseSafetyIndex splits a comma-separated value, sanitizing tokens and
// dropping empties. An empty result means unfiltered, never match-nothing.
func parseSafetyIndex(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, token := range strings.Split(raw, ",") {
		if t := utils.Sanitize(token); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseOptionalBool(raw string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func resolveSortField(raw string) string {
	if field, ok := sortFields[raw]; ok {
		return field
	}
	return "rating"
}

// resolveSortOrder treats exactly "asc" as ascending; everything else,
// including casing variants and empty input, sorts descending.
func resolveSortOrder(raw string) string {
	if raw == "asc" {
		return "asc"
	}
	return "desc"
}

// Range returns the zero-based inclusive row range of the page.
func (q ListingQuery) Range() (from, to int) {
	from = (q.Page - 1) * q.Limit
	return from, from + q.Limit - 1
}

// OrderBy renders the validated order clause.
func (q ListingQuery) OrderBy() string {
	return q.SortField + " " + strings.ToUpper(q.SortOrder)
}

// Filter builds the storage filter, LIKE-escaping the search term.
func (q ListingQuery) Filter() models.CasinoFilter {
	filter := models.CasinoFilter{
		SafetyIndex: q.SafetyIndex,
		IsNew:       q.IsNew,
		IsHot:       q.IsHot,
		IsFeatured:  q.IsFeatured,
	}
	if q.Search != "" {
		pattern := "%" + utils.EscapeLike(q.Search) + "%"
		filter.SearchPattern = &pattern
	}
	return filter
}

// CasinoFlow serves the public casino listing and detail surface.
type CasinoFlow interface {
	// List executes a normalized listing query. A page past the end of the
	// data returns an empty page with the true total, not an error.
	List(ctx context.Context, query *dto.CasinoListQuery) (*dto.CasinoListResponse, error)

	// GetBySlug returns one casino card by its slug.
	GetBySlug(ctx context.Context, slug string) (*dto.CasinoCard, error)

	// GetByUUID returns one casino card by its public identifier.
	GetByUUID(ctx context.Context, id string) (*dto.CasinoCard, error)
}

// CasinoFlowImpl implements CasinoFlow
type CasinoFlowImpl struct {
	casinoRepo repository.CasinoRepository
}

// NewCasinoFlow creates a new casino flow
func NewCasinoFlow(casinoRepo repository.CasinoRepository) CasinoFlow {
	return &CasinoFlowImpl{casinoRepo: casinoRepo}
}

// List executes the listing query against storage.
func (f *CasinoFlowImpl) List(ctx context.Context, raw *dto.CasinoListQuery) (*dto.CasinoListResponse, error) {
	query := ParseListingQuery(raw)
	filter := query.Filter()
	from, _ := query.Range()

	casinos, err := f.casinoRepo.Search(ctx, filter, query.OrderBy(), query.Limit, from)
	if err != nil {
		return nil, NewBusinessError("CASINO_LIST_FAILED", "Failed to list casinos", ErrStorageUnavailable)
	}

	total, err := f.casinoRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CASINO_LIST_FAILED", "Failed to count casinos", ErrStorageUnavailable)
	}

	resp := &dto.CasinoListResponse{
		Casinos:           make([]dto.CasinoCard, 0, len(casinos)),
		Total:             total,
		Page:              query.Page,
		Limit:             query.Limit,
		TotalPages:        int(math.Ceil(float64(total) / float64(query.Limit))),
		AvailableFeatures: []string{},
		AvailableBadges:   []string{},
	}
	for _, c := range casinos {
		resp.Casinos = append(resp.Casinos, ProjectCasino(c))
	}

	// The label sets feed filter dropdowns; losing them degrades the UI
	// but must not fail the listing.
	if features, err := f.casinoRepo.DistinctFeatureLabels(ctx); err == nil {
		resp.AvailableFeatures = utils.SanitizeSlice(features)
	} else {
		log.Printf("feature label listing failed: %v", err)
	}
	if badges, err := f.casinoRepo.DistinctBadgeLabels(ctx); err == nil {
		resp.AvailableBadges = utils.SanitizeSlice(badges)
	} else {
		log.Printf("badge label listing failed: %v", err)
	}

	return resp, nil
}

// GetBySlug returns one casino card by slug.
func (f *CasinoFlowImpl) GetBySlug(ctx context.Context, slug string) (*dto.CasinoCard, error) {
	slug = utils.Sanitize(slug)
	if slug == "" {
		return nil, NewBusinessError("CASINO_NOT_FOUND", "Casino not found", ErrCasinoNotFound)
	}

	casinos, err := f.casinoRepo.Search(ctx, models.CasinoFilter{Slug: &slug}, "rating DESC", 1, 0)
	if err != nil {
		return nil, NewBusinessError("CASINO_LOOKUP_FAILED", "Failed to look up casino", ErrStorageUnavailable)
	}
	if len(casinos) == 0 {
		return nil, NewBusinessError("CASINO_NOT_FOUND", "Casino not found", ErrCasinoNotFound)
	}

	card := ProjectCasino(casinos[0])
	return &card, nil
}

// GetByUUID returns one casino card by its public identifier.
func (f *CasinoFlowImpl) GetByUUID(ctx context.Context, id string) (*dto.CasinoCard, error) {
	parsed, err := utils.ParseUUID(id)
	if err != nil {
		return nil, NewBusinessError("CASINO_NOT_FOUND", "Casino not found", ErrCasinoNotFound)
	}

	casino, err := f.casinoRepo.ByUUID(ctx, parsed.String())
	if err != nil {
		return nil, NewBusinessError("CASINO_LOOKUP_FAILED", "Failed to look up casino", ErrStorageUnavailable)
	}
	if casino == nil {
		return nil, NewBusinessError("CASINO_NOT_FOUND", "Casino not found", ErrCasinoNotFound)
	}

	card := ProjectCasino(casino)
	return &card, nil
}

// ProjectCasino maps a casino row into its public card shape. The
// projection is total: any row, however malformed, yields a card.
func ProjectCasino(c *models.Casino) dto.CasinoCard {
	card := dto.CasinoCard{
		ID:          c.ID,
		UUID:        c.UUID.String(),
		Name:        utils.Sanitize(c.Name),
		Slug:        utils.Sanitize(c.Slug),
		Rating:      clampRating(c.Rating),
		SafetyIndex: utils.DefaultSafetyIndex,
		IsNew:       utils.IsTrue(c.IsNew),
		IsHot:       utils.IsTrue(c.IsHot),
		IsFeatured:  utils.IsTrue(c.IsFeatured),
		Features:    []string{},
		Badges:      []string{},
	}
	if c.Description != nil {
		card.Description = utils.Sanitize(*c.Description)
	}
	if c.LogoURL != nil {
		card.LogoURL = utils.Sanitize(*c.LogoURL)
	}
	if c.SafetyIndex != nil {
		if s := utils.Sanitize(*c.SafetyIndex); s != "" {
			card.SafetyIndex = s
		}
	}
	for _, feature := range c.Features {
		if label := utils.Sanitize(feature.Label); label != "" {
			card.Features = append(card.Features, label)
		}
	}
	for _, badge := range c.Badges {
		if label := utils.Sanitize(badge.Label); label != "" {
			card.Badges = append(card.Badges, label)
		}
	}
	card.Links = resolveLinks(c)
	return card
}

func clampRating(r float64) float64 {
	if math.IsNaN(r) {
		return utils.RatingMin
	}
	if r < utils.RatingMin {
		return utils.RatingMin
	}
	if r > utils.RatingMax {
		return utils.RatingMax
	}
	return r
}

// resolveLinks picks the first link of each type. A missing bonus link
// falls back to the play URL before the generic placeholder.
func resolveLinks(c *models.Casino) dto.CasinoLinks {
	links := dto.CasinoLinks{
		Bonus:     utils.FallbackLink,
		Review:    utils.FallbackLink,
		Complaint: utils.FallbackLink,
	}
	if c.PlayURL != nil {
		if u := utils.Sanitize(*c.PlayURL); u != "" {
			links.Bonus = u
		}
	}
	bonusSeen := false
	for _, link := range c.Links {
		u := utils.Sanitize(link.URL)
		if u == "" {
			continue
		}
		switch link.LinkType {
		case models.LinkTypeBonus:
			if !bonusSeen {
				links.Bonus = u
				bonusSeen = true
			}
		case models.LinkTypeReview:
			if links.Review == utils.FallbackLink {
				links.Review = u
			}
		case models.LinkTypeComplaint:
			if links.Complaint == utils.FallbackLink {
				links.Complaint = u
			}
		}
	}
	return links
}

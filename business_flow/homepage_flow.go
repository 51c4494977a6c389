package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/casinoradar/casinoradar/app/dto"
	"github.com/casinoradar/casinoradar/models"
	"github.com/casinoradar/casinoradar/repository"
	"github.com/casinoradar/casinoradar/utils"
	"github.com/go-playground/validator/v10"
)

// HomepageFlow manages homepage content blocks. Writes dispatch on the type
// discriminator to a typed sub-operation per content kind.
type HomepageFlow interface {
	// Get returns the full homepage content set for public rendering.
	Get(ctx context.Context) (*dto.HomepageResponse, error)

	// Upsert creates or updates one content block. An unknown type fails
	// with an error naming the accepted discriminators.
	Upsert(ctx context.Context, req *dto.HomepageUpsertRequest, actor *AdminInfo, metadata *ClientMetadata) error

	// Delete removes one content block by type and id.
	Delete(ctx context.Context, contentType string, id uint, actor *AdminInfo, metadata *ClientMetadata) error
}

// HomepageFlowImpl implements HomepageFlow
type HomepageFlowImpl struct {
	homepageRepo repository.HomepageRepository
	activityFlow ActivityFlow
	validate     *validator.Validate

	// upserts maps each discriminator to its typed sub-operation so adding
	// a content kind means adding exactly one entry and one method.
	upserts map[string]func(ctx context.Context, req *dto.HomepageUpsertRequest) error
	deletes map[string]func(ctx context.Context, id uint) (bool, error)
}

// NewHomepageFlow creates a new homepage flow. activityFlow may be nil.
func NewHomepageFlow(
	homepageRepo repository.HomepageRepository,
	activityFlow ActivityFlow,
) HomepageFlow {
	f := &HomepageFlowImpl{
		homepageRepo: homepageRepo,
		activityFlow: activityFlow,
		validate:     validator.New(),
	}
	f.upserts = map[string]func(ctx context.Context, req *dto.HomepageUpsertRequest) error{
		models.HomepageTypeBanner:    f.upsertBanner,
		models.HomepageTypeStatistic: f.upsertStatistic,
		models.HomepageTypeFeature:   f.upsertFeature,
		models.HomepageTypeContent:   f.upsertContent,
	}
	f.deletes = map[string]func(ctx context.Context, id uint) (bool, error){
		models.HomepageTypeBanner:    homepageRepo.DeleteBanner,
		models.HomepageTypeStatistic: homepageRepo.DeleteStatistic,
		models.HomepageTypeFeature:   homepageRepo.DeleteFeature,
		models.HomepageTypeContent:   homepageRepo.DeleteContent,
	}
	return f
}

func unknownTypeError(contentType string) error {
	return NewBusinessError(
		"INVALID_HOMEPAGE_TYPE",
		fmt.Sprintf("Unknown content type %q, expected one of: %v", contentType, models.ValidHomepageTypes),
		ErrInvalidHomepageType,
	)
}

// Get returns the full homepage content set.
func (f *HomepageFlowImpl) Get(ctx context.Context) (*dto.HomepageResponse, error) {
	resp := &dto.HomepageResponse{
		Banners:    []dto.BannerDTO{},
		Statistics: []dto.StatisticDTO{},
		Features:   []dto.FeatureDTO{},
		Contents:   []dto.ContentDTO{},
	}

	banners, err := f.homepageRepo.ListBanners(ctx, true)
	if err != nil {
		return nil, NewBusinessError("HOMEPAGE_LOAD_FAILED", "Failed to load homepage content", ErrStorageUnavailable)
	}
	for _, b := range banners {
		resp.Banners = append(resp.Banners, dto.BannerDTO{
			ID:        b.ID,
			Title:     b.Title,
			ImageURL:  b.ImageURL,
			TargetURL: b.TargetURL,
			Position:  b.Position,
			IsActive:  utils.IsTrue(b.IsActive),
		})
	}

	statistics, err := f.homepageRepo.ListStatistics(ctx)
	if err != nil {
		return nil, NewBusinessError("HOMEPAGE_LOAD_FAILED", "Failed to load homepage content", ErrStorageUnavailable)
	}
	for _, s := range statistics {
		resp.Statistics = append(resp.Statistics, dto.StatisticDTO{
			ID:       s.ID,
			Label:    s.Label,
			Value:    s.Value,
			Position: s.Position,
		})
	}

	features, err := f.homepageRepo.ListFeatures(ctx)
	if err != nil {
		return nil, NewBusinessError("HOMEPAGE_LOAD_FAILED", "Failed to load homepage content", ErrStorageUnavailable)
	}
	for _, ft := range features {
		resp.Features = append(resp.Features, dto.FeatureDTO{
			ID:          ft.ID,
			Title:       ft.Title,
			Description: ft.Description,
			Icon:        ft.Icon,
			Position:    ft.Position,
		})
	}

	contents, err := f.homepageRepo.ListContents(ctx)
	if err != nil {
		return nil, NewBusinessError("HOMEPAGE_LOAD_FAILED", "Failed to load homepage content", ErrStorageUnavailable)
	}
	for _, c := range contents {
		resp.Contents = append(resp.Contents, dto.ContentDTO{
			ID:      c.ID,
			Section: c.Section,
			Body:    c.Body,
		})
	}

	return resp, nil
}

// Upsert dispatches a write to the sub-operation for its type.
func (f *HomepageFlowImpl) Upsert(ctx context.Context, req *dto.HomepageUpsertRequest, actor *AdminInfo, metadata *ClientMetadata) error {
	apply, ok := f.upserts[req.Type]
	if !ok {
		return unknownTypeError(req.Type)
	}
	if err := apply(ctx, req); err != nil {
		return err
	}

	f.record(ctx, actor, models.ActionHomepageUpdated, req.Type, req.ID, metadata)
	return nil
}

// Delete removes one content block by type and id.
func (f *HomepageFlowImpl) Delete(ctx context.Context, contentType string, id uint, actor *AdminInfo, metadata *ClientMetadata) error {
	remove, ok := f.deletes[contentType]
	if !ok {
		return unknownTypeError(contentType)
	}

	existed, err := remove(ctx, id)
	if err != nil {
		return NewBusinessError("HOMEPAGE_DELETE_FAILED", "Failed to delete homepage content", ErrStorageUnavailable)
	}
	if !existed {
		return NewBusinessError("HOMEPAGE_NOT_FOUND", "Homepage entity not found", ErrHomepageNotFound)
	}

	f.record(ctx, actor, models.ActionHomepageDeleted, contentType, id, metadata)
	return nil
}

func (f *HomepageFlowImpl) decode(req *dto.HomepageUpsertRequest, payload any) error {
	if err := json.Unmarshal(req.Data, payload); err != nil {
		return NewBusinessError("INVALID_HOMEPAGE_PAYLOAD", fmt.Sprintf("Malformed %s payload", req.Type), err)
	}
	if err := f.validate.Struct(payload); err != nil {
		return NewBusinessError("INVALID_HOMEPAGE_PAYLOAD", fmt.Sprintf("Invalid %s payload", req.Type), err)
	}
	return nil
}

func (f *HomepageFlowImpl) upsertBanner(ctx context.Context, req *dto.HomepageUpsertRequest) error {
	var payload dto.BannerPayload
	if err := f.decode(req, &payload); err != nil {
		return err
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}
	banner := &models.HomepageBanner{
		ID:        req.ID,
		Title:     utils.Sanitize(payload.Title),
		ImageURL:  payload.ImageURL,
		TargetURL: payload.TargetURL,
		Position:  payload.Position,
		IsActive:  &isActive,
		UpdatedAt: utils.UTCNow(),
	}
	if err := f.homepageRepo.SaveBanner(ctx, banner); err != nil {
		return NewBusinessError("HOMEPAGE_SAVE_FAILED", "Failed to save banner", ErrStorageUnavailable)
	}
	return nil
}

func (f *HomepageFlowImpl) upsertStatistic(ctx context.Context, req *dto.HomepageUpsertRequest) error {
	var payload dto.StatisticPayload
	if err := f.decode(req, &payload); err != nil {
		return err
	}

	statistic := &models.HomepageStatistic{
		ID:        req.ID,
		Label:     utils.Sanitize(payload.Label),
		Value:     utils.Sanitize(payload.Value),
		Position:  payload.Position,
		UpdatedAt: utils.UTCNow(),
	}
	if err := f.homepageRepo.SaveStatistic(ctx, statistic); err != nil {
		return NewBusinessError("HOMEPAGE_SAVE_FAILED", "Failed to save statistic", ErrStorageUnavailable)
	}
	return nil
}

func (f *HomepageFlowImpl) upsertFeature(ctx context.Context, req *dto.HomepageUpsertRequest) error {
	var payload dto.FeaturePayload
	if err := f.decode(req, &payload); err != nil {
		return err
	}

	feature := &models.HomepageFeature{
		ID:          req.ID,
		Title:       utils.Sanitize(payload.Title),
		Description: utils.Sanitize(payload.Description),
		Icon:        utils.Sanitize(payload.Icon),
		Position:    payload.Position,
		UpdatedAt:   utils.UTCNow(),
	}
	if err := f.homepageRepo.SaveFeature(ctx, feature); err != nil {
		return NewBusinessError("HOMEPAGE_SAVE_FAILED", "Failed to save feature", ErrStorageUnavailable)
	}
	return nil
}

func (f *HomepageFlowImpl) upsertContent(ctx context.Context, req *dto.HomepageUpsertRequest) error {
	var payload dto.ContentPayload
	if err := f.decode(req, &payload); err != nil {
		return err
	}

	content := &models.HomepageContent{
		ID:        req.ID,
		Section:   utils.Sanitize(payload.Section),
		Body:      utils.Sanitize(payload.Body),
		UpdatedAt: utils.UTCNow(),
	}
	if err := f.homepageRepo.UpsertContent(ctx, content); err != nil {
		return NewBusinessError("HOMEPAGE_SAVE_FAILED", "Failed to save content section", ErrStorageUnavailable)
	}
	return nil
}

func (f *HomepageFlowImpl) record(ctx context.Context, actor *AdminInfo, action, contentType string, id uint, metadata *ClientMetadata) {
	if f.activityFlow == nil {
		return
	}
	entry := ActivityEntry{
		Action:       action,
		ResourceType: "homepage_" + contentType,
		Severity:     models.SeverityInfo,
		Metadata:     metadata,
	}
	if id != 0 {
		entry.ResourceID = itoa(id)
	}
	f.activityFlow.Record(ctx, actor, entry)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
)

type campaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error)
	Update(ctx context.Context, campaign *models.Campaign) error
	Delete(ctx context.Context, id string) error
}

type submissionReader interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]models.Submission, error)
	CountByCampaign(ctx context.Context, campaignID string) (accepted, declined int, err error)
}

// CampaignService coordinates admin campaign management.
type CampaignService struct {
	campaigns   campaignRepository
	submissions submissionReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCampaignService constructs CampaignService.
func NewCampaignService(campaigns campaignRepository, submissions submissionReader, validate *validator.Validate, logger *zap.Logger) *CampaignService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignService{campaigns: campaigns, submissions: submissions, validator: validate, logger: logger}
}

// List returns campaigns with pagination metadata.
func (s *CampaignService) List(ctx context.Context, query dto.CampaignQuery) ([]models.Campaign, *models.Pagination, error) {
	filter := models.CampaignFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.Status != "" {
		status := models.CampaignStatus(strings.ToUpper(query.Status))
		filter.Status = &status
	}

	campaigns, total, err := s.campaigns.List(ctx, filter)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to list campaigns")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return campaigns, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one campaign by ID.
func (s *CampaignService) Get(ctx context.Context, id string) (*models.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to load campaign")
	}
	return campaign, nil
}

// Create adds a campaign. A missing slug is derived from the title; slug
// collisions surface as conflicts.
func (s *CampaignService) Create(ctx context.Context, req dto.CreateCampaignRequest, createdBy string) (*models.Campaign, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid campaign payload")
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Title)
	}
	if existing, err := s.campaigns.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, apperrors.Clone(apperrors.ErrConflict, "slug already in use")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to check slug")
	}

	campaign := &models.Campaign{
		Slug:               slug,
		Title:              req.Title,
		Summary:            req.Summary,
		Platforms:          req.Platforms,
		Deadline:           req.Deadline,
		Restrictions:       req.Restrictions,
		NDAText:            req.NDAText,
		AcceptanceRequired: req.AcceptanceRequired,
		ImageURLs:          models.StringList(req.ImageURLs),
		AttachmentURLs:     models.StringList(req.AttachmentURLs),
		Status:             models.CampaignStatusDraft,
		CreatedBy:          createdBy,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to create campaign")
	}
	s.logger.Info("campaign created", zap.String("campaign_id", campaign.ID), zap.String("slug", campaign.Slug))
	return campaign, nil
}

// Update applies the provided fields to an existing campaign.
func (s *CampaignService) Update(ctx context.Context, id string, req dto.UpdateCampaignRequest) (*models.Campaign, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid campaign payload")
	}
	campaign, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		campaign.Title = *req.Title
	}
	if req.Summary != nil {
		campaign.Summary = *req.Summary
	}
	if req.Platforms != nil {
		campaign.Platforms = *req.Platforms
	}
	if req.Deadline != nil {
		campaign.Deadline = req.Deadline
	}
	if req.Restrictions != nil {
		campaign.Restrictions = *req.Restrictions
	}
	if req.NDAText != nil {
		campaign.NDAText = *req.NDAText
	}
	if req.AcceptanceRequired != nil {
		campaign.AcceptanceRequired = *req.AcceptanceRequired
	}
	if req.ImageURLs != nil {
		campaign.ImageURLs = models.StringList(*req.ImageURLs)
	}
	if req.AttachmentURLs != nil {
		campaign.AttachmentURLs = models.StringList(*req.AttachmentURLs)
	}
	if req.Status != nil {
		if !validCampaignStatus(*req.Status) {
			return nil, apperrors.Clone(apperrors.ErrValidation, "unknown campaign status")
		}
		campaign.Status = *req.Status
	}

	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to update campaign")
	}
	return campaign, nil
}

// Delete archives a campaign row. Submissions are kept for reporting.
func (s *CampaignService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to delete campaign")
	}
	return nil
}

// Submissions lists a campaign's stored submissions with accept/decline tallies.
func (s *CampaignService) Submissions(ctx context.Context, campaignID string) ([]models.Submission, int, int, error) {
	if _, err := s.Get(ctx, campaignID); err != nil {
		return nil, 0, 0, err
	}
	submissions, err := s.submissions.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, 0, 0, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to list submissions")
	}
	accepted, declined, err := s.submissions.CountByCampaign(ctx, campaignID)
	if err != nil {
		return nil, 0, 0, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to count submissions")
	}
	return submissions, accepted, declined, nil
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugCleanup.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func validCampaignStatus(status models.CampaignStatus) bool {
	switch status {
	case models.CampaignStatusDraft, models.CampaignStatusActive, models.CampaignStatusClosed, models.CampaignStatusArchived:
		return true
	default:
		return false
	}
}

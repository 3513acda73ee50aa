package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
)

type campaignRepoStub struct {
	byID      map[string]*models.Campaign
	bySlug    map[string]*models.Campaign
	listErr   error
	created   []*models.Campaign
	updated   []*models.Campaign
	deleted   []string
	listed    []models.Campaign
	listTotal int
}

func newCampaignRepoStub() *campaignRepoStub {
	return &campaignRepoStub{
		byID:   make(map[string]*models.Campaign),
		bySlug: make(map[string]*models.Campaign),
	}
}

func (s *campaignRepoStub) add(campaign *models.Campaign) {
	s.byID[campaign.ID] = campaign
	s.bySlug[campaign.Slug] = campaign
}

func (s *campaignRepoStub) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = "camp-new"
	s.created = append(s.created, campaign)
	s.add(campaign)
	return nil
}

func (s *campaignRepoStub) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	if campaign, ok := s.byID[id]; ok {
		return campaign, nil
	}
	return nil, sql.ErrNoRows
}

func (s *campaignRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	if campaign, ok := s.bySlug[slug]; ok {
		return campaign, nil
	}
	return nil, sql.ErrNoRows
}

func (s *campaignRepoStub) List(ctx context.Context, filter models.CampaignFilter) ([]models.Campaign, int, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.listed, s.listTotal, nil
}

func (s *campaignRepoStub) Update(ctx context.Context, campaign *models.Campaign) error {
	s.updated = append(s.updated, campaign)
	return nil
}

func (s *campaignRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type submissionReaderStub struct {
	submissions []models.Submission
	accepted    int
	declined    int
}

func (s *submissionReaderStub) ListByCampaign(ctx context.Context, campaignID string) ([]models.Submission, error) {
	return s.submissions, nil
}

func (s *submissionReaderStub) CountByCampaign(ctx context.Context, campaignID string) (int, int, error) {
	return s.accepted, s.declined, nil
}

func TestCampaignServiceCreateDerivesSlug(t *testing.T) {
	repo := newCampaignRepoStub()
	svc := NewCampaignService(repo, &submissionReaderStub{}, nil, nil)

	campaign, err := svc.Create(context.Background(), dto.CreateCampaignRequest{
		Title: "Summer Launch 2026!",
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "summer-launch-2026", campaign.Slug)
	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
	assert.Equal(t, "admin-1", campaign.CreatedBy)
}

func TestCampaignServiceCreateSlugCollision(t *testing.T) {
	repo := newCampaignRepoStub()
	repo.add(&models.Campaign{ID: "camp-1", Slug: "summer-launch", Status: models.CampaignStatusActive})
	svc := NewCampaignService(repo, &submissionReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateCampaignRequest{
		Title: "Other",
		Slug:  "summer-launch",
	}, "admin-1")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrConflict.Code, appErr.Code)
}

func TestCampaignServiceCreateRejectsShortTitle(t *testing.T) {
	svc := NewCampaignService(newCampaignRepoStub(), &submissionReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateCampaignRequest{Title: "ab"}, "admin-1")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}

func TestCampaignServiceGetNotFound(t *testing.T) {
	svc := NewCampaignService(newCampaignRepoStub(), &submissionReaderStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)
}

func TestCampaignServiceUpdateMergesFields(t *testing.T) {
	repo := newCampaignRepoStub()
	repo.add(&models.Campaign{ID: "camp-1", Slug: "summer-launch", Title: "Summer Launch", Status: models.CampaignStatusDraft})
	svc := NewCampaignService(repo, &submissionReaderStub{}, nil, nil)

	title := "Summer Launch v2"
	status := models.CampaignStatusActive
	campaign, err := svc.Update(context.Background(), "camp-1", dto.UpdateCampaignRequest{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Summer Launch v2", campaign.Title)
	assert.Equal(t, models.CampaignStatusActive, campaign.Status)
	assert.Equal(t, "summer-launch", campaign.Slug)
	require.Len(t, repo.updated, 1)
}

func TestCampaignServiceUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newCampaignRepoStub()
	repo.add(&models.Campaign{ID: "camp-1", Slug: "summer-launch", Title: "Summer Launch", Status: models.CampaignStatusDraft})
	svc := NewCampaignService(repo, &submissionReaderStub{}, nil, nil)

	bogus := models.CampaignStatus("PAUSED")
	_, err := svc.Update(context.Background(), "camp-1", dto.UpdateCampaignRequest{Status: &bogus})
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}

func TestCampaignServiceSubmissionsTallies(t *testing.T) {
	repo := newCampaignRepoStub()
	repo.add(&models.Campaign{ID: "camp-1", Slug: "summer-launch", Title: "Summer Launch", Status: models.CampaignStatusActive})
	reader := &submissionReaderStub{
		submissions: []models.Submission{{ID: "sub-1"}, {ID: "sub-2"}},
		accepted:    1,
		declined:    1,
	}
	svc := NewCampaignService(repo, reader, nil, nil)

	submissions, accepted, declined, err := svc.Submissions(context.Background(), "camp-1")
	require.NoError(t, err)
	assert.Len(t, submissions, 2)
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, declined)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "summer-launch-2026", Slugify("  Summer Launch 2026!  "))
	assert.Equal(t, "caf-collab", Slugify("Café Collab"))
	assert.Equal(t, "", Slugify("!!!"))
}

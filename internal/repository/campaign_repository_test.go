package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func campaignRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "title", "summary", "platforms", "deadline", "restrictions",
		"nda_text", "acceptance_required", "image_urls", "attachment_urls",
		"status", "created_by", "created_at", "updated_at",
	})
}

func TestCampaignRepositoryGetBySlug(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	rows := campaignRows().AddRow(
		"camp-1", "summer-launch", "Summer Launch", "Product seeding", []byte(`[{"platform":"instagram"}]`),
		nil, "", "NDA body", true, []byte(`[]`), []byte(`[]`),
		"ACTIVE", "admin-1", time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE slug =").
		WithArgs("summer-launch").
		WillReturnRows(rows)

	campaign, err := repo.GetBySlug(context.Background(), "summer-launch")
	require.NoError(t, err)
	assert.Equal(t, "camp-1", campaign.ID)
	assert.Equal(t, "Summer Launch", campaign.Title)
	require.Len(t, campaign.Platforms, 1)
	assert.Equal(t, models.PlatformInstagram, campaign.Platforms[0].Platform)
}

func TestCampaignRepositoryGetBySlugNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE slug =").
		WithArgs("missing").
		WillReturnRows(campaignRows())

	_, err := repo.GetBySlug(context.Background(), "missing")
	require.Error(t, err)
}

func TestCampaignRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectExec("INSERT INTO campaigns").
		WillReturnResult(sqlmock.NewResult(1, 1))

	campaign := &models.Campaign{
		Slug:      "summer-launch",
		Title:     "Summer Launch",
		CreatedBy: "admin-1",
	}
	require.NoError(t, repo.Create(context.Background(), campaign))
	assert.NotEmpty(t, campaign.ID)
	assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
}

func TestCampaignRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewCampaignRepository(db)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("ACTIVE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM campaigns WHERE 1=1 AND status =").
		WithArgs("ACTIVE", 20, 0).
		WillReturnRows(campaignRows().AddRow(
			"camp-1", "summer-launch", "Summer Launch", "", []byte(`[]`),
			nil, "", "", false, []byte(`[]`), []byte(`[]`),
			"ACTIVE", "admin-1", time.Now(), time.Now(),
		))

	status := models.CampaignStatusActive
	campaigns, total, err := repo.List(context.Background(), models.CampaignFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "summer-launch", campaigns[0].Slug)
}

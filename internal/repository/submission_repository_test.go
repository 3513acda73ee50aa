package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestSubmissionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	mock.ExpectExec("INSERT INTO submissions").
		WillReturnResult(sqlmock.NewResult(1, 1))

	fee := int64(50000)
	submission := &models.Submission{
		CampaignID:     "camp-1",
		SessionID:      "sess-1",
		CanParticipate: true,
		DisplayName:    "Creator One",
		Email:          "creator@example.com",
		Phone:          "090-1234-5678",
		ContactMethods: models.StringList{"email"},
		Instagram:      strPtr("@creator1"),
		FeeAmount:      &fee,
	}
	require.NoError(t, repo.Create(context.Background(), submission))
	assert.NotEmpty(t, submission.ID)
	assert.False(t, submission.CreatedAt.IsZero())
}

func TestSubmissionRepositoryListByCampaign(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	rows := sqlmock.NewRows([]string{
		"id", "campaign_id", "session_id", "can_participate", "display_name", "email", "phone",
		"messaging_id", "contact_methods", "instagram", "youtube", "tiktok", "red", "x",
		"other_platforms", "follower_stats", "fee_amount", "gender_ratio", "attachments",
		"decline_reason", "created_at",
	}).AddRow(
		"sub-1", "camp-1", "sess-1", true, "Creator One", "creator@example.com", "090-1234-5678",
		nil, []byte(`["email"]`), "@creator1", nil, nil, nil, nil,
		[]byte(`[]`), []byte(`{"instagram":{"count":12000,"fetched_at":"2026-08-01T00:00:00Z"}}`), 50000, nil, []byte(`[]`),
		nil, time.Now(),
	)
	mock.ExpectQuery("SELECT (.+) FROM submissions WHERE campaign_id =").
		WithArgs("camp-1").
		WillReturnRows(rows)

	submissions, err := repo.ListByCampaign(context.Background(), "camp-1")
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.True(t, submissions[0].CanParticipate)
	require.NotNil(t, submissions[0].Instagram)
	assert.Equal(t, "@creator1", *submissions[0].Instagram)
	assert.Equal(t, int64(12000), submissions[0].FollowerStats["instagram"].Count)
}

func TestSubmissionRepositoryCountByCampaign(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewSubmissionRepository(db)
	mock.ExpectQuery("SELECT").
		WithArgs("camp-1").
		WillReturnRows(sqlmock.NewRows([]string{"accepted", "declined"}).AddRow(7, 3))

	accepted, declined, err := repo.CountByCampaign(context.Background(), "camp-1")
	require.NoError(t, err)
	assert.Equal(t, 7, accepted)
	assert.Equal(t, 3, declined)
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

const submissionColumns = `id, campaign_id, session_id, can_participate, display_name, email, phone, messaging_id, contact_methods, instagram, youtube, tiktok, red, x, other_platforms, follower_stats, fee_amount, gender_ratio, attachments, decline_reason, created_at`

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// SubmissionRepository persists normalized wizard submissions.
type SubmissionRepository struct {
	db       *sqlx.DB
	observer queryObserver
}

// NewSubmissionRepository constructs the repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Instrument attaches a query-latency observer.
func (r *SubmissionRepository) Instrument(observer queryObserver) *SubmissionRepository {
	r.observer = observer
	return r
}

func (r *SubmissionRepository) observe(label string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveDBQuery(label, time.Since(start))
	}
}

// Create inserts a submission row. One row per session and decision.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	defer r.observe("submission_create", time.Now())
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO submissions (id, campaign_id, session_id, can_participate, display_name, email, phone, messaging_id, contact_methods, instagram, youtube, tiktok, red, x, other_platforms, follower_stats, fee_amount, gender_ratio, attachments, decline_reason, created_at)
VALUES (:id, :campaign_id, :session_id, :can_participate, :display_name, :email, :phone, :messaging_id, :contact_methods, :instagram, :youtube, :tiktok, :red, :x, :other_platforms, :follower_stats, :fee_amount, :gender_ratio, :attachments, :decline_reason, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, submission); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// GetByID returns a submission by identifier.
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE id = $1 LIMIT 1`, submissionColumns)
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, id); err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByCampaign returns all submissions for a campaign, newest first.
func (r *SubmissionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]models.Submission, error) {
	defer r.observe("submission_list", time.Now())
	query := fmt.Sprintf(`SELECT %s FROM submissions WHERE campaign_id = $1 ORDER BY created_at DESC`, submissionColumns)
	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, campaignID); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// CountByCampaign returns accepted/declined totals for dashboards.
func (r *SubmissionRepository) CountByCampaign(ctx context.Context, campaignID string) (accepted, declined int, err error) {
	const query = `SELECT
    COUNT(*) FILTER (WHERE can_participate) AS accepted,
    COUNT(*) FILTER (WHERE NOT can_participate) AS declined
FROM submissions WHERE campaign_id = $1`
	row := r.db.QueryRowxContext(ctx, query, campaignID)
	if err := row.Scan(&accepted, &declined); err != nil {
		return 0, 0, fmt.Errorf("count submissions: %w", err)
	}
	return accepted, declined, nil
}

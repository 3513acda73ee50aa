package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/repository"
	"github.com/noah-isme/creator-campaign-api/internal/validation"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
)

type wizardCampaignReader interface {
	GetBySlug(ctx context.Context, slug string) (*models.Campaign, error)
	GetByID(ctx context.Context, id string) (*models.Campaign, error)
}

type wizardSessionStore interface {
	Save(ctx context.Context, session *models.WizardSession) error
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Delete(ctx context.Context, id string) error
}

type submissionWriter interface {
	Create(ctx context.Context, submission *models.Submission) error
}

type stepObserver interface {
	ObserveStepTransition(from, to models.WizardStep)
}

// WizardConfig tunes the wizard service.
type WizardConfig struct {
	SubmitTimeout  time.Duration
	MaxAccountRows int
}

// WizardService drives the public submission walkthrough: a four-step
// machine (nda, campaign_detail, form, thanks) branching on the accept or
// decline decision, plus a not_found terminal for vanished campaigns.
type WizardService struct {
	campaigns   wizardCampaignReader
	sessions    wizardSessionStore
	submissions submissionWriter
	assembler   *SubmissionAssembler
	observer    stepObserver
	logger      *zap.Logger
	cfg         WizardConfig
}

// NewWizardService constructs a WizardService.
func NewWizardService(campaigns wizardCampaignReader, sessions wizardSessionStore, submissions submissionWriter, assembler *SubmissionAssembler, observer stepObserver, cfg WizardConfig, logger *zap.Logger) *WizardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assembler == nil {
		assembler = NewSubmissionAssembler()
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = 10 * time.Second
	}
	if cfg.MaxAccountRows <= 0 {
		cfg.MaxAccountRows = 10
	}
	return &WizardService{
		campaigns:   campaigns,
		sessions:    sessions,
		submissions: submissions,
		assembler:   assembler,
		observer:    observer,
		logger:      logger,
		cfg:         cfg,
	}
}

// Start resolves the campaign by slug and opens a fresh session at the NDA
// step with a single empty account row. A missing or inactive campaign never
// yields a blank session.
func (s *WizardService) Start(ctx context.Context, slug string, preview bool) (*models.WizardSession, error) {
	campaign, err := s.campaigns.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to load campaign")
	}
	if !s.campaignVisible(campaign, preview) {
		return nil, apperrors.ErrCampaignNotFound
	}

	now := time.Now().UTC()
	session := &models.WizardSession{
		ID:         uuid.NewString(),
		CampaignID: campaign.ID,
		Slug:       campaign.Slug,
		Step:       models.StepNDA,
		Decision:   models.DecisionUndecided,
		Preview:    preview,
		Rows:       []models.SocialAccountRow{newAccountRow()},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to open session")
	}
	s.observe("", models.StepNDA)
	return session, nil
}

// State returns the live session for the host UI.
func (s *WizardService) State(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.loadSession(ctx, sessionID)
}

// Acknowledge advances nda to campaign_detail, resolving and caching the
// campaign snapshot exactly once per session. A campaign that vanished since
// the session opened moves it to the not_found terminal.
func (s *WizardService) Acknowledge(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepNDA {
		return nil, apperrors.ErrStepOrder
	}

	if session.Snapshot == nil {
		campaign, err := s.campaigns.GetByID(ctx, session.CampaignID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return s.transition(ctx, session, models.StepNotFound)
			}
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to load campaign")
		}
		if !s.campaignVisible(campaign, session.Preview) {
			return s.transition(ctx, session, models.StepNotFound)
		}
		session.Snapshot = campaign.Snapshot()
	}
	return s.transition(ctx, session, models.StepCampaignDetail)
}

// Accept records an accepted decision and enters the form step. Re-entry via
// Back may flip an earlier decision.
func (s *WizardService) Accept(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.decide(ctx, sessionID, models.DecisionAccepted)
}

// Decline records a declined decision and enters the form step.
func (s *WizardService) Decline(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	return s.decide(ctx, sessionID, models.DecisionDeclined)
}

func (s *WizardService) decide(ctx context.Context, sessionID string, decision models.Decision) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepCampaignDetail {
		return nil, apperrors.ErrStepOrder
	}
	session.Decision = decision
	return s.transition(ctx, session, models.StepForm)
}

// Back moves exactly one step backwards. The decision is kept so a returning
// collaborator finds the form variant they left.
func (s *WizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Step {
	case models.StepForm:
		return s.transition(ctx, session, models.StepCampaignDetail)
	case models.StepCampaignDetail:
		return s.transition(ctx, session, models.StepNDA)
	default:
		return nil, apperrors.ErrStepOrder
	}
}

// Restart resets a finished session back to the NDA step. Only the thanks
// step allows it; the cached campaign snapshot survives.
func (s *WizardService) Restart(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepThanks {
		return nil, apperrors.ErrStepOrder
	}
	session.Decision = models.DecisionUndecided
	session.Rows = []models.SocialAccountRow{newAccountRow()}
	session.Errors = nil
	session.Submitting = false
	session.UploadURLs = nil
	return s.transition(ctx, session, models.StepNDA)
}

// AddRow appends a new account row on the form step.
func (s *WizardService) AddRow(ctx context.Context, sessionID string, req dto.RowRequest) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepForm {
		return nil, apperrors.ErrStepOrder
	}
	if len(session.Rows) >= s.cfg.MaxAccountRows {
		return nil, apperrors.Clone(apperrors.ErrConflict, "account row limit reached")
	}
	if req.Platform != "" && !req.Platform.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown platform")
	}

	row := newAccountRow()
	if req.Platform != "" {
		row.Platform = req.Platform
	}
	row.Value = req.Value
	session.Rows = append(session.Rows, row)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}
	return session, nil
}

// UpdateRow rewrites a row's platform or typed value. Changing either resets
// the enrichment state so stale follower counts never survive an edit.
func (s *WizardService) UpdateRow(ctx context.Context, sessionID, rowID string, req dto.RowRequest) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepForm {
		return nil, apperrors.ErrStepOrder
	}
	row := session.Row(rowID)
	if row == nil {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "account row not found")
	}
	if req.Platform != "" && !req.Platform.Valid() {
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown platform")
	}

	changed := (req.Platform != "" && req.Platform != row.Platform) || req.Value != row.Value
	if req.Platform != "" {
		row.Platform = req.Platform
	}
	row.Value = req.Value
	if changed {
		row.FollowerCount = nil
		row.FetchedAt = nil
		row.FetchState = models.FetchStateIdle
		row.FetchMessage = ""
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}
	return session, nil
}

// RemoveRow deletes a row. In-flight enrichment for the removed row is
// dropped when it lands because the row ID no longer resolves.
func (s *WizardService) RemoveRow(ctx context.Context, sessionID, rowID string) (*models.WizardSession, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepForm {
		return nil, apperrors.ErrStepOrder
	}
	if !session.RemoveRow(rowID) {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "account row not found")
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}
	return session, nil
}

// SubmitAccept validates the accept-path form and, when clean, persists the
// submission and advances to thanks. A non-empty error set leaves the step
// unchanged with the errors surfaced on the session. Preview sessions skip
// persistence but walk the same transition.
func (s *WizardService) SubmitAccept(ctx context.Context, sessionID string, req dto.AcceptSubmissionRequest) (*models.WizardSession, *models.Submission, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != models.StepForm || session.Decision != models.DecisionAccepted {
		return nil, nil, apperrors.ErrStepOrder
	}
	if session.Submitting {
		return nil, nil, apperrors.ErrSubmitInFlight
	}

	req.Attachments = append(req.Attachments, session.UploadURLs...)
	submission, errs := s.assembler.Assemble(session.CampaignID, session.ID, req, session.Rows)
	if !errs.Empty() {
		session.Errors = map[string]string(errs)
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
		}
		return session, nil, apperrors.WithFields(apperrors.ErrValidation, map[string]string(errs))
	}

	return s.persistAndFinish(ctx, session, submission)
}

// SubmitDecline records a decline. When the collaborator opts into future
// contact an email or messaging ID is required; otherwise a minimal record
// with the placeholder email is written.
func (s *WizardService) SubmitDecline(ctx context.Context, sessionID string, req dto.DeclineSubmissionRequest) (*models.WizardSession, *models.Submission, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != models.StepForm || session.Decision != models.DecisionDeclined {
		return nil, nil, apperrors.ErrStepOrder
	}
	if session.Submitting {
		return nil, nil, apperrors.ErrSubmitInFlight
	}

	errs := validation.NewErrorSet()
	if req.WantsContact && req.Email == "" && req.MessagingID == "" {
		errs.Add("contact", "Leave an email address or messaging ID so we can reach you about future campaigns.")
	}
	if req.Email != "" {
		if fieldErr := validation.ValidateEmail(req.Email); fieldErr != nil {
			errs.Add("email", fieldErr.Message)
		}
	}
	if !errs.Empty() {
		session.Errors = map[string]string(errs)
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
		}
		return session, nil, apperrors.WithFields(apperrors.ErrValidation, map[string]string(errs))
	}

	email := req.Email
	if email == "" {
		email = models.DeclinedPlaceholderEmail
	}
	submission := &models.Submission{
		CampaignID:     session.CampaignID,
		SessionID:      session.ID,
		CanParticipate: false,
		Email:          email,
		ContactMethods: models.StringList{},
		OtherPlatforms: models.OtherPlatformList{},
		FollowerStats:  models.FollowerStatMap{},
		Attachments:    models.StringList{},
	}
	if req.MessagingID != "" {
		messagingID := req.MessagingID
		submission.MessagingID = &messagingID
	}
	if req.Reason != "" {
		reason := req.Reason
		submission.DeclineReason = &reason
	}

	return s.persistAndFinish(ctx, session, submission)
}

func (s *WizardService) persistAndFinish(ctx context.Context, session *models.WizardSession, submission *models.Submission) (*models.WizardSession, *models.Submission, error) {
	session.Submitting = true
	session.Errors = nil
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}

	if session.Preview {
		s.logger.Info("preview submission skipped persistence",
			zap.String("session_id", session.ID),
			zap.String("campaign_id", session.CampaignID),
			zap.Bool("can_participate", submission.CanParticipate))
	} else {
		persistCtx, cancel := context.WithTimeout(ctx, s.cfg.SubmitTimeout)
		defer cancel()
		if err := s.submissions.Create(persistCtx, submission); err != nil {
			s.logger.Error("submission persistence failed",
				zap.String("session_id", session.ID),
				zap.Error(err))
			session.Submitting = false
			if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
				s.logger.Error("failed to clear submitting flag", zap.String("session_id", session.ID), zap.Error(saveErr))
			}
			return nil, nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, apperrors.ErrPersistence.Status, apperrors.ErrPersistence.Message)
		}
	}

	session.Submitting = false
	finished, err := s.transition(ctx, session, models.StepThanks)
	if err != nil {
		return nil, nil, err
	}
	return finished, submission, nil
}

func (s *WizardService) loadSession(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionMissing) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

func (s *WizardService) transition(ctx context.Context, session *models.WizardSession, to models.WizardStep) (*models.WizardSession, error) {
	from := session.Step
	session.Step = to
	if err := s.sessions.Save(ctx, session); err != nil {
		session.Step = from
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}
	s.observe(from, to)
	return session, nil
}

func (s *WizardService) observe(from, to models.WizardStep) {
	if s.observer != nil {
		s.observer.ObserveStepTransition(from, to)
	}
}

func (s *WizardService) campaignVisible(campaign *models.Campaign, preview bool) bool {
	switch campaign.Status {
	case models.CampaignStatusActive:
		return true
	case models.CampaignStatusDraft:
		return preview
	default:
		return false
	}
}

func newAccountRow() models.SocialAccountRow {
	return models.SocialAccountRow{
		ID:         uuid.NewString(),
		Platform:   models.PlatformInstagram,
		Value:      "",
		FetchState: models.FetchStateIdle,
	}
}

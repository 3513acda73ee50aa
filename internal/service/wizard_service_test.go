package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/repository"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
)

type campaignReaderStub struct {
	campaigns map[string]*models.Campaign
	err       error
}

func (s *campaignReaderStub) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, campaign := range s.campaigns {
		if campaign.Slug == slug {
			return campaign, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *campaignReaderStub) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	if campaign, ok := s.campaigns[id]; ok {
		return campaign, nil
	}
	return nil, sql.ErrNoRows
}

type sessionStoreStub struct {
	sessions map[string]*models.WizardSession
	saveErr  error
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: make(map[string]*models.WizardSession)}
}

func (s *sessionStoreStub) Save(ctx context.Context, session *models.WizardSession) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *sessionStoreStub) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrSessionMissing
	}
	copied := *session
	return &copied, nil
}

func (s *sessionStoreStub) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type submissionWriterStub struct {
	created []*models.Submission
	err     error
}

func (s *submissionWriterStub) Create(ctx context.Context, submission *models.Submission) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, submission)
	return nil
}

func activeCampaign() *models.Campaign {
	return &models.Campaign{
		ID:     "camp-1",
		Slug:   "summer-launch",
		Title:  "Summer Launch",
		Status: models.CampaignStatusActive,
	}
}

func newWizardFixture(campaigns *campaignReaderStub, submissions *submissionWriterStub) (*WizardService, *sessionStoreStub) {
	sessions := newSessionStoreStub()
	if campaigns == nil {
		campaigns = &campaignReaderStub{campaigns: map[string]*models.Campaign{"camp-1": activeCampaign()}}
	}
	if submissions == nil {
		submissions = &submissionWriterStub{}
	}
	svc := NewWizardService(campaigns, sessions, submissions, nil, nil, WizardConfig{MaxAccountRows: 3}, nil)
	return svc, sessions
}

func walkToForm(t *testing.T, svc *WizardService, decision models.Decision) *models.WizardSession {
	t.Helper()
	ctx := context.Background()
	session, err := svc.Start(ctx, "summer-launch", false)
	require.NoError(t, err)
	_, err = svc.Acknowledge(ctx, session.ID)
	require.NoError(t, err)
	if decision == models.DecisionAccepted {
		_, err = svc.Accept(ctx, session.ID)
	} else {
		_, err = svc.Decline(ctx, session.ID)
	}
	require.NoError(t, err)
	state, err := svc.State(ctx, session.ID)
	require.NoError(t, err)
	return state
}

func acceptForm() dto.AcceptSubmissionRequest {
	return dto.AcceptSubmissionRequest{
		DisplayName:    "Yuki",
		Email:          "yuki@example.com",
		Phone:          "09012345678",
		ContactMethods: []string{"email"},
		MainPlatform:   models.PlatformInstagram,
		MainValue:      "@yuki_creates",
		FeeAmount:      "50000",
	}
}

func TestWizardStartUnknownSlug(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)

	_, err := svc.Start(context.Background(), "missing", false)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrCampaignNotFound.Code, appErr.Code)
}

func TestWizardStartDraftOnlyVisibleInPreview(t *testing.T) {
	draft := activeCampaign()
	draft.Status = models.CampaignStatusDraft
	campaigns := &campaignReaderStub{campaigns: map[string]*models.Campaign{"camp-1": draft}}
	svc, _ := newWizardFixture(campaigns, nil)

	_, err := svc.Start(context.Background(), "summer-launch", false)
	require.Error(t, err)

	session, err := svc.Start(context.Background(), "summer-launch", true)
	require.NoError(t, err)
	assert.True(t, session.Preview)
	assert.Equal(t, models.StepNDA, session.Step)
}

func TestWizardStartOpensAtNDAWithOneRow(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)

	session, err := svc.Start(context.Background(), "summer-launch", false)
	require.NoError(t, err)
	assert.Equal(t, models.StepNDA, session.Step)
	assert.Equal(t, models.DecisionUndecided, session.Decision)
	require.Len(t, session.Rows, 1)
	assert.Empty(t, session.Rows[0].Value)
	assert.NotEmpty(t, session.Rows[0].ID)
}

func TestWizardAcknowledgeCachesSnapshotOnce(t *testing.T) {
	campaigns := &campaignReaderStub{campaigns: map[string]*models.Campaign{"camp-1": activeCampaign()}}
	svc, _ := newWizardFixture(campaigns, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, "summer-launch", false)
	require.NoError(t, err)
	state, err := svc.Acknowledge(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepCampaignDetail, state.Step)
	require.NotNil(t, state.Snapshot)
	assert.Equal(t, "Summer Launch", state.Snapshot.Title)

	// Snapshot survives even when the campaign record changes afterwards.
	campaigns.campaigns["camp-1"].Title = "Renamed"
	_, err = svc.Back(ctx, session.ID)
	require.NoError(t, err)
	state, err = svc.Acknowledge(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Launch", state.Snapshot.Title)
}

func TestWizardAcknowledgeVanishedCampaignEntersNotFound(t *testing.T) {
	campaigns := &campaignReaderStub{campaigns: map[string]*models.Campaign{"camp-1": activeCampaign()}}
	svc, _ := newWizardFixture(campaigns, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, "summer-launch", false)
	require.NoError(t, err)
	delete(campaigns.campaigns, "camp-1")

	state, err := svc.Acknowledge(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepNotFound, state.Step)

	// Terminal: nothing advances or backs out of it.
	_, err = svc.Acknowledge(ctx, session.ID)
	require.Error(t, err)
	_, err = svc.Back(ctx, session.ID)
	require.Error(t, err)
}

func TestWizardDecisionOnlyFromCampaignDetail(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, "summer-launch", false)
	require.NoError(t, err)

	_, err = svc.Accept(ctx, session.ID)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrStepOrder.Code, appErr.Code)
}

func TestWizardBackKeepsDecisionAndAllowsFlip(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	assert.Equal(t, models.DecisionAccepted, state.Decision)

	back, err := svc.Back(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepCampaignDetail, back.Step)
	assert.Equal(t, models.DecisionAccepted, back.Decision)

	flipped, err := svc.Decline(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionDeclined, flipped.Decision)
	assert.Equal(t, models.StepForm, flipped.Step)
}

func TestWizardBackFromNDARejected(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, "summer-launch", false)
	require.NoError(t, err)
	_, err = svc.Back(ctx, session.ID)
	require.Error(t, err)
}

func TestWizardRowLifecycle(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)

	state, err := svc.AddRow(ctx, state.ID, dto.RowRequest{Platform: models.PlatformTikTok, Value: "@dance_daily"})
	require.NoError(t, err)
	require.Len(t, state.Rows, 2)
	rowID := state.Rows[1].ID

	// Pretend an earlier fetch succeeded, then edit the value.
	count := int64(4200)
	state.Rows[1].FollowerCount = &count
	state.Rows[1].FetchState = models.FetchStateSucceeded
	require.NoError(t, svc.sessions.Save(ctx, state))

	state, err = svc.UpdateRow(ctx, state.ID, rowID, dto.RowRequest{Platform: models.PlatformTikTok, Value: "@dance_weekly"})
	require.NoError(t, err)
	row := state.Row(rowID)
	require.NotNil(t, row)
	assert.Equal(t, "@dance_weekly", row.Value)
	assert.Nil(t, row.FollowerCount)
	assert.Equal(t, models.FetchStateIdle, row.FetchState)

	state, err = svc.RemoveRow(ctx, state.ID, rowID)
	require.NoError(t, err)
	require.Len(t, state.Rows, 1)

	_, err = svc.RemoveRow(ctx, state.ID, rowID)
	require.Error(t, err)
}

func TestWizardAddRowLimit(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	var err error
	for i := 0; i < 2; i++ {
		state, err = svc.AddRow(ctx, state.ID, dto.RowRequest{Platform: models.PlatformInstagram})
		require.NoError(t, err)
	}
	_, err = svc.AddRow(ctx, state.ID, dto.RowRequest{Platform: models.PlatformInstagram})
	require.Error(t, err)
}

func TestWizardSubmitAcceptHappyPath(t *testing.T) {
	submissions := &submissionWriterStub{}
	svc, _ := newWizardFixture(nil, submissions)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	finished, submission, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
	assert.False(t, finished.Submitting)
	require.Len(t, submissions.created, 1)
	require.NotNil(t, submission.Instagram)
	assert.Equal(t, "@yuki_creates", *submission.Instagram)
	assert.Equal(t, "090-1234-5678", submission.Phone)
	assert.True(t, submission.CanParticipate)
}

func TestWizardSubmitAcceptValidationKeepsStep(t *testing.T) {
	submissions := &submissionWriterStub{}
	svc, _ := newWizardFixture(nil, submissions)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	req := acceptForm()
	req.DisplayName = ""
	req.Email = "broken"

	_, _, err := svc.SubmitAccept(ctx, state.ID, req)
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "displayName")
	assert.Contains(t, appErr.Fields, "email")
	assert.Empty(t, submissions.created)

	current, err := svc.State(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepForm, current.Step)
	assert.NotEmpty(t, current.Errors)

	// A corrected resubmission clears the stored errors.
	finished, _, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
	assert.Empty(t, finished.Errors)
}

func TestWizardSubmitAcceptPersistenceFailure(t *testing.T) {
	submissions := &submissionWriterStub{err: errors.New("db down")}
	svc, _ := newWizardFixture(nil, submissions)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	_, _, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrPersistence.Code, appErr.Code)

	current, err := svc.State(ctx, state.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepForm, current.Step)
	assert.False(t, current.Submitting)

	// Retry succeeds once the store recovers.
	submissions.err = nil
	finished, _, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
}

func TestWizardSubmitAcceptInFlightGuard(t *testing.T) {
	svc, sessions := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	state.Submitting = true
	require.NoError(t, sessions.Save(ctx, state))

	_, _, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrSubmitInFlight.Code, appErr.Code)
}

func TestWizardSubmitAcceptPreviewSkipsPersistence(t *testing.T) {
	submissions := &submissionWriterStub{}
	campaigns := &campaignReaderStub{campaigns: map[string]*models.Campaign{"camp-1": activeCampaign()}}
	sessions := newSessionStoreStub()
	svc := NewWizardService(campaigns, sessions, submissions, nil, nil, WizardConfig{}, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, "summer-launch", true)
	require.NoError(t, err)
	_, err = svc.Acknowledge(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.Accept(ctx, session.ID)
	require.NoError(t, err)

	finished, _, err := svc.SubmitAccept(ctx, session.ID, acceptForm())
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
	assert.Empty(t, submissions.created)
}

func TestWizardSubmitDeclineWithPlaceholderEmail(t *testing.T) {
	submissions := &submissionWriterStub{}
	svc, _ := newWizardFixture(nil, submissions)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionDeclined)
	finished, submission, err := svc.SubmitDecline(ctx, state.ID, dto.DeclineSubmissionRequest{
		WantsContact: false,
		Reason:       "schedule conflict",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
	require.Len(t, submissions.created, 1)
	assert.False(t, submission.CanParticipate)
	assert.Equal(t, models.DeclinedPlaceholderEmail, submission.Email)
	require.NotNil(t, submission.DeclineReason)
	assert.Equal(t, "schedule conflict", *submission.DeclineReason)
}

func TestWizardSubmitDeclineContactGuard(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionDeclined)
	_, _, err := svc.SubmitDecline(ctx, state.ID, dto.DeclineSubmissionRequest{WantsContact: true})
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "contact")

	_, _, err = svc.SubmitDecline(ctx, state.ID, dto.DeclineSubmissionRequest{WantsContact: true, Email: "broken"})
	require.Error(t, err)

	finished, submission, err := svc.SubmitDecline(ctx, state.ID, dto.DeclineSubmissionRequest{WantsContact: true, Email: "yuki@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.StepThanks, finished.Step)
	assert.Equal(t, "yuki@example.com", submission.Email)
}

func TestWizardSubmitDeclineWrongDecisionRejected(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	_, _, err := svc.SubmitDecline(ctx, state.ID, dto.DeclineSubmissionRequest{})
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrStepOrder.Code, appErr.Code)
}

func TestWizardRestartOnlyFromThanks(t *testing.T) {
	submissions := &submissionWriterStub{}
	svc, _ := newWizardFixture(nil, submissions)
	ctx := context.Background()

	state := walkToForm(t, svc, models.DecisionAccepted)
	_, err := svc.Restart(ctx, state.ID)
	require.Error(t, err)

	finished, _, err := svc.SubmitAccept(ctx, state.ID, acceptForm())
	require.NoError(t, err)

	fresh, err := svc.Restart(ctx, finished.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepNDA, fresh.Step)
	assert.Equal(t, models.DecisionUndecided, fresh.Decision)
	require.Len(t, fresh.Rows, 1)
	assert.Empty(t, fresh.Rows[0].Value)
	assert.Empty(t, fresh.Errors)
	require.NotNil(t, fresh.Snapshot)
}

func TestWizardSessionExpired(t *testing.T) {
	svc, _ := newWizardFixture(nil, nil)

	_, err := svc.State(context.Background(), "missing")
	require.Error(t, err)
	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrSessionNotFound.Code, appErr.Code)
}

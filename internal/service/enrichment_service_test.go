package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/oracle"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/jobs"
)

type enrichmentSessionStub struct {
	sessions map[string]*models.WizardSession
}

func (s *enrichmentSessionStub) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *session
	copied.Rows = append([]models.SocialAccountRow(nil), session.Rows...)
	return &copied, nil
}

func (s *enrichmentSessionStub) Update(ctx context.Context, id string, fn func(*models.WizardSession) bool) error {
	session, ok := s.sessions[id]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if fn(session) {
		session.UpdatedAt = time.Now().UTC()
	}
	return nil
}

type fetcherStub struct {
	result *oracle.Result
	err    error
	calls  int
}

func (f *fetcherStub) FetchFollowers(ctx context.Context, platform models.Platform, value string) (*oracle.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type enqueuerStub struct {
	jobs []jobs.Job
	err  error
}

func (e *enqueuerStub) Enqueue(job jobs.Job) error {
	if e.err != nil {
		return e.err
	}
	e.jobs = append(e.jobs, job)
	return nil
}

func enrichmentFixture(row models.SocialAccountRow) (*EnrichmentService, *enrichmentSessionStub, *fetcherStub, *enqueuerStub) {
	sessions := &enrichmentSessionStub{sessions: map[string]*models.WizardSession{
		"sess-1": {
			ID:   "sess-1",
			Step: models.StepForm,
			Rows: []models.SocialAccountRow{row},
		},
	}}
	fetcher := &fetcherStub{result: &oracle.Result{Count: 12000, FetchedAt: time.Now().UTC()}}
	queue := &enqueuerStub{}
	svc := NewEnrichmentService(fetcher, sessions, queue, nil, time.Second, nil)
	return svc, sessions, fetcher, queue
}

func TestEnrichmentTriggerEnqueuesAndMarksLoading(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates", FetchState: models.FetchStateIdle}
	svc, sessions, _, queue := enrichmentFixture(row)

	state, err := svc.Trigger(context.Background(), "sess-1", "row-1")
	require.NoError(t, err)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, EnrichmentJobType, queue.jobs[0].Type)
	assert.Equal(t, models.FetchStateLoading, state.Rows[0].FetchState)
	assert.Equal(t, models.FetchStateLoading, sessions.sessions["sess-1"].Rows[0].FetchState)
}

func TestEnrichmentTriggerIgnoredWhileLoading(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates", FetchState: models.FetchStateLoading}
	svc, _, _, queue := enrichmentFixture(row)

	_, err := svc.Trigger(context.Background(), "sess-1", "row-1")
	require.NoError(t, err)
	assert.Empty(t, queue.jobs)
}

func TestEnrichmentTriggerXPlatformDisabled(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformX, Value: "@newsroom_jp", FetchState: models.FetchStateIdle}
	svc, _, fetcher, queue := enrichmentFixture(row)

	state, err := svc.Trigger(context.Background(), "sess-1", "row-1")
	require.NoError(t, err)
	assert.Empty(t, queue.jobs)
	assert.Zero(t, fetcher.calls)
	assert.Equal(t, models.FetchStateFailed, state.Rows[0].FetchState)
	assert.NotEmpty(t, state.Rows[0].FetchMessage)
}

func TestEnrichmentTriggerEmptyValueRejected(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "", FetchState: models.FetchStateIdle}
	svc, _, _, _ := enrichmentFixture(row)

	_, err := svc.Trigger(context.Background(), "sess-1", "row-1")
	require.Error(t, err)
}

func TestEnrichmentHandleJobAppliesResult(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates", FetchState: models.FetchStateLoading}
	svc, sessions, _, _ := enrichmentFixture(row)

	err := svc.HandleJob(context.Background(), jobs.Job{Type: EnrichmentJobType, Payload: EnrichmentJob{
		SessionID: "sess-1", RowID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates",
	}})
	require.NoError(t, err)

	applied := sessions.sessions["sess-1"].Rows[0]
	assert.Equal(t, models.FetchStateSucceeded, applied.FetchState)
	require.NotNil(t, applied.FollowerCount)
	assert.Equal(t, int64(12000), *applied.FollowerCount)
	require.NotNil(t, applied.FetchedAt)
}

func TestEnrichmentHandleJobDropsLateResultForRemovedRow(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates", FetchState: models.FetchStateLoading}
	svc, sessions, _, _ := enrichmentFixture(row)

	// Row removed while the fetch was in flight.
	sessions.sessions["sess-1"].Rows = nil

	err := svc.HandleJob(context.Background(), jobs.Job{Type: EnrichmentJobType, Payload: EnrichmentJob{
		SessionID: "sess-1", RowID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates",
	}})
	require.NoError(t, err)
	assert.Empty(t, sessions.sessions["sess-1"].Rows)
}

func TestEnrichmentHandleJobDropsStaleResultAfterEdit(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates", FetchState: models.FetchStateLoading}
	svc, sessions, _, _ := enrichmentFixture(row)

	// Value retyped after the fetch was queued.
	sessions.sessions["sess-1"].Rows[0].Value = "@someone_else"
	sessions.sessions["sess-1"].Rows[0].FetchState = models.FetchStateIdle

	err := svc.HandleJob(context.Background(), jobs.Job{Type: EnrichmentJobType, Payload: EnrichmentJob{
		SessionID: "sess-1", RowID: "row-1", Platform: models.PlatformInstagram, Value: "@yuki_creates",
	}})
	require.NoError(t, err)
	stale := sessions.sessions["sess-1"].Rows[0]
	assert.Nil(t, stale.FollowerCount)
	assert.Equal(t, models.FetchStateIdle, stale.FetchState)
}

func TestEnrichmentHandleJobFailureSetsAdvisoryState(t *testing.T) {
	row := models.SocialAccountRow{ID: "row-1", Platform: models.PlatformTikTok, Value: "@dance_daily", FetchState: models.FetchStateLoading}
	svc, sessions, fetcher, _ := enrichmentFixture(row)
	fetcher.err = &oracle.Failure{Kind: oracle.FailureNotFound, Platform: models.PlatformTikTok}

	err := svc.HandleJob(context.Background(), jobs.Job{Type: EnrichmentJobType, Payload: EnrichmentJob{
		SessionID: "sess-1", RowID: "row-1", Platform: models.PlatformTikTok, Value: "@dance_daily",
	}})
	require.NoError(t, err)

	failed := sessions.sessions["sess-1"].Rows[0]
	assert.Equal(t, models.FetchStateFailed, failed.FetchState)
	assert.Contains(t, failed.FetchMessage, "TikTok")
	assert.Equal(t, "@dance_daily", failed.Value)
}

func TestEnrichmentFailureMessagesPerKind(t *testing.T) {
	assert.Contains(t, failureMessage(oracle.FailureUnauthorized, models.PlatformInstagram), "authorize")
	assert.Contains(t, failureMessage(oracle.FailureNotFound, models.PlatformTikTok), "find")
	assert.Contains(t, failureMessage(oracle.FailureUnavailable, models.PlatformYouTube), "unavailable")
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/oracle"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/jobs"
)

type followerFetcher interface {
	FetchFollowers(ctx context.Context, platform models.Platform, value string) (*oracle.Result, error)
}

type enrichmentSessionStore interface {
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Update(ctx context.Context, id string, fn func(*models.WizardSession) bool) error
}

type enrichmentEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type enrichmentObserver interface {
	ObserveEnrichment(platform models.Platform, outcome string)
}

// EnrichmentJob is the queue payload for one follower-count lookup.
type EnrichmentJob struct {
	SessionID string          `json:"session_id"`
	RowID     string          `json:"row_id"`
	Platform  models.Platform `json:"platform"`
	Value     string          `json:"value"`
}

// EnrichmentJobType names enrichment jobs on the queue.
const EnrichmentJobType = "enrichment.fetch_followers"

// xDisabledMessage: follower counts for X were cut off when its API access
// terms changed; the platform stays listed but is never enriched.
const xDisabledMessage = "X account metrics can't be fetched. You can continue without them."

// EnrichmentService drives best-effort follower-count enrichment of account
// rows. Everything here is advisory: a failed or missing count never blocks
// the wizard or touches the validation errors.
type EnrichmentService struct {
	fetcher  followerFetcher
	sessions enrichmentSessionStore
	queue    enrichmentEnqueuer
	observer enrichmentObserver
	logger   *zap.Logger
	timeout  time.Duration
}

// NewEnrichmentService constructs an EnrichmentService.
func NewEnrichmentService(fetcher followerFetcher, sessions enrichmentSessionStore, queue enrichmentEnqueuer, observer enrichmentObserver, timeout time.Duration, logger *zap.Logger) *EnrichmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &EnrichmentService{
		fetcher:  fetcher,
		sessions: sessions,
		queue:    queue,
		observer: observer,
		logger:   logger,
		timeout:  timeout,
	}
}

// Trigger starts a fetch for the row's typed value. Platform x is rejected
// outright; a row already loading ignores the trigger instead of stacking a
// second fetch.
func (s *EnrichmentService) Trigger(ctx context.Context, sessionID, rowID string) (*models.WizardSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	row := session.Row(rowID)
	if row == nil {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "account row not found")
	}
	if row.Value == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "enter an account value first")
	}

	if row.Platform == models.PlatformX {
		err := s.sessions.Update(ctx, sessionID, func(live *models.WizardSession) bool {
			liveRow := live.Row(rowID)
			if liveRow == nil {
				return false
			}
			liveRow.FetchState = models.FetchStateFailed
			liveRow.FetchMessage = xDisabledMessage
			return true
		})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
		}
		s.observeOutcome(models.PlatformX, "disabled")
		return s.sessions.Get(ctx, sessionID)
	}

	if row.FetchState == models.FetchStateLoading {
		return session, nil
	}

	payload := EnrichmentJob{
		SessionID: sessionID,
		RowID:     rowID,
		Platform:  row.Platform,
		Value:     row.Value,
	}
	err = s.sessions.Update(ctx, sessionID, func(live *models.WizardSession) bool {
		liveRow := live.Row(rowID)
		if liveRow == nil {
			return false
		}
		liveRow.FetchState = models.FetchStateLoading
		liveRow.FetchMessage = ""
		return true
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "failed to save session")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: EnrichmentJobType, Payload: payload}); err != nil {
		s.logger.Warn("enrichment enqueue failed", zap.String("session_id", sessionID), zap.Error(err))
		s.failRow(ctx, sessionID, rowID, payload.Value, failureMessage(oracle.FailureUnavailable, row.Platform))
	}
	return s.sessions.Get(ctx, sessionID)
}

// HandleJob is the queue handler: it fetches from the oracle and applies the
// result to the row it was started for. Results landing after the row was
// removed or retyped are dropped.
func (s *EnrichmentService) HandleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(EnrichmentJob)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	result, err := s.fetcher.FetchFollowers(fetchCtx, payload.Platform, payload.Value)
	if err != nil {
		kind := oracle.KindOf(err)
		s.logger.Info("follower fetch failed",
			zap.String("session_id", payload.SessionID),
			zap.String("platform", string(payload.Platform)),
			zap.String("kind", string(kind)))
		s.failRow(ctx, payload.SessionID, payload.RowID, payload.Value, failureMessage(kind, payload.Platform))
		s.observeOutcome(payload.Platform, string(kind))
		// Failure is a terminal row state, not a retryable job error.
		return nil
	}

	applyErr := s.sessions.Update(ctx, payload.SessionID, func(live *models.WizardSession) bool {
		row := live.Row(payload.RowID)
		if row == nil || row.Value != payload.Value || row.Platform != payload.Platform {
			return false
		}
		count := result.Count
		fetchedAt := result.FetchedAt
		row.FollowerCount = &count
		row.FetchedAt = &fetchedAt
		row.FetchState = models.FetchStateSucceeded
		row.FetchMessage = ""
		return true
	})
	if applyErr != nil {
		s.logger.Warn("failed to apply enrichment result",
			zap.String("session_id", payload.SessionID), zap.Error(applyErr))
		return nil
	}
	s.observeOutcome(payload.Platform, "succeeded")
	return nil
}

func (s *EnrichmentService) failRow(ctx context.Context, sessionID, rowID, value, message string) {
	err := s.sessions.Update(ctx, sessionID, func(live *models.WizardSession) bool {
		row := live.Row(rowID)
		if row == nil || row.Value != value {
			return false
		}
		row.FetchState = models.FetchStateFailed
		row.FetchMessage = message
		return true
	})
	if err != nil {
		s.logger.Warn("failed to record enrichment failure",
			zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (s *EnrichmentService) observeOutcome(platform models.Platform, outcome string) {
	if s.observer != nil {
		s.observer.ObserveEnrichment(platform, outcome)
	}
}

var platformDisplayNames = map[models.Platform]string{
	models.PlatformInstagram: "Instagram",
	models.PlatformTikTok:    "TikTok",
	models.PlatformYouTube:   "YouTube",
	models.PlatformRed:       "RED",
	models.PlatformOther:     "this platform",
}

func failureMessage(kind oracle.FailureKind, platform models.Platform) string {
	name, ok := platformDisplayNames[platform]
	if !ok {
		name = "this platform"
	}
	switch kind {
	case oracle.FailureUnauthorized:
		return fmt.Sprintf("We couldn't authorize with the %s metrics provider. You can continue without follower counts.", name)
	case oracle.FailureNotFound:
		return fmt.Sprintf("We couldn't find that %s account. Check the value, or continue without follower counts.", name)
	default:
		return fmt.Sprintf("%s metrics are unavailable right now. You can continue without them.", name)
	}
}

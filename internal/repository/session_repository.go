package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

// ErrSessionMissing is returned when a wizard session key is absent or expired.
var ErrSessionMissing = errors.New("wizard session missing")

const sessionKeyPrefix = "wizard:session:"

type storeObserver interface {
	ObserveSessionStore(op string, duration time.Duration)
}

// SessionRepository stores live wizard sessions in Redis as TTL'd JSON blobs.
type SessionRepository struct {
	client   *redis.Client
	ttl      time.Duration
	observer storeObserver
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

// Instrument attaches a latency observer to every Redis round trip.
func (r *SessionRepository) Instrument(observer storeObserver) *SessionRepository {
	r.observer = observer
	return r
}

func (r *SessionRepository) observe(op string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveSessionStore(op, time.Since(start))
	}
}

// Save serializes the session and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, session *models.WizardSession) error {
	defer r.observe("save", time.Now())
	session.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get loads a session by ID.
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	defer r.observe("get", time.Now())
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionMissing
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session models.WizardSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Update loads the session, applies fn, and saves the result. fn returning
// false skips the save (used to drop stale enrichment results).
func (r *SessionRepository) Update(ctx context.Context, id string, fn func(*models.WizardSession) bool) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if !fn(session) {
		return nil
	}
	return r.Save(ctx, session)
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	defer r.observe("delete", time.Now())
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Package session keeps the server-side record of signed-in browsers.
// The bearer token and display fields live in Redis keyed by an opaque
// session id, so the browser never holds the raw token.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/desk-portal-api/internal/models"
	"github.com/noah-isme/desk-portal-api/pkg/config"
	appErrors "github.com/noah-isme/desk-portal-api/pkg/errors"
)

const keyPrefix = "session:"

// Store persists sessions in Redis with a bounded lifetime.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewStore constructs a Store.
func NewStore(client *redis.Client, cfg config.SessionConfig, logger *zap.Logger) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, ttl: ttl, logger: logger, now: time.Now}
}

// Create stores a new session and fills in its id and expiry. The TTL is
// capped at the token's own expiry when the token expires sooner.
func (s *Store) Create(ctx context.Context, sess *models.Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	ttl := s.ttl
	if !sess.ExpiresAt.IsZero() {
		if remaining := sess.ExpiresAt.Sub(s.now()); remaining > 0 && remaining < ttl {
			ttl = remaining
		}
	}
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = s.now().Add(ttl)
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store session")
	}
	return nil
}

// Get loads a session by id. A missing or expired session surfaces as
// ErrSessionExpired so callers force a fresh sign-in.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, appErrors.ErrSessionExpired
	}

	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrSessionExpired
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load session")
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "decode session")
	}
	if sess.Expired(s.now()) {
		_ = s.Delete(ctx, id)
		return nil, appErrors.ErrSessionExpired
	}
	return &sess, nil
}

// Delete removes a session, ending the sign-in.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		s.logger.Warn("session delete failed", zap.String("session_id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "delete session")
	}
	return nil
}

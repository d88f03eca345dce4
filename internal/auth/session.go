package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/theandrewmo/warbler/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the cookie name carrying the session ID.
const SessionCookie = "warbler_session"

// ErrNoSession is returned when a session ID does not resolve to a user.
var ErrNoSession = errors.New("session not found")

// SessionStore persists authenticated sessions in Redis. Each session maps a
// random ID to a user ID; a per-user index set allows revoking every session
// when the account is deleted.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore returns a SessionStore writing sessions with the given TTL.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("sess:%s", sid)
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf("sess:user:%d", userID)
}

// Create opens a new session for the user and returns its ID.
func (s *SessionStore) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.New().String()

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(sid), strconv.FormatUint(uint64(userID), 10), s.ttl)
	pipe.SAdd(ctx, userSessionsKey(userID), sid)
	pipe.Expire(ctx, userSessionsKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}

	observability.ActiveSessions.Inc()
	return sid, nil
}

// Resolve returns the user ID bound to the session, refreshing its TTL.
// ErrNoSession is returned for unknown or expired sessions.
func (s *SessionStore) Resolve(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrNoSession
	}

	// Sliding expiration: activity keeps both the session and the
	// per-user index alive, so revocation can still find the session
	// after the original TTL has passed.
	pipe := s.rdb.Pipeline()
	pipe.Expire(ctx, sessionKey(sid), s.ttl)
	pipe.Expire(ctx, userSessionsKey(uint(userID)), s.ttl)
	_, _ = pipe.Exec(ctx)

	return uint(userID), nil
}

// Destroy removes a single session. Destroying an unknown session is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, sid string) error {
	val, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	if userID, parseErr := strconv.ParseUint(val, 10, 32); parseErr == nil {
		pipe.SRem(ctx, userSessionsKey(uint(userID)), sid)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	observability.ActiveSessions.Dec()
	return nil
}

// DestroyAll revokes every session belonging to the user. Used when the
// account is deleted so no stale identity survives.
func (s *SessionStore) DestroyAll(ctx context.Context, userID uint) error {
	sids, err := s.rdb.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, sid := range sids {
		pipe.Del(ctx, sessionKey(sid))
	}
	pipe.Del(ctx, userSessionsKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	observability.ActiveSessions.Sub(float64(len(sids)))
	return nil
}

// internal/form/session/store.go

// Package session persists the in-progress application draft to Redis and
// coalesces the write traffic that per-keystroke field edits generate.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"intake-service/internal/common/config"
	"intake-service/internal/common/database"
	apperrors "intake-service/internal/common/errors"
	"intake-service/internal/common/logger"
	"intake-service/internal/common/metrics"
	"intake-service/internal/models"
)

// Session is the persisted unit: the draft plus navigation position.
type Session struct {
	Draft     *models.ApplicationDraft `json:"draft"`
	StepIndex int                      `json:"stepIndex"`
	UpdatedAt time.Time                `json:"updatedAt"`
}

// NewSession returns a session at the first step with default field values.
func NewSession() *Session {
	return &Session{
		Draft:     models.DefaultDraft(),
		StepIndex: 0,
		UpdatedAt: time.Now().UTC(),
	}
}

// Store reads and writes sessions under a namespaced Redis keyspace.
// Mutation of one session is serialized through a keyed mutex so an edit
// and a concurrent navigation call never interleave their read-modify-write.
type Store struct {
	redis            *database.RedisClient
	namespace        string
	ttl              time.Duration
	persistStepIndex bool
	log              logger.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is a refcounted per-session mutex; the entry is removed when
// the last holder releases, so the lock table stays bounded by concurrency
// rather than by every session ID ever seen.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore builds a Store from the session configuration block.
func NewStore(rdb *database.RedisClient, cfg config.SessionConfig, log logger.Logger) *Store {
	return &Store{
		redis:            rdb,
		namespace:        cfg.Namespace,
		ttl:              time.Duration(cfg.TTL) * time.Second,
		persistStepIndex: cfg.PersistStepIndex,
		log:              log,
		locks:            map[string]*sessionLock{},
	}
}

func (s *Store) key(sessionID string) string {
	return s.namespace + ":" + sessionID
}

// acquire takes the per-session mutex, creating the entry on first use.
func (s *Store) acquire(sessionID string) *sessionLock {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks and drops the entry once nobody is waiting on it.
func (s *Store) release(sessionID string, l *sessionLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}

// Load fetches a session, returning a fresh one when nothing is stored.
// The step pointer only survives a reload when the store is configured to
// persist it; the field data always survives.
func (s *Store) Load(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.redis.Get(ctx, s.key(sessionID))
	if errors.Is(err, redis.Nil) {
		return NewSession(), nil
	}
	if err != nil {
		return nil, apperrors.NewSessionLoadFailedError(err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.log.WithError(err).Warn("Discarding undecodable session payload", map[string]interface{}{
			"session_id": sessionID,
		})
		return NewSession(), nil
	}
	if sess.Draft == nil {
		sess.Draft = models.DefaultDraft()
	}
	if !s.persistStepIndex {
		sess.StepIndex = 0
	}
	return &sess, nil
}

// Save persists the session under the namespace key with the store TTL.
func (s *Store) Save(ctx context.Context, sessionID string, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(sess)
	if err != nil {
		return apperrors.NewSessionSaveFailedError(err)
	}
	if err := s.redis.Set(ctx, s.key(sessionID), payload, s.ttl); err != nil {
		return apperrors.NewSessionSaveFailedError(err)
	}
	metrics.SessionWrites.Inc()
	return nil
}

// Update runs fn against the current session under the per-session lock and
// persists the result. fn returning an error aborts without writing.
func (s *Store) Update(ctx context.Context, sessionID string, fn func(*Session) error) (*Session, error) {
	l := s.acquire(sessionID)
	defer s.release(sessionID, l)

	sess, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, sessionID, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Reset deletes the persisted session. The next Load starts from defaults.
func (s *Store) Reset(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, s.key(sessionID)); err != nil {
		return apperrors.NewSessionSaveFailedError(err)
	}
	return nil
}

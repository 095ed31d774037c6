package services

import (
	"context"
	"sync"
	"time"

	"phraseapp/internal/models"
	"phraseapp/internal/observability"
	"phraseapp/internal/sentence"

	"github.com/google/uuid"
)

// SessionState is the mutable part of a session. It is only reachable inside
// Session.Do, which holds the session lock.
type SessionState struct {
	Rand          sentence.RandomSource
	LastSentence  *models.Sentence
	LastExample   *models.Sentence
	LastChallenge *models.Challenge
}

// Session is the per-user context object: its own random source and
// translation cache plus the last things built for it.
type Session struct {
	ID        string
	CreatedAt time.Time

	cache *TranslationCache

	mu       sync.Mutex
	state    SessionState
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session state
func (s *Session) Do(fn func(state *SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Cache returns the session's translation cache
func (s *Session) Cache() *TranslationCache {
	return s.cache
}

// LastSeen returns the last time the session was fetched from the store
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// SessionStore keeps sessions in memory for the life of the process
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	seed      int64
	cacheSize int
	logger    *observability.Logger
	now       func() time.Time
}

// NewSessionStore creates a store. A non-zero seed gives every new session
// the same reproducible random sequence; zero seeds each from the clock.
// A negative cacheSize gives sessions no translation cache.
func NewSessionStore(seed int64, cacheSize int, logger *observability.Logger) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*Session),
		seed:      seed,
		cacheSize: cacheSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the session for id, creating it when id is empty or unknown.
// The returned session's ID may differ from id; callers must persist it.
func (s *SessionStore) Get(ctx context.Context, id string) *Session {
	now := s.now()

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = s.newSessionLocked(id, now)
	}
	s.mu.Unlock()

	sess.touch(now)

	if !ok {
		s.logger.Debug(ctx, "Created builder session", map[string]interface{}{
			"session_id": sess.ID,
		})
	}
	return sess
}

// Lookup returns an existing session without creating one
func (s *SessionStore) Lookup(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *SessionStore) newSessionLocked(id string, now time.Time) *Session {
	if id == "" {
		id = uuid.New().String()
	}
	var cache *TranslationCache
	if s.cacheSize >= 0 {
		cache = NewTranslationCache(s.cacheSize)
	}
	sess := &Session{
		ID:        id,
		CreatedAt: now,
		cache:     cache,
		state:     SessionState{Rand: sentence.NewSeededSource(s.seed)},
		lastSeen:  now,
	}
	s.sessions[id] = sess
	return sess
}

// End discards a session. It reports whether the session existed.
func (s *SessionStore) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Sweep discards sessions idle for longer than maxIdle and returns how many
// were removed.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunSweeper sweeps every interval until ctx is done
func (s *SessionStore) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(maxIdle); removed > 0 {
				s.logger.Info(ctx, "Swept idle builder sessions", map[string]interface{}{
					"removed":   removed,
					"remaining": s.Len(),
				})
			}
		}
	}
}

package memory

import (
	"sync"
	"time"

	"ai-intake-be/pkg/triage"

	"github.com/patrickmn/go-cache"
)

// SessionRepository externalizes intake state between turns. The hosting
// surface is stateless request/response, so every invocation reloads the
// session from here by ID. Sessions that go quiet expire after the TTL and
// leave no persisted artifact.
//
// Session values are not safe for concurrent mutation; callers that process
// a turn must hold the per-session lock from Lock for the whole turn.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock serializes turn processing per session ID and returns the unlock
// function. Distinct sessions never contend.
func (r *SessionRepository) Lock(sessionID string) func() {
	r.mu.Lock()
	l, ok := r.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[sessionID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (r *SessionRepository) Save(session *triage.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*triage.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*triage.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)

	// Waiters already holding the mutex pointer are unaffected; they will
	// find the session gone once they acquire it.
	r.mu.Lock()
	delete(r.locks, sessionID)
	r.mu.Unlock()
}

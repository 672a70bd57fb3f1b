// Package memory provides the in-process sessionstore driver used by
// single-instance deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/haletree/symptom-intake/server/internal/model"
	"github.com/haletree/symptom-intake/server/internal/sessionstore"
)

// Store keeps sessions in a mutex-guarded map and evicts lazily on read.
// An optional janitor sweep handles entries that are never read again.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	byActor  map[string]string // actorID -> sessionID
	now      func() time.Time
}

var _ sessionstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		sessions: make(map[string]*model.Session),
		byActor:  make(map[string]string),
		now:      time.Now,
	}
}

// NewWithClock is used by tests to control expiry.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func (st *Store) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[sessionID]
	st.mu.RUnlock()
	if !ok {
		return nil, model.ErrNotFound
	}
	if st.now().After(s.ExpiresAt) {
		st.evict(sessionID)
		return nil, model.ErrExpired
	}
	return s.Clone(), nil
}

func (st *Store) GetByActor(ctx context.Context, actorID string) (*model.Session, error) {
	if actorID == "" {
		return nil, model.ErrNotFound
	}
	st.mu.RLock()
	id, ok := st.byActor[actorID]
	st.mu.RUnlock()
	if !ok {
		return nil, model.ErrNotFound
	}
	return st.Get(ctx, id)
}

func (st *Store) Put(ctx context.Context, s *model.Session, ttl time.Duration) error {
	cp := s.Clone()
	cp.ExpiresAt = st.now().Add(ttl)
	st.mu.Lock()
	st.sessions[cp.SessionID] = cp
	if cp.ActorID != "" {
		st.byActor[cp.ActorID] = cp.SessionID
	}
	st.mu.Unlock()
	s.ExpiresAt = cp.ExpiresAt
	return nil
}

func (st *Store) Remove(ctx context.Context, sessionID string) error {
	st.evict(sessionID)
	return nil
}

func (st *Store) PurgeExpired(ctx context.Context) (int, error) {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, s := range st.sessions {
		if now.After(s.ExpiresAt) {
			delete(st.sessions, id)
			if s.ActorID != "" && st.byActor[s.ActorID] == id {
				delete(st.byActor, s.ActorID)
			}
			n++
		}
	}
	return n, nil
}

func (st *Store) evict(sessionID string) {
	st.mu.Lock()
	if s, ok := st.sessions[sessionID]; ok {
		delete(st.sessions, sessionID)
		if s.ActorID != "" && st.byActor[s.ActorID] == sessionID {
			delete(st.byActor, s.ActorID)
		}
	}
	st.mu.Unlock()
}

// StartJanitor sweeps expired entries on the given interval until ctx is
// cancelled. Sweep outcomes are logged and never surfaced to callers.
func (st *Store) StartJanitor(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, _ := st.PurgeExpired(ctx)
				if n > 0 {
					log.Debug().Int("evicted", n).Msg("session janitor sweep")
				}
			}
		}
	}()
}

package session

import (
	"context"
	"sync"
	"time"

	"rapstation/models"
)

type memoryEntry struct {
	session   models.BookingSession
	expiresAt time.Time
}

// MemorySessionStore is the in-process SessionStore used by tests and single-node runs.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	locks    map[string]struct{}
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]struct{}),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, code string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[code]
	if !ok || (s.ttl > 0 && s.now().After(e.expiresAt)) {
		delete(s.sessions, code)
		return nil, ErrSessionNotFound
	}
	sess := e.session
	sess.Blocked = append([]string(nil), e.session.Blocked...)
	return &sess, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sess *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	cp.Blocked = append([]string(nil), sess.Blocked...)
	s.sessions[sess.Code] = memoryEntry{session: cp, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	return nil
}

func (s *MemorySessionStore) Lock(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.locks[code]; held {
		return false, nil
	}
	s.locks[code] = struct{}{}
	return true, nil
}

func (s *MemorySessionStore) Unlock(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, code)
	return nil
}

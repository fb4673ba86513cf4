package store

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	userID  string
	expires time.Time
}

// MemorySessionStore keeps session bindings in process memory.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (s *MemorySessionStore) Bind(ctx context.Context, clientID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[clientID] = memorySession{userID: userID, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemorySessionStore) Lookup(ctx context.Context, clientID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[clientID]
	if !ok {
		return "", nil
	}
	if !s.now().Before(sess.expires) {
		delete(s.sessions, clientID)
		return "", nil
	}
	return sess.userID, nil
}

func (s *MemorySessionStore) Unbind(ctx context.Context, clientID string) error {
	s.mu.Lock()
	delete(s.sessions, clientID)
	s.mu.Unlock()
	return nil
}

// Package memory holds process-local fallbacks for the external stores.
package memory

import (
	"context"
	"sync"
	"time"
)

// ShareAckStore keeps "link copied" markers in process memory. Used when no
// Redis is configured; markers do not survive restarts nor span replicas.
type ShareAckStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewShareAckStore() *ShareAckStore {
	return &ShareAckStore{expires: make(map[string]time.Time), now: time.Now}
}

func (s *ShareAckStore) Mark(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, k)
		}
	}
	s.expires[key] = now.Add(ttl)
	return nil
}

func (s *ShareAckStore) Active(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[key]
	return ok && s.now().Before(exp), nil
}

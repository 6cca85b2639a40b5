package state

import (
	"context"
	"sync"
	"time"

	"cnctools/catalog/internal/domain"
)

type memoryEntry struct {
	state     domain.FilterState
	expiresAt time.Time
}

type memoryStateManager struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	lastSweep time.Time
}

// NewMemoryStateManager keeps sessions in process memory. A ttl <= 0 never expires.
func NewMemoryStateManager(ttl time.Duration) StateManager {
	return &memoryStateManager{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStateManager) Get(_ context.Context, sessionID string) (domain.FilterState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok {
		return domain.FilterState{}, false, nil
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		return domain.FilterState{}, false, nil
	}
	return entry.state, true, nil
}

func (s *memoryStateManager) Save(_ context.Context, sessionID string, st domain.FilterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	entry := memoryEntry{state: st}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.entries[sessionID] = entry
	return nil
}

// sweep drops expired sessions, at most once per ttl. Callers hold mu.
func (s *memoryStateManager) sweep(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now

	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

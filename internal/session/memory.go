package session

import (
	"context"
	"sync"

	"vendora/internal/domain"
)

// memoryStore is an in-process Store used by tests and local runs
// without redis. TTLs are not simulated; a fresh store per session is
// the test-side equivalent of session expiry.
type memoryStore struct {
	mu      sync.Mutex
	carts   map[string][]domain.CartLine
	markers map[string]struct{}
	coins   map[string]bool
}

func NewMemory() Store {
	return &memoryStore{
		carts:   make(map[string][]domain.CartLine),
		markers: make(map[string]struct{}),
		coins:   make(map[string]bool),
	}
}

func (s *memoryStore) LoadCart(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sessionID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (s *memoryStore) SaveCart(_ context.Context, sessionID string, lines []domain.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	s.carts[sessionID] = stored
	return nil
}

func (s *memoryStore) ClearCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *memoryStore) HasViewMarker(_ context.Context, sessionID, storeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.markers[sessionID+":"+storeID]
	return ok, nil
}

func (s *memoryStore) SetViewMarker(_ context.Context, sessionID, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[sessionID+":"+storeID] = struct{}{}
	return nil
}

func (s *memoryStore) CoinToggle(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coins[sessionID], nil
}

func (s *memoryStore) SetCoinToggle(_ context.Context, sessionID string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.coins[sessionID] = true
	} else {
		delete(s.coins, sessionID)
	}
	return nil
}

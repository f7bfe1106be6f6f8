package store

import (
	"context"
	"sync"

	"github.com/snankens/player-data-service/internal/domain/players"
)

// MemoryStore keeps a thread-safe roster in memory, preserving first-insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]players.Player
	order   []string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: make(map[string]players.Player),
	}
}

// SavePlayer inserts or replaces the player keyed by its ID.
// A replaced player keeps its original position in ListPlayers.
func (s *MemoryStore) SavePlayer(_ context.Context, p players.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.players[p.ID] = p.Clone()
	return nil
}

// ListPlayers returns a copy of every stored player.
func (s *MemoryStore) ListPlayers(_ context.Context) ([]players.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]players.Player, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.players[id].Clone())
	}
	return result, nil
}

// GetPlayer retrieves a player by exact ID.
func (s *MemoryStore) GetPlayer(_ context.Context, id string) (players.Player, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return players.Player{}, false, nil
	}
	return p.Clone(), true, nil
}

// Count returns the number of stored players.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players), nil
}

// Reset drops every stored player.
func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]players.Player)
	s.order = nil
	return nil
}

// Close is a no-op so MemoryStore satisfies the same lifecycle as database-backed stores.
func (s *MemoryStore) Close() error { return nil }

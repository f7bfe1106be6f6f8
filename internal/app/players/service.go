package players

import (
	"context"

	"github.com/snankens/player-data-service/internal/domain/players"
)

// Store defines the read contract the service needs from persistence.
type Store interface {
	ListPlayers(ctx context.Context) ([]players.Player, error)
	GetPlayer(ctx context.Context, id string) (players.Player, bool, error)
}

// Service answers roster queries. It never mutates the store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Players returns every stored player in store order.
func (s *Service) Players(ctx context.Context) ([]players.Player, error) {
	return s.store.ListPlayers(ctx)
}

// PlayerByID returns the player with exactly this id, or an error matching players.ErrNotFound.
func (s *Service) PlayerByID(ctx context.Context, id string) (players.Player, error) {
	p, ok, err := s.store.GetPlayer(ctx, id)
	if err != nil {
		return players.Player{}, err
	}
	if !ok {
		return players.Player{}, players.NewNotFound(id)
	}
	return p, nil
}

package testutil

import (
	"context"

	"github.com/snankens/player-data-service/internal/app/players"
	domain "github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/store"
)

// NewServiceWithPlayers builds a players service backed by a memory store preloaded with ps.
func NewServiceWithPlayers(ps []domain.Player) (*players.Service, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	for _, p := range ps {
		_ = ms.SavePlayer(context.Background(), p)
	}
	return players.NewService(ms), ms
}

// Package store persists players keyed by id. Both implementations list
// players in first-insertion order and replace a record in place when its id
// is saved again.
package store

import (
	"context"

	"github.com/snankens/player-data-service/internal/domain/players"
)

// Store is the keyed player persistence shared by ingestion and queries.
type Store interface {
	SavePlayer(ctx context.Context, p players.Player) error
	ListPlayers(ctx context.Context) ([]players.Player, error)
	GetPlayer(ctx context.Context, id string) (players.Player, bool, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

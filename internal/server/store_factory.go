package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/snankens/player-data-service/internal/config"
	"github.com/snankens/player-data-service/internal/store"
)

// openStore builds the configured player store.
func openStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil
	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); cfg.SQLitePath != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		st, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		st.LimitConnections(cfg.MaxOpenConns)
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

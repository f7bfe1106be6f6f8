package config

import (
	"fmt"
	"os"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RosterPath      string
	Store           StoreConfig
	Metrics         MetricsConfig
	Log             LogConfig
	ShutdownTimeout Duration
}

// StoreConfig selects the player store backend.
type StoreConfig struct {
	Driver       string
	SQLitePath   string
	MaxOpenConns int
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// When CONFIG_FILE names a YAML file its values replace the defaults, and
// environment variables still win over the file.
func Load() (Config, error) {
	file, err := readFile(os.Getenv(envConfigFile))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:       envOrDefault(envPort, orDefault(file.Port, defaultPort)),
		RosterPath: envOrDefault(envRosterPath, orDefault(file.Roster.Path, defaultRosterPath)),
		Store: StoreConfig{
			Driver:       envOrDefault(envStoreDriver, orDefault(file.Store.Driver, defaultStoreDriver)),
			SQLitePath:   envOrDefault(envSQLitePath, orDefault(file.Store.SQLitePath, defaultSQLitePath)),
			MaxOpenConns: intEnvOrDefault(envSQLiteMaxConns, positiveIntOr(file.Store.MaxOpenConns, defaultSQLiteMaxConns)),
		},
		Metrics: loadMetrics(file.Metrics),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, orDefault(file.Log.Level, defaultLogLevel)),
			Format: envOrDefault(envLogFormat, orDefault(file.Log.Format, defaultLogFormat)),
		},
		ShutdownTimeout: durationEnvOrDefault(envShutdownTimeout, positiveOr(file.ShutdownTimeout, defaultShutdownTimeout)),
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		return Config{}, fmt.Errorf("unknown store driver %q (want %s or %s)", cfg.Store.Driver, StoreMemory, StoreSQLite)
	}
	return cfg, nil
}

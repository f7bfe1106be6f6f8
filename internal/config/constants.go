package config

import "time"

const (
	envConfigFile      = "CONFIG_FILE"
	envPort            = "PORT"
	envRosterPath      = "PLAYER_CSV_PATH"
	envStoreDriver     = "STORE_DRIVER"
	envSQLitePath      = "SQLITE_PATH"
	envSQLiteMaxConns  = "SQLITE_MAX_OPEN_CONNS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envShutdownTimeout = "SHUTDOWN_TIMEOUT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultPort            = "8080"
	defaultRosterPath      = "./player.csv"
	defaultStoreDriver     = StoreMemory
	defaultSQLitePath      = "data/players.db"
	defaultSQLiteMaxConns  = 4
	defaultMetricsPort     = "9090"
	defaultServiceName     = "player-data-service"
	defaultShutdownTimeout = 10 * Duration(time.Second)
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/snankens/player-data-service/internal/config"
	"github.com/snankens/player-data-service/internal/logging"
	"github.com/snankens/player-data-service/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logging.Error(logging.NewLogger(logging.Config{}), "invalid configuration", err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "startup failed", err)
		return 1
	}
	if err := srv.Run(ctx); err != nil {
		logging.Error(logger, "server stopped with error", err)
		return 1
	}
	return 0
}

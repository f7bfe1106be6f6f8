package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/snankens/player-data-service/internal/app/players"
	"github.com/snankens/player-data-service/internal/config"
	httpserver "github.com/snankens/player-data-service/internal/http"
	"github.com/snankens/player-data-service/internal/http/handlers"
	"github.com/snankens/player-data-service/internal/ingest"
	"github.com/snankens/player-data-service/internal/logging"
	"github.com/snankens/player-data-service/internal/metrics"
	"github.com/snankens/player-data-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          store.Store
	loader         *ingest.Loader
	playersService *players.Service
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New opens the store, loads the roster, and wires the HTTP server. The roster
// is fully loaded before New returns; a load failure is returned and no
// listener is created.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	st, err := openStore(cfg.Store)
	if err != nil {
		stopMetrics(metricsShutdown, logger)
		return nil, err
	}

	loader, err := loadRoster(ctx, cfg, st, logger, recorder)
	if err != nil {
		_ = st.Close()
		stopMetrics(metricsShutdown, logger)
		return nil, err
	}

	svc := players.NewService(st)
	httpSrv := buildHTTPServer(cfg, svc, loader, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          st,
		loader:         loader,
		playersService: svc,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		metricsStop:    metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, st store.Store, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		store:      st,
		httpServer: httpSrv,
	}
}

func loadRoster(ctx context.Context, cfg config.Config, st store.Store, logger *slog.Logger, recorder *metrics.Recorder) (*ingest.Loader, error) {
	if err := st.Reset(ctx); err != nil {
		return nil, err
	}
	pipeline := ingest.NewPipeline(st, ingest.WithLogger(logger), ingest.WithMetrics(recorder))
	loader := ingest.NewLoader(pipeline, logger)
	if _, err := loader.Initialize(ctx, cfg.RosterPath); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return loader, nil
}

func buildHTTPServer(cfg config.Config, svc *players.Service, loader *ingest.Loader, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	var statusFn func() ingest.Status
	if loader != nil {
		statusFn = loader.Status
	}
	handler := handlers.NewHandler(svc, logger, statusFn)
	router := httpserver.NewRouter(handler, logger, recorder)

	return newNetHTTPServer(cfg.Port, router)
}

// Run serves HTTP (and metrics when enabled) until ctx is cancelled or the
// HTTP listener fails, then shuts everything down.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
		return serve(s.httpServer)
	})
	if s.metricsServer != nil {
		g.Go(func() error {
			logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
			if err := serve(s.metricsServer); err != nil {
				logging.Warn(s.logger, "metrics server failed", "error", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		return s.gracefulShutdown()
	})

	return g.Wait()
}

func serve(srv httpServer) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) gracefulShutdown() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	var errs []error
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
		errs = append(errs, err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Error(s.logger, "store close failed", err)
			errs = append(errs, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
	return errors.Join(errs...)
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func stopMetrics(shutdown func(context.Context) error, logger *slog.Logger) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logging.Warn(logger, "metrics shutdown failed", "error", err)
	}
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// RosterStatus reports the loader's status.
func (s *Server) RosterStatus() ingest.Status {
	if s.loader == nil {
		return ingest.Status{}
	}
	return s.loader.Status()
}

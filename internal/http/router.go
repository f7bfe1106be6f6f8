package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snankens/player-data-service/internal/http/handlers"
	"github.com/snankens/player-data-service/internal/http/middleware"
	"github.com/snankens/player-data-service/internal/metrics"
)

// NewRouter registers HTTP routes on a chi router wrapped with request
// logging, metrics, and panic recovery.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(logger, recorder, next)
	})
	r.Use(middleware.Recover(logger))
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	handler.Register(r)
	return r
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/http/respond"
	"github.com/snankens/player-data-service/internal/ingest"
	"github.com/snankens/player-data-service/internal/logging"
)

// PlayerService is the read side the handlers depend on.
type PlayerService interface {
	Players(ctx context.Context) ([]players.Player, error)
	PlayerByID(ctx context.Context, id string) (players.Player, error)
}

// Handler wires HTTP routes to the players service.
type Handler struct {
	svc      PlayerService
	logger   *slog.Logger
	statusFn func() ingest.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the
// service always reports ready.
func NewHandler(svc PlayerService, logger *slog.Logger, statusFn func() ingest.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Register mounts the handler's routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/api/players", h.Players)
	r.Get("/api/players/{playerID}", h.PlayerByID)
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		respond.Error(w, r, http.StatusServiceUnavailable, "", "shutting down", h.logger)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

type readyResponse struct {
	Status string        `json:"status"`
	Roster ingest.Status `json:"roster"`
}

// Ready reports whether the roster has been loaded.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.Loaded {
		respond.JSON(w, http.StatusOK, readyResponse{Status: "ready", Roster: status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "roster not loaded"
	}
	respond.Error(w, r, http.StatusServiceUnavailable, "", msg, h.logger)
}

// Players lists every stored player in store order.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.Players(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if all == nil {
		all = []players.Player{}
	}
	respond.JSON(w, http.StatusOK, all, h.logger)
}

// PlayerByID returns one player by exact id.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "playerID")
	p, err := h.svc.PlayerByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, p, h.logger)
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusNotFound, "", "No route for "+r.Method+" "+r.URL.Path, h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Error(w, r, http.StatusMethodNotAllowed, "", "Method "+r.Method+" is not supported for "+r.URL.Path, h.logger)
}

// writeServiceError maps service errors onto the error body. A missing player
// is an expected outcome and is not logged as an error.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.FromContext(r.Context(), h.logger)
	if errors.Is(err, players.ErrNotFound) {
		logging.Info(logger, "player not found", logging.FieldPlayerID, chi.URLParam(r, "playerID"))
		respond.Error(w, r, http.StatusNotFound, "Player Not Found", err.Error(), logger)
		return
	}
	logging.Error(logger, "player query failed", err)
	respond.Error(w, r, http.StatusInternalServerError, "", "An unexpected error occurred", logger)
}

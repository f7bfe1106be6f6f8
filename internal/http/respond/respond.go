// Package respond writes JSON payloads and the service's error body.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/snankens/player-data-service/internal/http/requestutil"
)

// ErrorBody is returned for every non-2xx response.
type ErrorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	RequestID string `json:"requestId,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

// Error writes an ErrorBody. An empty category defaults to the status text.
func Error(w http.ResponseWriter, r *http.Request, status int, category, message string, logger *slog.Logger) {
	if category == "" {
		category = http.StatusText(status)
	}
	body := ErrorBody{
		Status:    status,
		Error:     category,
		Message:   message,
		RequestID: requestutil.RequestID(r),
	}
	if r != nil && r.URL != nil {
		body.Path = r.URL.Path
	}
	JSON(w, status, body, logger)
}

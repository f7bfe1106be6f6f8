package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/snankens/player-data-service/internal/logging"
)

// Status reports the loader's progress for readiness checks.
type Status struct {
	Source    string    `json:"source"`
	Loaded    bool      `json:"loaded"`
	LoadedAt  time.Time `json:"loadedAt,omitempty"`
	Rows      int       `json:"rows"`
	Accepted  int       `json:"accepted"`
	Rejected  int       `json:"rejected"`
	LastError string    `json:"lastError,omitempty"`
}

// Loader performs the one-time roster load.
type Loader struct {
	pipeline *Pipeline
	logger   *slog.Logger
	open     func(path string) (io.ReadCloser, error)
	now      func() time.Time

	started atomic.Bool
	mu      sync.RWMutex
	status  Status
}

func NewLoader(pipeline *Pipeline, logger *slog.Logger) *Loader {
	return &Loader{
		pipeline: pipeline,
		logger:   logger,
		open:     openFile,
		now:      time.Now,
	}
}

// Initialize loads the roster at path. It may only be called once per
// Loader; later calls return ErrAlreadyLoaded without touching the store.
func (l *Loader) Initialize(ctx context.Context, path string) (Summary, error) {
	if !l.started.CompareAndSwap(false, true) {
		return Summary{}, ErrAlreadyLoaded
	}
	l.setStatus(Status{Source: path})

	f, err := l.open(path)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
		l.fail(path, Summary{}, err)
		return Summary{}, err
	}
	defer f.Close()

	summary, err := l.pipeline.Run(ctx, f)
	if err != nil {
		l.fail(path, summary, err)
		return summary, err
	}

	l.setStatus(Status{
		Source:   path,
		Loaded:   true,
		LoadedAt: l.now().UTC(),
		Rows:     summary.Rows,
		Accepted: summary.Accepted,
		Rejected: summary.Rejected,
	})
	logging.Info(l.logger, "roster loaded",
		logging.FieldSource, path,
		logging.FieldRows, summary.Rows,
		logging.FieldAccepted, summary.Accepted,
		logging.FieldRejected, summary.Rejected,
		logging.FieldDurationMS, summary.Duration.Milliseconds(),
	)
	return summary, nil
}

// Status returns a copy of the current load status.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

func (l *Loader) fail(path string, summary Summary, err error) {
	l.setStatus(Status{
		Source:    path,
		Rows:      summary.Rows,
		Accepted:  summary.Accepted,
		Rejected:  summary.Rejected,
		LastError: err.Error(),
	})
	logging.Error(l.logger, "roster load failed", err, logging.FieldSource, path)
}

func (l *Loader) setStatus(s Status) {
	l.mu.Lock()
	l.status = s
	l.mu.Unlock()
}

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

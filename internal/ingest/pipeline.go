// Package ingest loads the roster file into a store. Rows are parsed against a
// fixed column schema, validated, and either saved or rejected with a logged
// reason. Schema problems and I/O failures abort the whole load.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/logging"
	"github.com/snankens/player-data-service/internal/metrics"
	"github.com/snankens/player-data-service/internal/validate"
)

// Sink receives accepted players. Saving an existing id replaces the record.
type Sink interface {
	SavePlayer(ctx context.Context, p players.Player) error
}

// Rejection records a row that parsed but failed validation.
type Rejection struct {
	Line       int                  `json:"line"`
	PlayerID   string               `json:"playerId"`
	Violations []validate.Violation `json:"violations"`
}

// Message renders the violations the way they appear in logs.
func (r Rejection) Message() string { return validate.Join(r.Violations) }

// Summary describes one pipeline run.
type Summary struct {
	Rows       int           `json:"rows"`
	Accepted   int           `json:"accepted"`
	Rejected   int           `json:"rejected"`
	Rejections []Rejection   `json:"rejections,omitempty"`
	Duration   time.Duration `json:"-"`
}

// Pipeline turns roster rows into stored players.
type Pipeline struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

type Option func(*Pipeline)

// WithLogger sets the logger used for rejection and summary events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics records row outcomes and load timings.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = recorder }
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPipeline(sink Sink, opts ...Option) *Pipeline {
	p := &Pipeline{sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run consumes r in full. The first record is the header and is skipped
// without inspection. Validation failures are collected in the summary; any
// other failure stops the run and is returned alongside the partial summary.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (Summary, error) {
	start := p.now()
	summary, err := p.run(ctx, r)
	summary.Duration = p.now().Sub(start)
	p.metrics.RecordLoad(summary.Duration, err)
	return summary, err
}

func (p *Pipeline) run(ctx context.Context, r io.Reader) (Summary, error) {
	var summary Summary

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		return summary, readError(err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, readError(err)
		}
		line, _ := reader.FieldPos(0)
		summary.Rows++

		candidate, err := Build(record)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Line = line
			}
			return summary, err
		}

		if violations := validate.Validate(candidate); len(violations) > 0 {
			rejection := Rejection{Line: line, PlayerID: candidate.ID, Violations: violations}
			summary.Rejected++
			summary.Rejections = append(summary.Rejections, rejection)
			p.metrics.RecordRow(metrics.OutcomeRejected)
			logging.Warn(p.logger, "skipping player due to validation errors",
				logging.FieldPlayerID, candidate.ID,
				logging.FieldLine, line,
				logging.FieldViolations, rejection.Message(),
			)
			continue
		}

		if err := p.sink.SavePlayer(ctx, candidate); err != nil {
			return summary, fmt.Errorf("%w: player %s: %w", ErrStoreWrite, candidate.ID, err)
		}
		summary.Accepted++
		p.metrics.RecordRow(metrics.OutcomeAccepted)
	}
}

// readError classifies a reader failure. CSV syntax problems are row errors,
// anything else means the source itself could not be read.
func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &RowError{Line: parseErr.Line, Err: parseErr.Err}
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

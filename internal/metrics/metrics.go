package metrics

import (
	"sync"
	"time"
)

type ingestStats struct {
	accepted     int
	rejected     int
	loads        int
	loadErrors   int
	lastDuration time.Duration
}

// Recorder captures lightweight, in-memory metrics about roster ingestion
// and forwards everything to OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats ingestStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{otel: otel}
}

// RecordRow counts one ingested row by outcome (OutcomeAccepted or OutcomeRejected).
func (r *Recorder) RecordRow(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	switch outcome {
	case OutcomeAccepted:
		r.stats.accepted++
	case OutcomeRejected:
		r.stats.rejected++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRow(outcome)
	}
}

// RecordLoad tracks one full ingestion run and whether it failed.
func (r *Recorder) RecordLoad(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.stats.loads++
	r.stats.lastDuration = duration
	if err != nil {
		r.stats.loadErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLoad(duration, err)
	}
}

// Snapshot returns a copy of the current ingestion stats.
type Snapshot struct {
	Accepted         int
	Rejected         int
	Loads            int
	LoadErrors       int
	LastLoadDuration time.Duration
}

func (r *Recorder) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		Accepted:         r.stats.accepted,
		Rejected:         r.stats.rejected,
		Loads:            r.stats.loads,
		LoadErrors:       r.stats.loadErrors,
		LastLoadDuration: r.stats.lastDuration,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

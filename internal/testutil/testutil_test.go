package testutil

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}

	clock := SteppingClock(now, time.Second)
	first, second := clock(), clock()
	if !first.Equal(now) || second.Sub(first) != time.Second {
		t.Fatalf("expected one second step, got %v then %v", first, second)
	}
}

func TestFixturesHelper(t *testing.T) {
	p := SamplePlayer("aardsda01")
	if p.ID != "aardsda01" || p.FirstName == "" || p.Debut == nil {
		t.Fatalf("unexpected player fixture %+v", p)
	}
	if got := SamplePlayers("a", "b"); len(got) != 2 || got[1].ID != "b" {
		t.Fatalf("unexpected players %+v", got)
	}
}

func TestRosterHelpers(t *testing.T) {
	row := RosterRow("aardsda01", map[int]string{ColBats: "B"})
	if len(row) != len(RosterHeader) {
		t.Fatalf("expected %d fields, got %d", len(RosterHeader), len(row))
	}
	if row[ColBats] != "B" || row[ColThrows] != "R" {
		t.Fatalf("override not applied: %v", row)
	}

	path := WriteRoster(t, RosterCSV(row))
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open roster: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read roster: %v", err)
	}
	if len(records) != 2 || records[0][0] != "playerID" || records[1][0] != "aardsda01" {
		t.Fatalf("unexpected records %v", records)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServiceHelper(t *testing.T) {
	svc, ms := NewServiceWithPlayers(SamplePlayers("a", "b"))
	got, err := svc.Players(context.Background())
	if err != nil || len(got) != 2 {
		t.Fatalf("expected two players, got %v err %v", got, err)
	}
	if n, _ := ms.Count(context.Background()); n != 2 {
		t.Fatalf("expected store count 2, got %d", n)
	}
}

func TestServerStubs(t *testing.T) {
	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &BlockingHTTPServer{Unblock: make(chan struct{}), HandlerVal: http.NewServeMux()}
	if err := b.ListenAndServe(); err != nil {
		t.Fatalf("expected nil listen error for blocking server")
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown called once")
	}

	e := &ErrHTTPServer{}
	if err := e.ListenAndServe(); err == nil {
		t.Fatalf("expected listen error")
	}
	_ = e.Shutdown(context.Background())
	if e.Addr() == "" || e.ShutdownCalls != 1 {
		t.Fatalf("unexpected ErrHTTPServer state %+v", e)
	}

	c := &CloseableHTTPServer{}
	if err := c.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	_ = c.Shutdown(context.Background())
	if c.ShutdownCalls != 1 {
		t.Fatalf("expected shutdown call for CloseableHTTPServer")
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

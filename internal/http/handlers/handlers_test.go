package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/http/respond"
	"github.com/snankens/player-data-service/internal/ingest"
	"github.com/snankens/player-data-service/internal/testutil"
)

type failingService struct{ err error }

func (f failingService) Players(context.Context) ([]players.Player, error) { return nil, f.err }

func (f failingService) PlayerByID(context.Context, string) (players.Player, error) {
	return players.Player{}, f.err
}

type nilListService struct{ failingService }

func (nilListService) Players(context.Context) ([]players.Player, error) { return nil, nil }

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)
	h.Register(r)
	return r
}

func TestHealth(t *testing.T) {
	h := NewHandler(failingService{}, nil, nil)
	rr := testutil.Serve(newRouter(h), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
}

func TestHealthShuttingDown(t *testing.T) {
	h := NewHandler(failingService{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/health", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestPlayersListsInStoreOrder(t *testing.T) {
	svc, _ := testutil.NewServiceWithPlayers(testutil.SamplePlayers("zeta01", "alpha01", "mid01"))
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newRouter(h), http.MethodGet, "/api/players", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got []players.Player
	testutil.DecodeJSON(t, rr, &got)
	if len(got) != 3 {
		t.Fatalf("expected 3 players, got %d", len(got))
	}
	for i, id := range []string{"zeta01", "alpha01", "mid01"} {
		if got[i].ID != id {
			t.Fatalf("expected %s at %d, got %s", id, i, got[i].ID)
		}
	}
	if got[0].Debut == nil || !got[0].Debut.Equal(players.NewDate(2004, time.April, 6)) {
		t.Fatalf("expected debut date to survive encoding, got %v", got[0].Debut)
	}
}

func TestPlayersEmptyStoreReturnsArray(t *testing.T) {
	h := NewHandler(nilListService{}, nil, nil)
	rr := testutil.Serve(newRouter(h), http.MethodGet, "/api/players", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := strings.TrimSpace(rr.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestPlayerByID(t *testing.T) {
	svc, _ := testutil.NewServiceWithPlayers(testutil.SamplePlayers("aardsda01", "aaronha01"))
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newRouter(h), http.MethodGet, "/api/players/aaronha01", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var got players.Player
	testutil.DecodeJSON(t, rr, &got)
	if got.ID != "aaronha01" || got.FirstName != "David" {
		t.Fatalf("unexpected player %+v", got)
	}
}

func TestPlayerByIDIsCaseSensitive(t *testing.T) {
	svc, _ := testutil.NewServiceWithPlayers(testutil.SamplePlayers("aaronha01"))
	h := NewHandler(svc, nil, nil)

	rr := testutil.Serve(newRouter(h), http.MethodGet, "/api/players/AARONHA01", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestPlayerByIDNotFound(t *testing.T) {
	svc, _ := testutil.NewServiceWithPlayers(nil)
	logger, buf := testutil.NewBufferLogger()
	h := NewHandler(svc, logger, nil)

	rr := testutil.Serve(newRouter(h), http.MethodGet, "/api/players/nobody01", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	var body respond.ErrorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Status != http.StatusNotFound || body.Error != "Player Not Found" {
		t.Fatalf("unexpected error body %+v", body)
	}
	if body.Message != "Player with ID nobody01 not found" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Path != "/api/players/nobody01" {
		t.Fatalf("unexpected path %q", body.Path)
	}
	if strings.Contains(buf.String(), "level=ERROR") {
		t.Fatalf("not found must not be logged as an error: %s", buf.String())
	}
}

func TestServiceFailureIsInternalError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	h := NewHandler(failingService{err: errors.New("database is locked")}, logger, nil)

	for _, path := range []string{"/api/players", "/api/players/aaronha01"} {
		rr := testutil.Serve(newRouter(h), http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusInternalServerError)

		var body respond.ErrorBody
		testutil.DecodeJSON(t, rr, &body)
		if body.Error != "Internal Server Error" || body.Message != "An unexpected error occurred" {
			t.Fatalf("unexpected error body %+v", body)
		}
		if strings.Contains(rr.Body.String(), "database is locked") {
			t.Fatalf("internal detail leaked to client")
		}
	}
	if !strings.Contains(buf.String(), "database is locked") {
		t.Fatalf("expected failure detail in logs")
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	h := NewHandler(failingService{}, nil, nil)
	router := newRouter(h)

	rr := testutil.Serve(router, http.MethodGet, "/api/teams", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var body respond.ErrorBody
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "Not Found" {
		t.Fatalf("unexpected 404 body %+v", body)
	}

	rr = testutil.Serve(router, http.MethodPost, "/api/players", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "Method Not Allowed" {
		t.Fatalf("unexpected 405 body %+v", body)
	}
}

func TestReady(t *testing.T) {
	t.Run("no status source", func(t *testing.T) {
		h := NewHandler(failingService{}, nil, nil)
		rr := testutil.Serve(newRouter(h), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("loaded", func(t *testing.T) {
		status := ingest.Status{Source: "player.csv", Loaded: true, Rows: 3, Accepted: 2, Rejected: 1}
		h := NewHandler(failingService{}, nil, func() ingest.Status { return status })
		rr := testutil.Serve(newRouter(h), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var body readyResponse
		testutil.DecodeJSON(t, rr, &body)
		if body.Status != "ready" || body.Roster.Accepted != 2 || body.Roster.Rejected != 1 {
			t.Fatalf("unexpected ready body %+v", body)
		}
	})

	t.Run("failed", func(t *testing.T) {
		status := ingest.Status{Source: "player.csv", LastError: "roster source unavailable"}
		h := NewHandler(failingService{}, nil, func() ingest.Status { return status })
		rr := testutil.Serve(newRouter(h), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

		var body respond.ErrorBody
		testutil.DecodeJSON(t, rr, &body)
		if body.Message != "roster source unavailable" {
			t.Fatalf("unexpected message %q", body.Message)
		}
	})

	t.Run("pending", func(t *testing.T) {
		h := NewHandler(failingService{}, nil, func() ingest.Status { return ingest.Status{} })
		rr := testutil.Serve(newRouter(h), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	})
}

package store

import (
	"context"
	"testing"

	"github.com/snankens/player-data-service/internal/domain/players"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, p := range []players.Player{
		{ID: "1", LastName: "One"},
		{ID: "2", LastName: "Two"},
	} {
		if err := s.SavePlayer(ctx, p); err != nil {
			t.Fatalf("save %s: %v", p.ID, err)
		}
	}

	list, err := s.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := len(list); got != 2 {
		t.Fatalf("expected 2 players, got %d", got)
	}

	p, ok, err := s.GetPlayer(ctx, "1")
	if err != nil || !ok {
		t.Fatalf("expected to find player with id 1 (err=%v)", err)
	}
	if p.LastName != "One" {
		t.Fatalf("unexpected last name %s", p.LastName)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok, err := s.GetPlayer(context.Background(), "missing"); ok || err != nil {
		t.Fatalf("expected missing id to return false without error, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreGetIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.SavePlayer(ctx, players.Player{ID: "aaronha01"})

	if _, ok, _ := s.GetPlayer(ctx, "AaronHa01"); ok {
		t.Fatalf("expected lookup to be case-sensitive")
	}
}

func TestMemoryStoreSaveOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.SavePlayer(ctx, players.Player{ID: "a", FirstName: "old"})
	_ = s.SavePlayer(ctx, players.Player{ID: "b"})
	_ = s.SavePlayer(ctx, players.Player{ID: "a", FirstName: "new"})

	list, _ := s.ListPlayers(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 players after overwrite, got %d", len(list))
	}
	if list[0].ID != "a" || list[0].FirstName != "new" || list[1].ID != "b" {
		t.Fatalf("expected overwrite to keep insertion order with latest data, got %+v", list)
	}
	if n, _ := s.Count(ctx); n != 2 {
		t.Fatalf("expected count 2, got %d", n)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.SavePlayer(ctx, players.Player{ID: "copy", FirstName: "original", Weight: players.IntPtr(200)})

	list, _ := s.ListPlayers(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 player, got %d", len(list))
	}

	list[0].FirstName = "mutated"
	*list[0].Weight = 1

	p, ok, _ := s.GetPlayer(ctx, "copy")
	if !ok {
		t.Fatalf("expected to find player")
	}
	if p.FirstName != "original" || *p.Weight != 200 {
		t.Fatalf("expected store to remain unchanged, got %+v", p)
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.SavePlayer(ctx, players.Player{ID: "1"})
	_ = s.SavePlayer(ctx, players.Player{ID: "2"})

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Fatalf("expected empty store after reset, got %d", n)
	}
	_ = s.SavePlayer(ctx, players.Player{ID: "2"})
	list, _ := s.ListPlayers(ctx)
	if len(list) != 1 || list[0].ID != "2" {
		t.Fatalf("unexpected players after reset %+v", list)
	}
}

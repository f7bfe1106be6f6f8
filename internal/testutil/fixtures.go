package testutil

import (
	"time"

	"github.com/snankens/player-data-service/internal/domain/players"
)

// SamplePlayer returns a valid, fully populated living player with the provided id.
func SamplePlayer(id string) players.Player {
	return players.Player{
		ID:           id,
		BirthYear:    1981,
		BirthMonth:   12,
		BirthDay:     13,
		BirthCountry: "USA",
		BirthState:   "CA",
		BirthCity:    "Denver",
		FirstName:    "David",
		LastName:     "Aardsma",
		GivenName:    "David Allan",
		Weight:       players.IntPtr(215),
		Height:       players.IntPtr(75),
		Bats:         "R",
		ThrowingHand: "R",
		Debut:        players.DatePtr(players.NewDate(2004, time.April, 6)),
		FinalGame:    players.DatePtr(players.NewDate(2015, time.August, 23)),
		RetroID:      "aardd001",
		BbrefID:      id,
	}
}

// SamplePlayers returns one SamplePlayer per id, in order.
func SamplePlayers(ids ...string) []players.Player {
	out := make([]players.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, SamplePlayer(id))
	}
	return out
}

// Package parse converts raw roster tokens into typed values.
package parse

import (
	"strconv"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/timeutil"
)

// RequiredInt parses a base-10 integer, treating an empty token as 0.
func RequiredInt(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return strconv.Atoi(text)
}

// OptionalInt parses a base-10 integer, treating an empty token as absent.
func OptionalInt(text string) (*int, error) {
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FlexibleDate tries DD/MM/YYYY, then YYYY-MM-DD. Anything else, including
// an empty token, yields nil rather than an error.
func FlexibleDate(text string) *players.Date {
	if text == "" {
		return nil
	}
	if t, err := timeutil.ParseDayFirst(text); err == nil {
		return players.DatePtr(players.DateOf(t))
	}
	if t, err := timeutil.ParseDate(text); err == nil {
		return players.DatePtr(players.DateOf(t))
	}
	return nil
}

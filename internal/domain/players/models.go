package players

import (
	"encoding/json"
	"time"

	"github.com/snankens/player-data-service/internal/timeutil"
)

// Player is the canonical roster record exposed by the service.
// Death fields, weight and height are pointers so an empty source column stays absent.
type Player struct {
	ID           string `json:"playerId"`
	BirthYear    int    `json:"birthYear"`
	BirthMonth   int    `json:"birthMonth"`
	BirthDay     int    `json:"birthDay"`
	BirthCountry string `json:"birthCountry"`
	BirthState   string `json:"birthState"`
	BirthCity    string `json:"birthCity"`
	DeathYear    *int   `json:"deathYear"`
	DeathMonth   *int   `json:"deathMonth"`
	DeathDay     *int   `json:"deathDay"`
	DeathCountry string `json:"deathCountry"`
	DeathState   string `json:"deathState"`
	DeathCity    string `json:"deathCity"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	GivenName    string `json:"givenName"`
	Weight       *int   `json:"weight"`
	Height       *int   `json:"height"`
	Bats         string `json:"bats"`
	ThrowingHand string `json:"throwingHand"`
	Debut        *Date  `json:"debut"`
	FinalGame    *Date  `json:"finalGame"`
	RetroID      string `json:"retroId"`
	BbrefID      string `json:"bbrefId"`
}

// Date is a calendar day without a time component, serialized as YYYY-MM-DD.
type Date struct {
	t time.Time
}

// NewDate builds a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Time returns the date at UTC midnight.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d falls on a later day than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both dates are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) String() string {
	return timeutil.FormatDate(d.t)
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD".
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := timeutil.ParseDate(raw)
	if err != nil {
		return err
	}
	*d = DateOf(parsed)
	return nil
}

// IntPtr returns a pointer to v; handy for building optional fields.
func IntPtr(v int) *int {
	return &v
}

// DatePtr returns a pointer to d.
func DatePtr(d Date) *Date {
	return &d
}

// Clone returns a copy of p that shares no pointers with it.
func (p Player) Clone() Player {
	out := p
	out.DeathYear = cloneInt(p.DeathYear)
	out.DeathMonth = cloneInt(p.DeathMonth)
	out.DeathDay = cloneInt(p.DeathDay)
	out.Weight = cloneInt(p.Weight)
	out.Height = cloneInt(p.Height)
	if p.Debut != nil {
		out.Debut = DatePtr(*p.Debut)
	}
	if p.FinalGame != nil {
		out.FinalGame = DatePtr(*p.FinalGame)
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	return IntPtr(*v)
}

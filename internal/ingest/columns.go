package ingest

import (
	"fmt"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/parse"
)

// Kind describes how a column's raw text is interpreted.
type Kind int

const (
	KindText Kind = iota
	KindRequiredInt
	KindOptionalInt
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRequiredInt:
		return "required_int"
	case KindOptionalInt:
		return "optional_int"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Column maps one positional roster column onto a Player field.
type Column struct {
	Name  string
	Kind  Kind
	apply func(p *players.Player, raw string) error
}

// Columns is the roster schema in file order. Build applies it uniformly, so
// adding or reordering a column happens here and nowhere else.
var Columns = []Column{
	text("playerID", func(p *players.Player) *string { return &p.ID }),
	requiredInt("birthYear", func(p *players.Player) *int { return &p.BirthYear }),
	requiredInt("birthMonth", func(p *players.Player) *int { return &p.BirthMonth }),
	requiredInt("birthDay", func(p *players.Player) *int { return &p.BirthDay }),
	text("birthCountry", func(p *players.Player) *string { return &p.BirthCountry }),
	text("birthState", func(p *players.Player) *string { return &p.BirthState }),
	text("birthCity", func(p *players.Player) *string { return &p.BirthCity }),
	optionalInt("deathYear", func(p *players.Player) **int { return &p.DeathYear }),
	optionalInt("deathMonth", func(p *players.Player) **int { return &p.DeathMonth }),
	optionalInt("deathDay", func(p *players.Player) **int { return &p.DeathDay }),
	text("deathCountry", func(p *players.Player) *string { return &p.DeathCountry }),
	text("deathState", func(p *players.Player) *string { return &p.DeathState }),
	text("deathCity", func(p *players.Player) *string { return &p.DeathCity }),
	text("nameFirst", func(p *players.Player) *string { return &p.FirstName }),
	text("nameLast", func(p *players.Player) *string { return &p.LastName }),
	text("nameGiven", func(p *players.Player) *string { return &p.GivenName }),
	optionalInt("weight", func(p *players.Player) **int { return &p.Weight }),
	optionalInt("height", func(p *players.Player) **int { return &p.Height }),
	text("bats", func(p *players.Player) *string { return &p.Bats }),
	text("throws", func(p *players.Player) *string { return &p.ThrowingHand }),
	date("debut", func(p *players.Player) **players.Date { return &p.Debut }),
	date("finalGame", func(p *players.Player) **players.Date { return &p.FinalGame }),
	text("retroID", func(p *players.Player) *string { return &p.RetroID }),
	text("bbrefID", func(p *players.Player) *string { return &p.BbrefID }),
}

// ColumnNames returns the schema's column names in order.
func ColumnNames() []string {
	names := make([]string, 0, len(Columns))
	for _, c := range Columns {
		names = append(names, c.Name)
	}
	return names
}

// Build turns one data row into a candidate player. It fails only when the row
// does not fit the schema: wrong column count or non-numeric integer text.
func Build(row []string) (players.Player, error) {
	var p players.Player
	if len(row) != len(Columns) {
		return p, &RowError{Err: fmt.Errorf("expected %d columns, got %d", len(Columns), len(row))}
	}
	for i, col := range Columns {
		if err := col.apply(&p, row[i]); err != nil {
			return players.Player{}, &RowError{Column: col.Name, Err: err}
		}
	}
	return p, nil
}

func text(name string, field func(*players.Player) *string) Column {
	return Column{Name: name, Kind: KindText, apply: func(p *players.Player, raw string) error {
		*field(p) = raw
		return nil
	}}
}

func requiredInt(name string, field func(*players.Player) *int) Column {
	return Column{Name: name, Kind: KindRequiredInt, apply: func(p *players.Player, raw string) error {
		v, err := parse.RequiredInt(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*field(p) = v
		return nil
	}}
}

func optionalInt(name string, field func(*players.Player) **int) Column {
	return Column{Name: name, Kind: KindOptionalInt, apply: func(p *players.Player, raw string) error {
		v, err := parse.OptionalInt(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*field(p) = v
		return nil
	}}
}

func date(name string, field func(*players.Player) **players.Date) Column {
	return Column{Name: name, Kind: KindDate, apply: func(p *players.Player, raw string) error {
		*field(p) = parse.FlexibleDate(raw)
		return nil
	}}
}

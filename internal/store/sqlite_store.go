package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/timeutil"
)

const playersSchema = `
CREATE TABLE IF NOT EXISTS players (
	player_id     TEXT PRIMARY KEY,
	birth_year    INTEGER NOT NULL,
	birth_month   INTEGER NOT NULL,
	birth_day     INTEGER NOT NULL,
	birth_country TEXT NOT NULL,
	birth_state   TEXT NOT NULL,
	birth_city    TEXT NOT NULL,
	death_year    INTEGER,
	death_month   INTEGER,
	death_day     INTEGER,
	death_country TEXT NOT NULL,
	death_state   TEXT NOT NULL,
	death_city    TEXT NOT NULL,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	given_name    TEXT NOT NULL,
	weight        INTEGER,
	height        INTEGER,
	bats          TEXT NOT NULL,
	throws        TEXT NOT NULL,
	debut         TEXT,
	final_game    TEXT,
	retro_id      TEXT NOT NULL,
	bbref_id      TEXT NOT NULL
);`

var playerColumns = []string{
	"player_id", "birth_year", "birth_month", "birth_day", "birth_country", "birth_state", "birth_city",
	"death_year", "death_month", "death_day", "death_country", "death_state", "death_city",
	"first_name", "last_name", "given_name", "weight", "height", "bats", "throws",
	"debut", "final_game", "retro_id", "bbref_id",
}

// SQLiteStore persists players in a SQLite database.
// Rows are listed in first-insertion order; an upsert keeps the original rowid.
type SQLiteStore struct {
	db     *sql.DB
	memory bool
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{db: db, memory: path == ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return s, nil
}

// LimitConnections caps the connection pool. Non-positive values and
// in-memory databases are left alone.
func (s *SQLiteStore) LimitConnections(n int) {
	if n <= 0 || s.memory {
		return
	}
	s.db.SetMaxOpenConns(n)
	s.db.SetMaxIdleConns(n)
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(playersSchema)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset deletes every stored player so a fresh load starts from an empty table.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("reset players: %w", err)
	}
	return nil
}

// SavePlayer upserts the player keyed by its ID.
func (s *SQLiteStore) SavePlayer(ctx context.Context, p players.Player) error {
	updates := make([]string, 0, len(playerColumns)-1)
	for _, col := range playerColumns[1:] {
		updates = append(updates, col+" = excluded."+col)
	}
	query := fmt.Sprintf(
		"INSERT INTO players (%s) VALUES (%s) ON CONFLICT(player_id) DO UPDATE SET %s",
		strings.Join(playerColumns, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(playerColumns)), ", "),
		strings.Join(updates, ", "),
	)

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.BirthYear, p.BirthMonth, p.BirthDay, p.BirthCountry, p.BirthState, p.BirthCity,
		nullInt(p.DeathYear), nullInt(p.DeathMonth), nullInt(p.DeathDay), p.DeathCountry, p.DeathState, p.DeathCity,
		p.FirstName, p.LastName, p.GivenName, nullInt(p.Weight), nullInt(p.Height), p.Bats, p.ThrowingHand,
		nullDate(p.Debut), nullDate(p.FinalGame), p.RetroID, p.BbrefID,
	)
	if err != nil {
		return fmt.Errorf("save player %s: %w", p.ID, err)
	}
	return nil
}

// ListPlayers returns every stored player.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]players.Player, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+strings.Join(playerColumns, ", ")+" FROM players ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var result []players.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if result == nil {
		result = []players.Player{}
	}
	return result, nil
}

// GetPlayer retrieves a player by exact ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (players.Player, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+strings.Join(playerColumns, ", ")+" FROM players WHERE player_id = ?", id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return players.Player{}, false, nil
	}
	if err != nil {
		return players.Player{}, false, fmt.Errorf("get player %s: %w", id, err)
	}
	return p, true, nil
}

// Count returns the number of stored players.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&n); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (players.Player, error) {
	var (
		p                               players.Player
		deathYear, deathMonth, deathDay sql.NullInt64
		weight, height                  sql.NullInt64
		debut, finalGame                sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.BirthYear, &p.BirthMonth, &p.BirthDay, &p.BirthCountry, &p.BirthState, &p.BirthCity,
		&deathYear, &deathMonth, &deathDay, &p.DeathCountry, &p.DeathState, &p.DeathCity,
		&p.FirstName, &p.LastName, &p.GivenName, &weight, &height, &p.Bats, &p.ThrowingHand,
		&debut, &finalGame, &p.RetroID, &p.BbrefID,
	)
	if err != nil {
		return players.Player{}, err
	}

	p.DeathYear = intFromNull(deathYear)
	p.DeathMonth = intFromNull(deathMonth)
	p.DeathDay = intFromNull(deathDay)
	p.Weight = intFromNull(weight)
	p.Height = intFromNull(height)
	if p.Debut, err = dateFromNull(debut); err != nil {
		return players.Player{}, err
	}
	if p.FinalGame, err = dateFromNull(finalGame); err != nil {
		return players.Player{}, err
	}
	return p, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullDate(d *players.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return players.IntPtr(int(v.Int64))
}

func dateFromNull(v sql.NullString) (*players.Date, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := timeutil.ParseDate(v.String)
	if err != nil {
		return nil, fmt.Errorf("decode date %q: %w", v.String, err)
	}
	return players.DatePtr(players.DateOf(t)), nil
}

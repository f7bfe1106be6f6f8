package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// RosterHeader lists the roster export columns in file order.
var RosterHeader = []string{
	"playerID", "birthYear", "birthMonth", "birthDay", "birthCountry", "birthState", "birthCity",
	"deathYear", "deathMonth", "deathDay", "deathCountry", "deathState", "deathCity",
	"nameFirst", "nameLast", "nameGiven", "weight", "height", "bats", "throws",
	"debut", "finalGame", "retroID", "bbrefID",
}

// Roster column positions used by row builders.
const (
	ColPlayerID   = 0
	ColBirthYear  = 1
	ColBirthMonth = 2
	ColBirthDay   = 3
	ColDeathYear  = 7
	ColDeathMonth = 8
	ColDeathDay   = 9
	ColFirstName  = 13
	ColLastName   = 14
	ColWeight     = 16
	ColHeight     = 17
	ColBats       = 18
	ColThrows     = 19
	ColDebut      = 20
	ColFinalGame  = 21
)

// RosterRow returns the raw fields of a valid row matching SamplePlayer(id).
// Each override sets the field at its column position.
func RosterRow(id string, overrides map[int]string) []string {
	row := []string{
		id, "1981", "12", "13", "USA", "CA", "Denver",
		"", "", "", "", "", "",
		"David", "Aardsma", "David Allan", "215", "75", "R", "R",
		"2004-04-06", "2015-08-23", "aardd001", id,
	}
	for col, v := range overrides {
		row[col] = v
	}
	return row
}

// RosterCSV renders rows beneath the roster header.
func RosterCSV(rows ...[]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(RosterHeader)
	for _, r := range rows {
		_ = w.Write(r)
	}
	w.Flush()
	return buf.String()
}

// WriteRoster writes contents to a file in a per-test temp dir and returns its path.
func WriteRoster(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "player.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

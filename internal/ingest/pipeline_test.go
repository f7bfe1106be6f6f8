package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snankens/player-data-service/internal/domain/players"
	"github.com/snankens/player-data-service/internal/metrics"
	"github.com/snankens/player-data-service/internal/store"
	"github.com/snankens/player-data-service/internal/testutil"
	"github.com/snankens/player-data-service/internal/validate"
)

type failingSink struct{ err error }

func (f failingSink) SavePlayer(context.Context, players.Player) error { return f.err }

func runPipeline(t *testing.T, csv string) (*store.MemoryStore, Summary, error, string) {
	t.Helper()
	ms := store.NewMemoryStore()
	logger, buf := testutil.NewBufferLogger()
	summary, err := NewPipeline(ms, WithLogger(logger)).Run(context.Background(), strings.NewReader(csv))
	return ms, summary, err, buf.String()
}

func storedIDs(t *testing.T, ms *store.MemoryStore) []string {
	t.Helper()
	all, err := ms.ListPlayers(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestRunStoresValidRowsInOrder(t *testing.T) {
	ms, summary, err, _ := runPipeline(t, testutil.RosterCSV(
		testutil.RosterRow("b", nil),
		testutil.RosterRow("a", nil),
		testutil.RosterRow("c", nil),
	))
	require.NoError(t, err)
	assert.Equal(t, Summary{Rows: 3, Accepted: 3, Duration: summary.Duration}, summary)
	assert.Equal(t, []string{"b", "a", "c"}, storedIDs(t, ms))

	got, ok, err := ms.GetPlayer(context.Background(), "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testutil.SamplePlayer("a"), got)
}

func TestRunMeasuresDurationWithClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := NewPipeline(store.NewMemoryStore(), WithClock(testutil.SteppingClock(start, 250*time.Millisecond)))

	summary, err := p.Run(context.Background(), strings.NewReader(testutil.RosterCSV(testutil.RosterRow("a", nil))))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, summary.Duration)
}

func TestRunSkipsHeaderUnconditionally(t *testing.T) {
	csv := strings.Join(testutil.RosterRow("looks-like-data", nil), ",") + "\n" +
		strings.Join(testutil.RosterRow("real", nil), ",") + "\n"
	ms, summary, err, _ := runPipeline(t, csv)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rows)
	assert.Equal(t, []string{"real"}, storedIDs(t, ms))
}

func TestRunEmptyAndHeaderOnly(t *testing.T) {
	for name, csv := range map[string]string{
		"empty":       "",
		"header only": testutil.RosterCSV(),
	} {
		t.Run(name, func(t *testing.T) {
			ms, summary, err, _ := runPipeline(t, csv)
			require.NoError(t, err)
			assert.Zero(t, summary.Rows)
			assert.Empty(t, storedIDs(t, ms))
		})
	}
}

func TestRunRejectsInvalidRowsAndContinues(t *testing.T) {
	ms, summary, err, logs := runPipeline(t, testutil.RosterCSV(
		testutil.RosterRow("good1", nil),
		testutil.RosterRow("lefty", map[int]string{testutil.ColBats: "X"}),
		testutil.RosterRow("good2", nil),
	))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, []string{"good1", "good2"}, storedIDs(t, ms))

	require.Len(t, summary.Rejections, 1)
	rej := summary.Rejections[0]
	assert.Equal(t, "lefty", rej.PlayerID)
	assert.Equal(t, 3, rej.Line)
	require.Len(t, rej.Violations, 1)
	assert.Equal(t, validate.RuleHandedness, rej.Violations[0].Rule)

	assert.Contains(t, logs, "skipping player due to validation errors")
	assert.Contains(t, logs, "player_id=lefty")
	assert.Contains(t, logs, "Bats must be")
}

func TestRunRejectsDeathBeforeBirth(t *testing.T) {
	ms, summary, err, _ := runPipeline(t, testutil.RosterCSV(
		testutil.RosterRow("ghost", map[int]string{
			testutil.ColDeathYear:  "1950",
			testutil.ColDeathMonth: "1",
			testutil.ColDeathDay:   "1",
		}),
	))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Rejected)
	assert.Empty(t, storedIDs(t, ms))
	assert.Equal(t, validate.RuleDeathAfterBirth, summary.Rejections[0].Violations[0].Rule)
}

func TestRunDuplicateIDLastRowWins(t *testing.T) {
	ms, summary, err, _ := runPipeline(t, testutil.RosterCSV(
		testutil.RosterRow("dup", map[int]string{testutil.ColFirstName: "First"}),
		testutil.RosterRow("other", nil),
		testutil.RosterRow("dup", map[int]string{testutil.ColFirstName: "Second"}),
	))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Accepted)
	assert.Equal(t, []string{"dup", "other"}, storedIDs(t, ms))

	got, ok, _ := ms.GetPlayer(context.Background(), "dup")
	require.True(t, ok)
	assert.Equal(t, "Second", got.FirstName)
}

func TestRunAbortsOnMalformedRows(t *testing.T) {
	cases := map[string]struct {
		csv    string
		line   int
		column string
	}{
		"short row": {
			csv:  testutil.RosterCSV(testutil.RosterRow("ok", nil), []string{"short", "row"}),
			line: 3,
		},
		"non numeric weight": {
			csv:    testutil.RosterCSV(testutil.RosterRow("heavy", map[int]string{testutil.ColWeight: "lots"})),
			line:   2,
			column: "weight",
		},
		"non numeric birth year": {
			csv:    testutil.RosterCSV(testutil.RosterRow("old", map[int]string{testutil.ColBirthYear: "18x0"})),
			line:   2,
			column: "birthYear",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err, _ := runPipeline(t, tc.csv)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRow)
			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tc.line, rowErr.Line)
			assert.Equal(t, tc.column, rowErr.Column)
		})
	}
}

func TestRunQuotedFieldsKeepCommas(t *testing.T) {
	row := testutil.RosterRow("quoted", map[int]string{6: "Washington, D.C."})
	ms, _, err, _ := runPipeline(t, testutil.RosterCSV(row))
	require.NoError(t, err)
	got, ok, _ := ms.GetPlayer(context.Background(), "quoted")
	require.True(t, ok)
	assert.Equal(t, "Washington, D.C.", got.BirthCity)
}

func TestRunStoreFailureIsFatal(t *testing.T) {
	boom := errors.New("disk full")
	_, err := NewPipeline(failingSink{err: boom}).Run(context.Background(),
		strings.NewReader(testutil.RosterCSV(testutil.RosterRow("a", nil))))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreWrite)
	assert.ErrorIs(t, err, boom)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPipeline(store.NewMemoryStore()).Run(ctx,
		strings.NewReader(testutil.RosterCSV(testutil.RosterRow("a", nil))))
	assert.ErrorIs(t, err, context.Canceled)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("io failure") }

func TestRunReadFailureIsSourceUnavailable(t *testing.T) {
	_, err := NewPipeline(store.NewMemoryStore()).Run(context.Background(), brokenReader{})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRunRecordsMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	_, err := NewPipeline(store.NewMemoryStore(), WithMetrics(rec)).Run(context.Background(),
		strings.NewReader(testutil.RosterCSV(
			testutil.RosterRow("a", nil),
			testutil.RosterRow("b", map[int]string{testutil.ColHeight: "-1"}),
		)))
	require.NoError(t, err)

	snap := rec.Snapshot()
	assert.Equal(t, 1, snap.Accepted)
	assert.Equal(t, 1, snap.Rejected)
	assert.Equal(t, 1, snap.Loads)
	assert.Zero(t, snap.LoadErrors)
}

package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	results := syntheticResults()
	summary := Aggregate(results)

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	require.DirExists(t, w.BaseDir())

	t.Run("card summary", func(t *testing.T) {
		require.NoError(t, w.WriteCardSummary(summary.Cards))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "card_summary.csv"))
		require.Len(t, rows, len(summary.Cards)+1)
		require.Equal(t, []string{
			"card", "bought", "played", "to_mat", "first_play_early",
			"first_play_mid", "first_play_late", "games_owned", "wins_when_owned",
		}, rows[0])
		require.Equal(t, summary.Cards[0].Card, rows[1][0])
	})

	t.Run("field summary", func(t *testing.T) {
		require.NoError(t, w.WriteFieldSummary(summary.Fields))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "field_summary.csv"))
		require.Len(t, rows, len(summary.Fields)+1)
		require.Equal(t, []string{"field", "visits", "initiative_claims"}, rows[0])
	})

	t.Run("game summary", func(t *testing.T) {
		require.NoError(t, w.WriteGameSummary(summary.Games))

		rows := readCSV(t, filepath.Join(w.BaseDir(), "game_summary.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "game-a", rows[1][0])
		require.Equal(t, "7", rows[1][1])
		require.Equal(t, "24|10|3", rows[1][6], "per-seat vps pack into one cell")
	})

	t.Run("event logs", func(t *testing.T) {
		require.NoError(t, w.WriteEventLogs(results))

		for _, res := range results {
			path := filepath.Join(w.BaseDir(), "events", res.GameID+".jsonl")
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NotEmpty(t, data)
		}
	})
}

package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hex/game"
)

func TestCollector(t *testing.T) {
	t.Run("Counts episodes and full playouts per search", func(t *testing.T) {
		c := NewCollector()

		c.Start()
		c.SetTreeReset(true)
		for i := 0; i < 5; i++ {
			c.AddEpisode()
		}
		c.AddFullPlayout()
		got := c.Complete()

		require.Equal(t, 5, got.Episodes)
		require.Equal(t, 1, got.FullPlayouts)
		require.True(t, got.TreeReset)
		require.GreaterOrEqual(t, got.Duration, time.Duration(0))
	})

	t.Run("Start resets the counters for the next search", func(t *testing.T) {
		c := NewCollector()

		c.Start()
		c.AddEpisode()
		c.AddFullPlayout()
		c.Complete()

		c.Start()
		c.SetTreeReset(false)
		c.AddEpisode()
		got := c.Complete()

		require.Equal(t, 1, got.Episodes)
		require.Equal(t, 0, got.FullPlayouts)
		require.False(t, got.TreeReset)
	})

	t.Run("Dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()

		c.Start()
		c.AddEpisode()
		c.AddFullPlayout()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() {
		require.NoError(t, os.Chdir(wd))
	}()

	w, err := NewWriter("test")
	require.NoError(t, err)

	t.Run("Stores agent configs as CSV", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Duration: 50 * time.Millisecond, UCT: 1.35},
			{ID: 2, Episodes: 500},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "agent_configs.csv"))
		require.Len(t, rows, 3, "Header plus one row per config")
		require.Equal(t, "1", rows[1][0])
		require.Equal(t, "1.35", rows[1][3])
	})

	t.Run("Stores game and move records as CSV", func(t *testing.T) {
		err := w.WriteGameRecords([]GameRecord{
			{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{
				StartingPlayer: game.Red,
				Winner:         game.Blue,
				TotalMoves:     40,
			}},
		})
		require.NoError(t, err)

		err = w.WriteMoveRecords([]MoveRecord{
			{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: game.Red,
				SearchMetric: SearchMetric{Episodes: 120, TreeReset: true}}},
			{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: game.Blue,
				SearchMetric: SearchMetric{Episodes: 130}}},
		})
		require.NoError(t, err)

		games := readCSV(t, filepath.Join(w.BaseDir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, "blue", games[1][4])

		moves := readCSV(t, filepath.Join(w.BaseDir(), "move_records.csv"))
		require.Len(t, moves, 3)
		require.Equal(t, "true", moves[1][6])
	})
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hex/game"
	"hex/searcher"
)

func testAgent(seed uint64) *SearchAgent {
	return NewSearchAgent(searcher.NewMCTS(
		searcher.WithDuration(5*time.Second),
		searcher.WithEpisodes(60),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}

func TestLocalEngine(t *testing.T) {
	t.Run("plays a full game to a winner", func(t *testing.T) {
		e := LocalEngine(5, testAgent(1), testAgent(2))

		winner, gameMetric, moveMetrics := e.Run()

		require.NotEqual(t, game.Empty, winner, "Hex admits no draws")
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, game.Red, gameMetric.StartingPlayer)
		require.Equal(t, gameMetric.TotalMoves, len(moveMetrics))
		require.LessOrEqual(t, gameMetric.TotalMoves, 25)
	})

	t.Run("records one search metric per move", func(t *testing.T) {
		e := LocalEngine(5, testAgent(3), testAgent(4))

		_, _, moveMetrics := e.Run()

		require.GreaterOrEqual(t, len(moveMetrics), 3)
		require.True(t, moveMetrics[0].TreeReset, "First search builds a fresh tree")
		require.True(t, moveMetrics[1].TreeReset, "Other side's first search too")
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Positive(t, mm.Episodes, "Search agents always run episodes")
		}
	})

	t.Run("random baseline beats nobody but always moves legally", func(t *testing.T) {
		e := LocalEngine(5, NewRandomAgent(7), NewRandomAgent(8))

		winner, gameMetric, _ := e.Run()

		require.NotEqual(t, game.Empty, winner)
		require.LessOrEqual(t, gameMetric.TotalMoves, 25)
	})
}

func TestRandomAgent(t *testing.T) {
	t.Run("returns a legal move", func(t *testing.T) {
		a := NewRandomAgent(1)
		gs := game.NewGameState(5)
		require.True(t, gs.Play(game.Move{Row: 2, Col: 2}))

		mv, metric := a.FindMove(gs.Copy())

		require.True(t, gs.InBounds(mv.Row, mv.Col))
		require.Equal(t, game.Empty, gs.At(mv.Row, mv.Col))
		require.Zero(t, metric.Episodes)
	})

	t.Run("returns the zero move on a finished game", func(t *testing.T) {
		a := NewRandomAgent(1)
		gs := game.NewGameState(5)
		gs.Winner = game.Red

		mv, _ := a.FindMove(gs.Copy())

		require.Equal(t, game.Move{}, mv)
	})
}

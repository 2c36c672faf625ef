package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"hex/game"
)

func TestUCTValue(t *testing.T) {
	t.Run("computing the UCT value", func(t *testing.T) {
		got := uctValue(5.0, 10, 100, 1.35)

		expected := 5.0/10 + 1.35*math.Sqrt(math.Log(101)/10)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute wins/visits + c*sqrt(ln(parent+1)/visits)")
	})

	t.Run("an unvisited child has infinite value", func(t *testing.T) {
		require.True(t, math.IsInf(uctValue(0, 0, 50, 1.35), 1),
			"Zero visits should outrank any visited child")
	})

	t.Run("exploration term grows with parent visits", func(t *testing.T) {
		score1 := uctValue(5.0, 10, 100, 1.35)
		score2 := uctValue(5.0, 10, 1000, 1.35)

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration")
	})

	t.Run("exploration term shrinks with child visits", func(t *testing.T) {
		score1 := uctValue(5.0, 10, 100, 1.35)
		score2 := uctValue(5.0, 20, 100, 1.35)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration")
	})
}

func TestSelectChild(t *testing.T) {
	t.Run("selects the child with the highest UCT value", func(t *testing.T) {
		parent := newNode(nil, game.Move{}, game.Red, nil)
		parent.visits = 10
		weak := newNode(parent, game.Move{Row: 0, Col: 0}, game.Blue, nil)
		weak.visits, weak.wins = 5, 1
		strong := newNode(parent, game.Move{Row: 1, Col: 1}, game.Blue, nil)
		strong.visits, strong.wins = 5, 4
		parent.addChild(weak)
		parent.addChild(strong)

		require.Same(t, strong, parent.selectChild(1.35))
	})

	t.Run("an unvisited child is selected immediately", func(t *testing.T) {
		parent := newNode(nil, game.Move{}, game.Red, nil)
		parent.visits = 100
		visited := newNode(parent, game.Move{Row: 0, Col: 0}, game.Blue, nil)
		visited.visits, visited.wins = 99, 99
		fresh := newNode(parent, game.Move{Row: 1, Col: 1}, game.Blue, nil)
		parent.addChild(visited)
		parent.addChild(fresh)

		require.Same(t, fresh, parent.selectChild(1.35),
			"Every child should be tried once before any is revisited")
	})
}

func TestBestMove(t *testing.T) {
	t.Run("returns the most visited child's move", func(t *testing.T) {
		parent := newNode(nil, game.Move{}, game.Red, nil)
		a := newNode(parent, game.Move{Row: 0, Col: 0}, game.Blue, nil)
		a.visits = 3
		b := newNode(parent, game.Move{Row: 1, Col: 1}, game.Blue, nil)
		b.visits = 7
		parent.addChild(a)
		parent.addChild(b)

		mv, ok := parent.bestMove()

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 1, Col: 1}, mv)
	})

	t.Run("breaks ties by expansion order", func(t *testing.T) {
		parent := newNode(nil, game.Move{}, game.Red, nil)
		first := newNode(parent, game.Move{Row: 2, Col: 2}, game.Blue, nil)
		first.visits = 5
		second := newNode(parent, game.Move{Row: 0, Col: 1}, game.Blue, nil)
		second.visits = 5
		parent.addChild(first)
		parent.addChild(second)

		mv, ok := parent.bestMove()

		require.True(t, ok)
		require.Equal(t, game.Move{Row: 2, Col: 2}, mv,
			"The first expanded child should win ties")
	})

	t.Run("reports no move for a childless node", func(t *testing.T) {
		leaf := newNode(nil, game.Move{}, game.Red, nil)

		_, ok := leaf.bestMove()

		require.False(t, ok)
	})
}

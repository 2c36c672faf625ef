package searcher

import (
	"math"

	"hex/game"
)

// node is one explored point of the game tree. The tree owns its nodes
// top-down through the children map; parent is a plain back-reference for
// backpropagation, never a second ownership edge. A node is a leaf of the
// explored tree iff children is empty, and fully expanded iff untried is
// empty.
type node struct {
	parent   *node
	move     game.Move      // the move that produced this node (zero at the root)
	player   game.CellState // whose turn it is in this node's state
	untried  []game.Move    // candidate moves not yet expanded, best first
	children map[game.Move]*node
	order    []game.Move // expansion order, for deterministic iteration
	visits   int
	wins     float64 // accumulated reward from the root player's perspective
}

func newNode(parent *node, mv game.Move, player game.CellState, untried []game.Move) *node {
	return &node{
		parent:   parent,
		move:     mv,
		player:   player,
		untried:  untried,
		children: make(map[game.Move]*node),
	}
}

func (n *node) addChild(child *node) {
	n.children[child.move] = child
	n.order = append(n.order, child.move)
}

// selectChild returns the child maximizing the UCT value. Children are
// scanned in expansion order so equal scores resolve the same way on every
// run with the same seed.
func (n *node) selectChild(c float64) *node {
	var best *node
	bestValue := math.Inf(-1)
	for _, mv := range n.order {
		child := n.children[mv]
		value := uctValue(child.wins, child.visits, n.visits, c)
		if value > bestValue {
			bestValue = value
			best = child
		}
	}
	return best
}

// bestMove returns the most visited child's move, first found winning
// ties. ok is false when the node has no children.
func (n *node) bestMove() (mv game.Move, ok bool) {
	bestVisits := -1
	for _, m := range n.order {
		if child := n.children[m]; child.visits > bestVisits {
			bestVisits = child.visits
			mv = m
			ok = true
		}
	}
	return mv, ok
}

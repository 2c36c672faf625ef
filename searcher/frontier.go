package searcher

import (
	"sort"

	"hex/game"
)

// minFrontier is the point below which the adjacency heuristic is assumed
// to be starving the search and the full legal move list is used instead.
const minFrontier = 8

// FrontierMoves returns up to max plausible moves for the player to move:
// empty cells adjacent to existing stones, ranked best first by a cheap
// placement heuristic. On an empty board it seeds the center and its
// neighbors instead of a scan-order corner. This is a pruning layer, not a
// legality filter; it deliberately trades completeness for a tractable
// branching factor.
func FrontierMoves(gs *game.GameState, max int) []game.Move {
	if gs.Winner != game.Empty {
		return nil
	}
	n := gs.Size
	seen := make([]bool, n*n)
	cands := make([]game.Move, 0, max)

	anyStone := false
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.At(r, c) == game.Empty {
				continue
			}
			anyStone = true
			for _, d := range game.NeighborOffsets {
				rr, cc := r+d[0], c+d[1]
				if !gs.InBounds(rr, cc) || gs.At(rr, cc) != game.Empty {
					continue
				}
				if idx := rr*n + cc; !seen[idx] {
					seen[idx] = true
					cands = append(cands, game.Move{Row: rr, Col: cc})
				}
			}
		}
	}

	if !anyStone {
		mid := n / 2
		cands = append(cands, game.Move{Row: mid, Col: mid})
		for _, d := range game.NeighborOffsets {
			rr, cc := mid+d[0], mid+d[1]
			if gs.InBounds(rr, cc) {
				cands = append(cands, game.Move{Row: rr, Col: cc})
			}
		}
	} else if len(cands) < minFrontier {
		return gs.LegalMoves()
	}

	player := gs.Current
	scores := make(map[game.Move]float64, len(cands))
	for _, mv := range cands {
		scores[mv] = expandScore(gs, mv, player)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return scores[cands[i]] > scores[cands[j]]
	})

	if len(cands) > max {
		cands = cands[:max]
	}
	return cands
}

// expandScore favors cells that knit the mover's stones together, touch
// the action, and sit near the mover's goal edges. Contact with opponent
// stones counts a little as well: those cells block chains.
func expandScore(gs *game.GameState, mv game.Move, player game.CellState) float64 {
	own := adjacentStones(gs, mv.Row, mv.Col, player)
	opp := adjacentStones(gs, mv.Row, mv.Col, game.Opponent(player))
	any := adjacentAny(gs, mv.Row, mv.Col)
	dist := distToGoal(player, gs.Size, mv.Row, mv.Col)
	return 3.2*float64(own) + 1.2*float64(any) + 0.6*float64(opp) - 0.35*float64(dist)
}

// rolloutScore is a lighter variant used by the playout policy.
func rolloutScore(gs *game.GameState, mv game.Move, player game.CellState) float64 {
	own := adjacentStones(gs, mv.Row, mv.Col, player)
	any := adjacentAny(gs, mv.Row, mv.Col)
	dist := distToGoal(player, gs.Size, mv.Row, mv.Col)
	return 2.8*float64(own) + 0.9*float64(any) - 0.45*float64(dist)
}

func adjacentStones(gs *game.GameState, r, c int, player game.CellState) int {
	count := 0
	for _, d := range game.NeighborOffsets {
		rr, cc := r+d[0], c+d[1]
		if gs.InBounds(rr, cc) && gs.At(rr, cc) == player {
			count++
		}
	}
	return count
}

func adjacentAny(gs *game.GameState, r, c int) int {
	count := 0
	for _, d := range game.NeighborOffsets {
		rr, cc := r+d[0], c+d[1]
		if gs.InBounds(rr, cc) && gs.At(rr, cc) != game.Empty {
			count++
		}
	}
	return count
}

// distToGoal is the distance to the nearer of the player's two goal
// edges: rows for Red, columns for Blue.
func distToGoal(player game.CellState, size, r, c int) int {
	if player == game.Red {
		return min(r, size-1-r)
	}
	return min(c, size-1-c)
}

package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"hex/game"
)

// rolloutMove picks one playout move: frontier candidates scored for the
// mover, then sampled from a Boltzmann distribution over the scores.
// Sampling instead of argmax keeps the playouts diverse, which the search
// statistics need. ok is false only when the state has no legal moves;
// callers only invoke this on non-terminal states.
func rolloutMove(rng *rand.Rand, gs *game.GameState, max int) (mv game.Move, ok bool) {
	cands := FrontierMoves(gs, max)
	if len(cands) == 0 {
		return game.Move{}, false
	}

	player := gs.Current
	weights := make([]float64, len(cands))
	maxScore := math.Inf(-1)
	for i, cand := range cands {
		s := rolloutScore(gs, cand, player)
		weights[i] = s
		if s > maxScore {
			maxScore = s
		}
	}

	// Softmax with max subtraction for numerical stability.
	total := 0.0
	for i, s := range weights {
		e := math.Exp(s - maxScore)
		weights[i] = e
		total += e
	}

	draw := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= draw {
			return cands[i], true
		}
	}
	return cands[len(cands)-1], true
}

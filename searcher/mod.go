package searcher

import (
	"math"
	"time"
)

// Default search hyperparameters

const DefaultDuration = 1200 * time.Millisecond

const DefaultEpisodes = 10000

const DefaultUCT = 1.35 // Exploration constant

const DefaultRolloutCandidates = 12

const DefaultExpandCandidates = 30

// Use rewards to estimate the chance of winning, always from the
// perspective of the player who owned the tree when its root was created.
const Win = 1.0
const Loss = 0.0

// uctValue scores a child from its parent: mean reward plus c-weighted
// exploration. An unvisited child outranks everything so that every child
// is tried once before any is revisited.
func uctValue(wins float64, visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	exploit := wins / float64(visits)
	explore := c * math.Sqrt(math.Log(float64(parentVisits)+1)/float64(visits))
	return exploit + explore
}

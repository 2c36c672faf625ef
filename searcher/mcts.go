package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hex/experiments/metrics"
	"hex/game"
)

type Option func(mcts *MCTS)

// MCTS selects moves by time-bounded Monte Carlo Tree Search with
// heuristic candidate pruning and a softmax rollout policy. The search
// tree is retained between calls: after FindMove, or after NotifyMove for
// moves played outside of it, the root follows the move so the matching
// subtree's statistics survive into the next turn.
//
// The search itself is synchronous and single-threaded. Callers that must
// not block (a UI input loop) run FindMove on their own goroutine and hand
// it a snapshot; the engine never touches the caller's live state. One
// instance serves one outstanding search at a time.
type MCTS struct {
	duration          time.Duration
	episodes          int
	uctC              float64
	rolloutCandidates int
	expandCandidates  int
	rng               *rand.Rand
	metrics           metrics.Collector

	root       *node
	rootPlayer game.CellState
	lastSearch metrics.SearchMetric
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes caps the number of search iterations regardless of the
// remaining time budget.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithUCT sets the exploration constant.
func WithUCT(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.uctC = c
		}
	}
}

func WithRolloutCandidates(max int) Option {
	return func(m *MCTS) {
		if max > 0 {
			m.rolloutCandidates = max
		}
	}
}

func WithExpandCandidates(max int) Option {
	return func(m *MCTS) {
		if max > 0 {
			m.expandCandidates = max
		}
	}
}

// WithSeed makes the search deterministic for a fixed input state and
// episode cap.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		duration:          DefaultDuration,
		episodes:          DefaultEpisodes,
		uctC:              DefaultUCT,
		rolloutCandidates: DefaultRolloutCandidates,
		expandCandidates:  DefaultExpandCandidates,
		metrics:           metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

// FindMove runs the full search budget against live and returns the most
// visited root move. live is read but never mutated; every episode works
// on its own copy. The retained tree is advanced through the returned move
// as if it were then played.
func (m *MCTS) FindMove(live *game.GameState) game.Move {
	if live.Winner != game.Empty {
		// Finished game; nothing to search.
		return game.Move{}
	}
	m.metrics.Start()
	m.prepareRoot(live)

	deadline := time.Now().Add(m.duration)
	for episode := 0; episode < m.episodes; episode++ {
		if time.Now().After(deadline) {
			break
		}
		m.runEpisode(live)
		m.metrics.AddEpisode()
	}
	m.lastSearch = m.metrics.Complete()

	mv, ok := m.root.bestMove()
	if !ok {
		// Budget elapsed before a single expansion.
		mv, ok = fallbackMove(live, m.expandCandidates)
		if !ok {
			return game.Move{}
		}
	}
	m.advance(mv)
	return mv
}

// NotifyMove informs the engine of a move applied to the live game outside
// of FindMove (typically the opposing human's), so the retained tree can
// follow it instead of being discarded.
func (m *MCTS) NotifyMove(mv game.Move) {
	m.advance(mv)
}

// LastSearch returns the metrics of the most recent FindMove call. It is
// the zero value unless the engine was built WithMetrics.
func (m *MCTS) LastSearch() metrics.SearchMetric {
	return m.lastSearch
}

// prepareRoot validates the retained root against the live game and
// rebuilds it when they disagree. The root player, the perspective all
// tree statistics are measured from, is fixed when the root is rebuilt.
func (m *MCTS) prepareRoot(live *game.GameState) {
	if m.root == nil || m.root.player != live.Current {
		m.root = newNode(nil, game.Move{}, live.Current, FrontierMoves(live, m.expandCandidates))
		m.rootPlayer = live.Current
		m.metrics.SetTreeReset(true)
		return
	}
	if len(m.root.untried) == 0 && len(m.root.children) == 0 {
		// Reused root that was never expanded; restock its candidates.
		m.root.untried = FrontierMoves(live, m.expandCandidates)
	}
	m.metrics.SetTreeReset(false)
}

// runEpisode performs one selection, expansion, simulation and
// backpropagation pass on a private copy of the live state.
func (m *MCTS) runEpisode(live *game.GameState) {
	state := live.Copy()
	cur := m.root

	// Selection: descend while fully expanded and non-terminal, replaying
	// each chosen move on the copy.
	for state.Winner == game.Empty && len(cur.untried) == 0 && len(cur.children) > 0 {
		cur = cur.selectChild(m.uctC)
		state.Play(cur.move)
	}

	// Expansion: the untried list is pre-sorted best first.
	if state.Winner == game.Empty && len(cur.untried) > 0 {
		mv := cur.untried[0]
		cur.untried = cur.untried[1:]
		if !state.Play(mv) {
			// Stale candidate; abort only this episode.
			log.Warn().Stringer("move", mv).Msg("skipping illegal expansion candidate")
			return
		}
		child := newNode(cur, mv, state.Current, FrontierMoves(state, m.expandCandidates))
		cur.addChild(child)
		cur = child
	}

	// Simulation: heuristic playout to the end of the game.
	for state.Winner == game.Empty {
		mv, ok := rolloutMove(m.rng, state, m.rolloutCandidates)
		if !ok || !state.Play(mv) {
			break
		}
	}
	if state.Winner != game.Empty {
		m.metrics.AddFullPlayout()
	}

	// Backpropagation, always from the root player's perspective.
	result := Loss
	if state.Winner == m.rootPlayer {
		result = Win
	}
	for n := cur; n != nil; n = n.parent {
		n.visits++
		n.wins += result
	}
}

// advance re-roots the retained tree through mv. If mv was never expanded
// the whole tree is stale and gets discarded; the next FindMove rebuilds
// from scratch.
func (m *MCTS) advance(mv game.Move) {
	if m.root == nil {
		return
	}
	if child, ok := m.root.children[mv]; ok {
		child.parent = nil
		m.root = child
		return
	}
	m.root = nil
	m.rootPlayer = game.Empty
}

// fallbackMove is the starved-search fallback: the candidate generator's
// top suggestion, then any legal move. ok is false only on a finished
// game, which callers are expected to guard against.
func fallbackMove(gs *game.GameState, expandCandidates int) (game.Move, bool) {
	if cands := FrontierMoves(gs, expandCandidates); len(cands) > 0 {
		return cands[0], true
	}
	if moves := gs.LegalMoves(); len(moves) > 0 {
		return moves[0], true
	}
	return game.Move{}, false
}

package engine

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
)

// Agent produces one move per turn for a fixed side.
type Agent interface {
	// FindMove returns the move to play and the search metrics behind it
	// (zero for agents that do not search).
	FindMove(state *game.GameState) (game.Move, metrics.SearchMetric)
	// ObserveMove reports a move played by the other side, so searching
	// agents can re-root their retained tree.
	ObserveMove(mv game.Move)
}

// SearchAgent plays with the MCTS engine.
type SearchAgent struct {
	mcts *searcher.MCTS
}

func NewSearchAgent(mcts *searcher.MCTS) *SearchAgent {
	return &SearchAgent{mcts: mcts}
}

func (a *SearchAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	mv := a.mcts.FindMove(state)
	return mv, a.mcts.LastSearch()
}

func (a *SearchAgent) ObserveMove(mv game.Move) {
	a.mcts.NotifyMove(mv)
}

// RandomAgent plays uniformly random legal moves. It is the baseline
// opponent for experiments.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state *game.GameState) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, metrics.SearchMetric{}
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}

func (a *RandomAgent) ObserveMove(mv game.Move) {}

// Engine drives a complete local game between two agents over one
// authoritative state. Each agent only ever receives snapshots.
type Engine struct {
	State *game.GameState
	Red   Agent
	Blue  Agent
}

func LocalEngine(size int, red, blue Agent) *Engine {
	return &Engine{
		State: game.NewGameState(size),
		Red:   red,
		Blue:  blue,
	}
}

// Run executes the game loop until a winner is found and returns the
// winner with the per-move metrics. Hex cannot draw, but the loop still
// stops once the board is full.
func (e *Engine) Run() (game.CellState, metrics.GameMetric, []metrics.MoveMetric) {
	start := time.Now()
	startingPlayer := e.State.Current
	log.Info().Stringer("player", startingPlayer).Msg("game started")

	var moveMetrics []metrics.MoveMetric
	maxMoves := e.State.Size * e.State.Size

	for e.State.Winner == game.Empty && e.State.MovesPlayed < maxMoves {
		mover := e.State.Current
		agent, opponent := e.Red, e.Blue
		if mover == game.Blue {
			agent, opponent = e.Blue, e.Red
		}

		mv, searchMetric := agent.FindMove(e.State.Copy())
		if !e.State.Play(mv) {
			// A broken agent forfeits nothing; substitute the first legal move.
			log.Warn().Stringer("player", mover).Stringer("move", mv).
				Msg("agent returned an illegal move")
			legal := e.State.LegalMoves()
			if len(legal) == 0 {
				break
			}
			mv = legal[0]
			e.State.Play(mv)
		}
		opponent.ObserveMove(mv)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.State.MovesPlayed,
			Player:       mover,
			SearchMetric: searchMetric,
		})
	}

	end := time.Now()
	log.Info().Stringer("winner", e.State.Winner).Int("moves", e.State.MovesPlayed).
		Msg("game over")

	gameMetric := metrics.GameMetric{
		StartingPlayer: startingPlayer,
		Winner:         e.State.Winner,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     e.State.MovesPlayed,
	}
	return e.State.Winner, gameMetric, moveMetrics
}

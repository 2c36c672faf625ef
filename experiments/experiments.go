package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hex/engine"
	"hex/experiments/metrics"
	"hex/game"
	"hex/searcher"
)

const (
	NumGames  = 20 // Per match up
	BoardSize = 7  // Small enough to keep a full experiment under an hour
)

// ExplorationConfigs sweeps the UCT constant against the default.
var ExplorationConfigs = []metrics.AgentConfig{
	{ID: 1, Duration: 50 * time.Millisecond, UCT: 0.7},
	{ID: 2, Duration: 50 * time.Millisecond, UCT: 1.0},
	{ID: 3, Duration: 50 * time.Millisecond, UCT: 1.35},
	{ID: 4, Duration: 50 * time.Millisecond, UCT: 2.0},
}

// PruningConfigs sweeps the candidate caps to measure how hard the
// frontier heuristic can prune before playing strength drops.
var PruningConfigs = []metrics.AgentConfig{
	{ID: 1, Duration: 50 * time.Millisecond, RolloutCandidates: 6, ExpandCandidates: 10},
	{ID: 2, Duration: 50 * time.Millisecond, RolloutCandidates: 12, ExpandCandidates: 30},
	{ID: 3, Duration: 50 * time.Millisecond, RolloutCandidates: 24, ExpandCandidates: 60},
}

// RunExplorationExperiment pairs each exploration constant against the
// default configuration.
func RunExplorationExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Duration: 50 * time.Millisecond, UCT: searcher.DefaultUCT}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range ExplorationConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("exploration", append(ExplorationConfigs, baseline), matchUps)
}

// RunPruningExperiment pairs each candidate-cap setting against the
// default configuration.
func RunPruningExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Duration: 50 * time.Millisecond}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range PruningConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("pruning", append(PruningConfigs, baseline), matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	log.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...",
			mi+1, len(matchUps), config1, config2)

		for i := 0; i < NumGames; i++ {
			// Alternate the starting side so neither config banks the
			// first-move advantage.
			red, blue := config1, config2
			if i%2 == 1 {
				red, blue = config2, config1
			}

			winner, gameMetric, moveMetrics := runGame(red, blue)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     red.ID,
				Agent2:     blue.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %s",
				mi+1, len(matchUps), i+1, NumGames, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(name)
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to store game records: %v", err))
	}

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		panic(fmt.Sprintf("failed to store move records: %v", err))
	}

	log.Info().Msgf("stored %s results under %s", name, writer.BaseDir())
}

// runGame executes a single game between two agent configs and returns
// the winner.
func runGame(red, blue metrics.AgentConfig) (game.CellState, metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.LocalEngine(BoardSize,
		engine.NewSearchAgent(createMCTS(red)),
		engine.NewSearchAgent(createMCTS(blue)))
	return e.Run()
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{searcher.WithMetrics()}

	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.UCT > 0 {
		options = append(options, searcher.WithUCT(config.UCT))
	}
	if config.RolloutCandidates > 0 {
		options = append(options, searcher.WithRolloutCandidates(config.RolloutCandidates))
	}
	if config.ExpandCandidates > 0 {
		options = append(options, searcher.WithExpandCandidates(config.ExpandCandidates))
	}

	return searcher.NewMCTS(options...)
}
